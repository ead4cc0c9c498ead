package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/allegro/pkg/domain/interfaces"
	"github.com/secmon-lab/allegro/pkg/domain/types"
)

// ErrNotFound is returned for any lookup of a document that does not exist
var ErrNotFound = types.ErrNotFound

// Firestore is the Firestore-backed repository.
type Firestore struct {
	client    *firestore.Client
	audit     *auditRepository
	criteria  *criteriaRepository
	asset     *assetRepository
	container *containerRepository
	concern   *concernRepository
	scenario  *scenarioRepository
	risk      *riskRepository
	analysis  *analysisRepository
	response  *responseRepository
	assetVuln *assetVulnRepository
	checklist *checklistRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix namespaces every collection, used to isolate test runs.
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.audit.prefix = prefix
		f.criteria.prefix = prefix
		f.asset.prefix = prefix
		f.container.prefix = prefix
		f.concern.prefix = prefix
		f.scenario.prefix = prefix
		f.risk.prefix = prefix
		f.analysis.prefix = prefix
		f.response.prefix = prefix
		f.assetVuln.prefix = prefix
		f.checklist.prefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	auditRepo := newAuditRepository(client)
	riskRepo := newRiskRepository(client)
	analysisRepo := newAnalysisRepository(client)
	responseRepo := newResponseRepository(client)
	assetVulnRepo := newAssetVulnRepository(client)

	f := &Firestore{
		client:    client,
		audit:     auditRepo,
		criteria:  newCriteriaRepository(client),
		asset:     newAssetRepository(client),
		container: newContainerRepository(client),
		concern:   newConcernRepository(client),
		scenario:  newScenarioRepository(client, riskRepo, analysisRepo, responseRepo, assetVulnRepo),
		risk:      riskRepo,
		analysis:  analysisRepo,
		response:  responseRepo,
		assetVuln: assetVulnRepo,
		checklist: newChecklistRepository(client, auditRepo),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Audit() interfaces.AuditRepository {
	return f.audit
}

func (f *Firestore) Criteria() interfaces.CriteriaRepository {
	return f.criteria
}

func (f *Firestore) Asset() interfaces.AssetRepository {
	return f.asset
}

func (f *Firestore) Container() interfaces.ContainerRepository {
	return f.container
}

func (f *Firestore) Concern() interfaces.ConcernRepository {
	return f.concern
}

func (f *Firestore) Scenario() interfaces.ScenarioRepository {
	return f.scenario
}

func (f *Firestore) Risk() interfaces.RiskRepository {
	return f.risk
}

func (f *Firestore) Analysis() interfaces.AnalysisRepository {
	return f.analysis
}

func (f *Firestore) Response() interfaces.ResponseRepository {
	return f.response
}

func (f *Firestore) AssetVuln() interfaces.AssetVulnRepository {
	return f.assetVuln
}

func (f *Firestore) Checklist() interfaces.ChecklistRepository {
	return f.checklist
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
