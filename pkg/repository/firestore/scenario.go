package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/allegro/pkg/domain/model"
	"github.com/secmon-lab/allegro/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type scenarioDocument struct {
	ID           int64     `firestore:"id"`
	ConcernID    int64     `firestore:"concern_id"`
	Actor        string    `firestore:"actor"`
	AccessMethod string    `firestore:"access_method"`
	Motive       string    `firestore:"motive"`
	Consequence  string    `firestore:"consequence"`
	Description  string    `firestore:"description"`
	CreatedAt    time.Time `firestore:"created_at"`
	UpdatedAt    time.Time `firestore:"updated_at"`
}

func newScenarioDocument(scenario *model.ThreatScenario) *scenarioDocument {
	return &scenarioDocument{
		ID:           scenario.ID,
		ConcernID:    scenario.ConcernID,
		Actor:        scenario.Actor.String(),
		AccessMethod: scenario.AccessMethod.String(),
		Motive:       scenario.Motive,
		Consequence:  scenario.Consequence.String(),
		Description:  scenario.Description,
		CreatedAt:    scenario.CreatedAt,
		UpdatedAt:    scenario.UpdatedAt,
	}
}

func (d *scenarioDocument) toModel() *model.ThreatScenario {
	return &model.ThreatScenario{
		ID:           d.ID,
		ConcernID:    d.ConcernID,
		Actor:        types.ThreatActor(d.Actor),
		AccessMethod: types.AccessMethod(d.AccessMethod),
		Motive:       d.Motive,
		Consequence:  types.Consequence(d.Consequence),
		Description:  d.Description,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type scenarioRepository struct {
	client     *firestore.Client
	prefix     string
	risk       *riskRepository
	analysis   *analysisRepository
	response   *responseRepository
	selections *assetVulnRepository
}

func newScenarioRepository(client *firestore.Client, risk *riskRepository, analysis *analysisRepository, response *responseRepository, selections *assetVulnRepository) *scenarioRepository {
	return &scenarioRepository{
		client:     client,
		risk:       risk,
		analysis:   analysis,
		response:   response,
		selections: selections,
	}
}

func (r *scenarioRepository) collection() string {
	if r.prefix != "" {
		return r.prefix + "_threat_scenarios"
	}
	return "threat_scenarios"
}

func (r *scenarioRepository) counter() *counter {
	col := "counters"
	if r.prefix != "" {
		col = r.prefix + "_counters"
	}
	return &counter{client: r.client, collection: col, doc: "scenario_counter"}
}

func (r *scenarioRepository) CreateWithRisk(ctx context.Context, scenario *model.ThreatScenario, risk *model.Risk) (*model.ScenarioRisk, error) {
	scenarioID, err := r.counter().next(ctx)
	if err != nil {
		return nil, err
	}
	riskID, err := r.risk.counter().next(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	createdScenario := *scenario
	createdScenario.ID = scenarioID
	createdScenario.CreatedAt = now
	createdScenario.UpdatedAt = now

	createdRisk := *risk
	createdRisk.ID = riskID
	createdRisk.ScenarioID = scenarioID
	createdRisk.CreatedAt = now
	createdRisk.UpdatedAt = now

	scenarioRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", scenarioID))
	riskRef := r.client.Collection(r.risk.collection()).Doc(fmt.Sprintf("%d", riskID))

	err = r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Set(scenarioRef, newScenarioDocument(&createdScenario)); err != nil {
			return err
		}
		return tx.Set(riskRef, newRiskDocument(&createdRisk))
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create scenario with risk",
			goerr.V("concern_id", scenario.ConcernID))
	}

	return &model.ScenarioRisk{Scenario: &createdScenario, Risk: &createdRisk}, nil
}

func (r *scenarioRepository) Get(ctx context.Context, id int64) (*model.ThreatScenario, error) {
	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", id))
	snapshot, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "threat scenario not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get threat scenario", goerr.V("id", id))
	}

	var doc scenarioDocument
	if err := snapshot.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode threat scenario")
	}
	return doc.toModel(), nil
}

func (r *scenarioRepository) ListByConcern(ctx context.Context, concernID int64) ([]*model.ThreatScenario, error) {
	iter := r.client.Collection(r.collection()).
		Where("concern_id", "==", concernID).
		OrderBy("id", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var scenarios []*model.ThreatScenario
	for {
		snapshot, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list threat scenarios", goerr.V("concern_id", concernID))
		}

		var doc scenarioDocument
		if err := snapshot.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode threat scenario")
		}
		scenarios = append(scenarios, doc.toModel())
	}
	return scenarios, nil
}

// ReplaceCascade swaps the concern's whole scenario subtree and the asset's
// vulnerability selections in one transaction. IDs for the new rows are
// reserved up front because the counter runs its own transaction and cannot
// nest inside this one.
func (r *scenarioRepository) ReplaceCascade(ctx context.Context, concernID, assetID int64, entries []*model.ScenarioRisk, selections []*model.AssetVulnerability) ([]*model.ScenarioRisk, []*model.AssetVulnerability, error) {
	var scenarioIDs, riskIDs []int64
	if len(entries) > 0 {
		var err error
		if scenarioIDs, err = r.counter().nextN(ctx, len(entries)); err != nil {
			return nil, nil, err
		}
		if riskIDs, err = r.risk.counter().nextN(ctx, len(entries)); err != nil {
			return nil, nil, err
		}
	}
	var selectionIDs []int64
	if len(selections) > 0 {
		var err error
		if selectionIDs, err = r.selections.counter().nextN(ctx, len(selections)); err != nil {
			return nil, nil, err
		}
	}

	now := time.Now().UTC()
	created := make([]*model.ScenarioRisk, 0, len(entries))
	for i, entry := range entries {
		scenario := *entry.Scenario
		scenario.ID = scenarioIDs[i]
		scenario.ConcernID = concernID
		scenario.CreatedAt = now
		scenario.UpdatedAt = now

		risk := *entry.Risk
		risk.ID = riskIDs[i]
		risk.ScenarioID = scenario.ID
		risk.CreatedAt = now
		risk.UpdatedAt = now

		created = append(created, &model.ScenarioRisk{Scenario: &scenario, Risk: &risk})
	}
	stored := make([]*model.AssetVulnerability, 0, len(selections))
	for i, selection := range selections {
		row := *selection
		row.ID = selectionIDs[i]
		row.AssetID = assetID
		row.CreatedAt = now
		stored = append(stored, &row)
	}

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		// All reads must come before any write.
		oldScenarios, err := tx.Documents(r.client.Collection(r.collection()).
			Where("concern_id", "==", concernID)).GetAll()
		if err != nil {
			return goerr.Wrap(err, "failed to query scenarios")
		}
		oldSelections, err := tx.Documents(r.client.Collection(r.selections.collection()).
			Where("asset_id", "==", assetID)).GetAll()
		if err != nil {
			return goerr.Wrap(err, "failed to query selections")
		}

		var oldRisks []*firestore.DocumentSnapshot
		for _, snapshot := range oldScenarios {
			var doc scenarioDocument
			if err := snapshot.DataTo(&doc); err != nil {
				return goerr.Wrap(err, "failed to decode threat scenario")
			}
			risks, err := tx.Documents(r.client.Collection(r.risk.collection()).
				Where("scenario_id", "==", doc.ID)).GetAll()
			if err != nil {
				return goerr.Wrap(err, "failed to query risks")
			}
			oldRisks = append(oldRisks, risks...)
		}

		for _, snapshot := range oldRisks {
			var doc riskDocument
			if err := snapshot.DataTo(&doc); err != nil {
				return goerr.Wrap(err, "failed to decode risk")
			}
			riskID := fmt.Sprintf("%d", doc.ID)
			if err := tx.Delete(r.client.Collection(r.analysis.collection()).Doc(riskID)); err != nil {
				return err
			}
			if err := tx.Delete(r.client.Collection(r.response.collection()).Doc(riskID)); err != nil {
				return err
			}
			if err := tx.Delete(snapshot.Ref); err != nil {
				return err
			}
		}
		for _, snapshot := range oldScenarios {
			if err := tx.Delete(snapshot.Ref); err != nil {
				return err
			}
		}
		for _, snapshot := range oldSelections {
			if err := tx.Delete(snapshot.Ref); err != nil {
				return err
			}
		}

		for _, entry := range created {
			scenarioRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", entry.Scenario.ID))
			if err := tx.Set(scenarioRef, newScenarioDocument(entry.Scenario)); err != nil {
				return err
			}
			riskRef := r.client.Collection(r.risk.collection()).Doc(fmt.Sprintf("%d", entry.Risk.ID))
			if err := tx.Set(riskRef, newRiskDocument(entry.Risk)); err != nil {
				return err
			}
		}
		for _, row := range stored {
			docRef := r.client.Collection(r.selections.collection()).Doc(fmt.Sprintf("%d", row.ID))
			if err := tx.Set(docRef, newAssetVulnDocument(row)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to replace cascade",
			goerr.V("concern_id", concernID), goerr.V("asset_id", assetID))
	}

	return created, stored, nil
}

func (r *scenarioRepository) DeleteWithRisk(ctx context.Context, id int64) error {
	scenarioRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", id))

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(scenarioRef); err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(ErrNotFound, "threat scenario not found", goerr.V("id", id))
			}
			return goerr.Wrap(err, "failed to get threat scenario", goerr.V("id", id))
		}

		risks, err := tx.Documents(r.client.Collection(r.risk.collection()).
			Where("scenario_id", "==", id)).GetAll()
		if err != nil {
			return goerr.Wrap(err, "failed to query risks")
		}

		for _, snapshot := range risks {
			var doc riskDocument
			if err := snapshot.DataTo(&doc); err != nil {
				return goerr.Wrap(err, "failed to decode risk")
			}
			riskID := fmt.Sprintf("%d", doc.ID)
			if err := tx.Delete(r.client.Collection(r.analysis.collection()).Doc(riskID)); err != nil {
				return err
			}
			if err := tx.Delete(r.client.Collection(r.response.collection()).Doc(riskID)); err != nil {
				return err
			}
			if err := tx.Delete(snapshot.Ref); err != nil {
				return err
			}
		}
		return tx.Delete(scenarioRef)
	})
	if err != nil {
		return err
	}
	return nil
}
