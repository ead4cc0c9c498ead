package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/allegro/pkg/domain/interfaces"
	"github.com/secmon-lab/allegro/pkg/domain/model"
	"github.com/secmon-lab/allegro/pkg/domain/types"
	"github.com/secmon-lab/allegro/pkg/repository/firestore"
	"github.com/secmon-lab/allegro/pkg/repository/memory"
)

func newMemoryRepository(t *testing.T) interfaces.Repository {
	t.Helper()
	return memory.New()
}

// newFirestoreRepository connects to a real Firestore database, namespaced
// per run so auto-increment counters start fresh.
func newFirestoreRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}

	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")
	if databaseID == "" {
		t.Skip("TEST_FIRESTORE_DATABASE_ID not set")
	}

	ctx := context.Background()
	prefix := fmt.Sprintf("test_%d", time.Now().UnixNano())
	repo, err := firestore.New(ctx, projectID, databaseID, firestore.WithCollectionPrefix(prefix))
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})
	return repo
}

// mustAudit creates an audit to hang child records off.
func mustAudit(t *testing.T, repo interfaces.Repository) *model.Audit {
	t.Helper()

	audit, err := repo.Audit().Create(context.Background(), &model.Audit{
		SystemName: "Payment Gateway",
		AuditDate:  time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	gt.NoError(t, err).Required()
	return audit
}

// mustAsset creates an asset under the audit with mid-range CIA ratings.
func mustAsset(t *testing.T, repo interfaces.Repository, auditID int64) *model.Asset {
	t.Helper()

	asset, err := repo.Asset().Create(context.Background(), &model.Asset{
		AuditID:         auditID,
		Name:            "Customer Database",
		Confidentiality: 5,
		Integrity:       4,
		Availability:    3,
		PrimaryReq:      types.CIAConfidentiality,
	})
	gt.NoError(t, err).Required()
	return asset
}

// mustScenario creates a container, concern and one scenario/risk pair under
// the asset, returning the pair.
func mustScenario(t *testing.T, repo interfaces.Repository, assetID int64) *model.ScenarioRisk {
	t.Helper()
	ctx := context.Background()

	container, err := repo.Container().Create(ctx, &model.Container{
		AssetID:  assetID,
		Name:     "Primary DB Server",
		Type:     types.ContainerTechnical,
		Location: types.LocationInternal,
	})
	gt.NoError(t, err).Required()

	concern, err := repo.Concern().Create(ctx, &model.Concern{
		ContainerID: container.ID,
		Description: "Unpatched database engine",
	})
	gt.NoError(t, err).Required()

	pair, err := repo.Scenario().CreateWithRisk(ctx,
		&model.ThreatScenario{
			ConcernID:    concern.ID,
			Actor:        types.ActorExternalHuman,
			AccessMethod: types.AccessNetwork,
			Motive:       "Malicious Intent",
			Consequence:  types.ConsequenceDisclosure,
			Description:  "Attacker exploits known CVE to dump records",
		},
		&model.Risk{
			CIAImpacted:       types.CIAConfidentiality,
			ConsequenceDetail: "Customer records disclosed",
		})
	gt.NoError(t, err).Required()
	return pair
}
