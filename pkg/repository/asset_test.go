package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/allegro/pkg/domain/interfaces"
	"github.com/secmon-lab/allegro/pkg/domain/model"
	"github.com/secmon-lab/allegro/pkg/domain/types"
)

func runAssetRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create assigns sequential IDs", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		audit := mustAudit(t, repo)

		first, err := repo.Asset().Create(ctx, &model.Asset{
			AuditID:         audit.ID,
			Name:            "Customer Database",
			OwnerName:       "DBA Team",
			Confidentiality: 5,
			Integrity:       4,
			Availability:    3,
			PrimaryReq:      types.CIAConfidentiality,
		})
		gt.NoError(t, err).Required()
		gt.Value(t, first.ID).Equal(1)
		gt.Bool(t, first.CreatedAt.IsZero()).False()

		second, err := repo.Asset().Create(ctx, &model.Asset{
			AuditID: audit.ID,
			Name:    "API Keys Vault",
		})
		gt.NoError(t, err).Required()
		gt.Value(t, second.ID).Equal(2)
	})

	t.Run("Get returns not found for missing asset", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Asset().Get(context.Background(), 9999)
		gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()
	})

	t.Run("ListByAudit returns only that audit's assets in ID order", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		auditA := mustAudit(t, repo)
		auditB := mustAudit(t, repo)

		for _, name := range []string{"First", "Second"} {
			_, err := repo.Asset().Create(ctx, &model.Asset{AuditID: auditA.ID, Name: name})
			gt.NoError(t, err).Required()
		}
		_, err := repo.Asset().Create(ctx, &model.Asset{AuditID: auditB.ID, Name: "Other"})
		gt.NoError(t, err).Required()

		assets, err := repo.Asset().ListByAudit(ctx, auditA.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, assets).Length(2)
		gt.Value(t, assets[0].Name).Equal("First")
		gt.Value(t, assets[1].Name).Equal("Second")
	})

	t.Run("Update rewrites ratings and preserves audit linkage", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		audit := mustAudit(t, repo)
		created := mustAsset(t, repo, audit.ID)

		created.Name = "Customer Database (renamed)"
		created.Integrity = 5
		created.PrimaryReq = types.CIAIntegrity

		updated, err := repo.Asset().Update(ctx, created)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.AuditID).Equal(audit.ID)
		gt.Value(t, updated.Name).Equal("Customer Database (renamed)")
		gt.Value(t, updated.Integrity).Equal(5)
		gt.Value(t, updated.CreatedAt.UnixMicro()).Equal(created.CreatedAt.UnixMicro())
	})

	t.Run("Delete removes asset", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		audit := mustAudit(t, repo)
		created := mustAsset(t, repo, audit.ID)

		gt.NoError(t, repo.Asset().Delete(ctx, created.ID)).Required()

		_, err := repo.Asset().Get(ctx, created.ID)
		gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()
	})
}

func runAssetVulnRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("ReplaceForAsset stores selections", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		audit := mustAudit(t, repo)
		asset := mustAsset(t, repo, audit.ID)

		stored, err := repo.AssetVuln().ReplaceForAsset(ctx, asset.ID, []*model.AssetVulnerability{
			{AssetID: asset.ID, VulnID: 1, Likelihood: 3, RiskScore: 36},
			{AssetID: asset.ID, VulnID: 5, Likelihood: 2, RiskScore: 24},
		})
		gt.NoError(t, err).Required()
		gt.Array(t, stored).Length(2)
		gt.Value(t, stored[0].ID).NotEqual(int64(0))
		gt.Value(t, stored[0].VulnID).Equal(1)
		gt.Value(t, stored[1].RiskScore).Equal(24)

		listed, err := repo.AssetVuln().ListByAsset(ctx, asset.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, listed).Length(2)
	})

	t.Run("ReplaceForAsset discards previous selections", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		audit := mustAudit(t, repo)
		asset := mustAsset(t, repo, audit.ID)

		_, err := repo.AssetVuln().ReplaceForAsset(ctx, asset.ID, []*model.AssetVulnerability{
			{AssetID: asset.ID, VulnID: 1, Likelihood: 3, RiskScore: 36},
			{AssetID: asset.ID, VulnID: 2, Likelihood: 3, RiskScore: 36},
			{AssetID: asset.ID, VulnID: 3, Likelihood: 3, RiskScore: 36},
		})
		gt.NoError(t, err).Required()

		stored, err := repo.AssetVuln().ReplaceForAsset(ctx, asset.ID, []*model.AssetVulnerability{
			{AssetID: asset.ID, VulnID: 7, Likelihood: 1, RiskScore: 12},
		})
		gt.NoError(t, err).Required()
		gt.Array(t, stored).Length(1)

		listed, err := repo.AssetVuln().ListByAsset(ctx, asset.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, listed).Length(1)
		gt.Value(t, listed[0].VulnID).Equal(7)
	})

	t.Run("ReplaceForAsset with empty set wipes selections", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		audit := mustAudit(t, repo)
		asset := mustAsset(t, repo, audit.ID)

		_, err := repo.AssetVuln().ReplaceForAsset(ctx, asset.ID, []*model.AssetVulnerability{
			{AssetID: asset.ID, VulnID: 1, Likelihood: 3, RiskScore: 36},
		})
		gt.NoError(t, err).Required()

		stored, err := repo.AssetVuln().ReplaceForAsset(ctx, asset.ID, nil)
		gt.NoError(t, err).Required()
		gt.Array(t, stored).Length(0)

		listed, err := repo.AssetVuln().ListByAsset(ctx, asset.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, listed).Length(0)
	})
}

func TestMemoryAssetRepository(t *testing.T) {
	runAssetRepositoryTest(t, newMemoryRepository)
}

func TestFirestoreAssetRepository(t *testing.T) {
	runAssetRepositoryTest(t, newFirestoreRepository)
}

func TestMemoryAssetVulnRepository(t *testing.T) {
	runAssetVulnRepositoryTest(t, newMemoryRepository)
}

func TestFirestoreAssetVulnRepository(t *testing.T) {
	runAssetVulnRepositoryTest(t, newFirestoreRepository)
}
