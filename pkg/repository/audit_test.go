package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/allegro/pkg/domain/interfaces"
	"github.com/secmon-lab/allegro/pkg/domain/model"
	"github.com/secmon-lab/allegro/pkg/domain/types"
)

func runAuditRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create assigns sequential IDs", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first, err := repo.Audit().Create(ctx, &model.Audit{
			SystemName:  "Billing System",
			Description: "Quarterly assessment",
			AuditDate:   time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		})
		gt.NoError(t, err).Required()
		gt.Value(t, first.ID).Equal(1)
		gt.Value(t, first.SystemName).Equal("Billing System")
		gt.Bool(t, first.CreatedAt.IsZero()).False()
		gt.Bool(t, first.UpdatedAt.IsZero()).False()

		second, err := repo.Audit().Create(ctx, &model.Audit{SystemName: "HR Portal"})
		gt.NoError(t, err).Required()
		gt.Value(t, second.ID).Equal(2)
	})

	t.Run("Get retrieves existing audit", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created := mustAudit(t, repo)

		got, err := repo.Audit().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.ID).Equal(created.ID)
		gt.Value(t, got.SystemName).Equal(created.SystemName)
		gt.Value(t, got.AuditDate.UTC()).Equal(created.AuditDate.UTC())
	})

	t.Run("Get returns not found for missing audit", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Audit().Get(context.Background(), 9999)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()
	})

	t.Run("List returns audits ordered by ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for _, name := range []string{"Alpha", "Bravo", "Charlie"} {
			_, err := repo.Audit().Create(ctx, &model.Audit{SystemName: name})
			gt.NoError(t, err).Required()
		}

		audits, err := repo.Audit().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, audits).Length(3)
		gt.Value(t, audits[0].SystemName).Equal("Alpha")
		gt.Value(t, audits[1].SystemName).Equal("Bravo")
		gt.Value(t, audits[2].SystemName).Equal("Charlie")
	})

	t.Run("Delete removes audit", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created := mustAudit(t, repo)

		gt.NoError(t, repo.Audit().Delete(ctx, created.ID)).Required()

		_, err := repo.Audit().Get(ctx, created.ID)
		gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()

		err = repo.Audit().Delete(ctx, created.ID)
		gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()
	})
}

func runCriteriaRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Put then GetByAudit round-trips", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		audit := mustAudit(t, repo)

		saved, err := repo.Criteria().Put(ctx, &model.RiskCriteria{
			AuditID:      audit.ID,
			Reputation:   5,
			Financial:    4,
			Productivity: 3,
			Safety:       2,
			Legal:        1,
			Notes:        "Reputation weighted highest",
		})
		gt.NoError(t, err).Required()
		gt.Bool(t, saved.CreatedAt.IsZero()).False()

		got, err := repo.Criteria().GetByAudit(ctx, audit.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Reputation).Equal(5)
		gt.Value(t, got.Legal).Equal(1)
		gt.Value(t, got.Notes).Equal("Reputation weighted highest")
	})

	t.Run("Put overwrites and preserves CreatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		audit := mustAudit(t, repo)

		first, err := repo.Criteria().Put(ctx, &model.RiskCriteria{
			AuditID: audit.ID, Reputation: 3, Financial: 3, Productivity: 3, Safety: 3, Legal: 3,
		})
		gt.NoError(t, err).Required()

		second, err := repo.Criteria().Put(ctx, &model.RiskCriteria{
			AuditID: audit.ID, Reputation: 5, Financial: 5, Productivity: 5, Safety: 5, Legal: 5,
		})
		gt.NoError(t, err).Required()
		// Compare at microsecond precision; Firestore truncates timestamps.
		gt.Value(t, second.CreatedAt.UnixMicro()).Equal(first.CreatedAt.UnixMicro())

		got, err := repo.Criteria().GetByAudit(ctx, audit.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Reputation).Equal(5)
	})

	t.Run("GetByAudit returns not found when unset", func(t *testing.T) {
		repo := newRepo(t)

		audit := mustAudit(t, repo)

		_, err := repo.Criteria().GetByAudit(context.Background(), audit.ID)
		gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()
	})

	t.Run("Delete is idempotent", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		audit := mustAudit(t, repo)

		gt.NoError(t, repo.Criteria().Delete(ctx, audit.ID))

		_, err := repo.Criteria().Put(ctx, &model.RiskCriteria{
			AuditID: audit.ID, Reputation: 3, Financial: 3, Productivity: 3, Safety: 3, Legal: 3,
		})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Criteria().Delete(ctx, audit.ID))
		_, err = repo.Criteria().GetByAudit(ctx, audit.ID)
		gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()
	})
}

func TestMemoryAuditRepository(t *testing.T) {
	runAuditRepositoryTest(t, newMemoryRepository)
}

func TestFirestoreAuditRepository(t *testing.T) {
	runAuditRepositoryTest(t, newFirestoreRepository)
}

func TestMemoryCriteriaRepository(t *testing.T) {
	runCriteriaRepositoryTest(t, newMemoryRepository)
}

func TestFirestoreCriteriaRepository(t *testing.T) {
	runCriteriaRepositoryTest(t, newFirestoreRepository)
}
