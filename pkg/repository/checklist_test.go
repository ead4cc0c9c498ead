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

func runChecklistRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Replace stores answers and findings", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		audit := mustAudit(t, repo)

		answers := []*model.AuditAnswer{
			{ID: "a1", AuditID: audit.ID, Question: "Firewall configured?", Answer: types.AnswerCompliant},
			{ID: "a2", AuditID: audit.ID, Question: "Patching current?", Answer: types.AnswerNonCompliant},
		}
		findings := []*model.Finding{
			{
				ID:             "f1",
				AuditID:        audit.ID,
				Text:           "Security patches are not being applied",
				RiskLevel:      types.RiskCritical,
				Recommendation: "Establish a patch management process",
			},
		}

		gt.NoError(t, repo.Checklist().Replace(ctx, audit.ID, answers, findings, nil)).Required()

		gotAnswers, err := repo.Checklist().ListAnswers(ctx, audit.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, gotAnswers).Length(2)

		gotFindings, err := repo.Checklist().ListFindings(ctx, audit.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, gotFindings).Length(1)
		gt.Value(t, gotFindings[0].RiskLevel).Equal(types.RiskCritical)
	})

	t.Run("Replace discards the previous submission", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		audit := mustAudit(t, repo)

		first := []*model.AuditAnswer{
			{ID: "a1", AuditID: audit.ID, Question: "Q1", Answer: types.AnswerNonCompliant},
			{ID: "a2", AuditID: audit.ID, Question: "Q2", Answer: types.AnswerNonCompliant},
		}
		firstFindings := []*model.Finding{
			{ID: "f1", AuditID: audit.ID, Text: "Old finding", RiskLevel: types.RiskHigh},
			{ID: "f2", AuditID: audit.ID, Text: "Old finding 2", RiskLevel: types.RiskHigh},
		}
		gt.NoError(t, repo.Checklist().Replace(ctx, audit.ID, first, firstFindings, nil)).Required()

		second := []*model.AuditAnswer{
			{ID: "b1", AuditID: audit.ID, Question: "Q1", Answer: types.AnswerCompliant},
		}
		gt.NoError(t, repo.Checklist().Replace(ctx, audit.ID, second, nil, nil)).Required()

		gotAnswers, err := repo.Checklist().ListAnswers(ctx, audit.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, gotAnswers).Length(1)
		gt.Value(t, gotAnswers[0].Answer).Equal(types.AnswerCompliant)

		gotFindings, err := repo.Checklist().ListFindings(ctx, audit.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, gotFindings).Length(0)
	})

	t.Run("Replace scopes to one audit", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		auditA := mustAudit(t, repo)
		auditB := mustAudit(t, repo)

		gt.NoError(t, repo.Checklist().Replace(ctx, auditA.ID, []*model.AuditAnswer{
			{ID: "a1", AuditID: auditA.ID, Question: "Q1", Answer: types.AnswerCompliant},
		}, nil, nil)).Required()
		gt.NoError(t, repo.Checklist().Replace(ctx, auditB.ID, []*model.AuditAnswer{
			{ID: "b1", AuditID: auditB.ID, Question: "Q1", Answer: types.AnswerPartial},
		}, nil, nil)).Required()

		gt.NoError(t, repo.Checklist().Replace(ctx, auditA.ID, nil, nil, nil)).Required()

		gotA, err := repo.Checklist().ListAnswers(ctx, auditA.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, gotA).Length(0)

		gotB, err := repo.Checklist().ListAnswers(ctx, auditB.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, gotB).Length(1)
	})

	t.Run("Replace writes the rollup onto the audit", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		audit := mustAudit(t, repo)

		answers := []*model.AuditAnswer{
			{ID: "a1", AuditID: audit.ID, Question: "Q1", Answer: types.AnswerNonCompliant},
		}
		rollup := &model.AuditRollup{
			RiskScore:       6,
			RiskLevel:       types.AuditRiskMedium,
			ComplianceScore: 70.0,
		}
		gt.NoError(t, repo.Checklist().Replace(ctx, audit.ID, answers, nil, rollup)).Required()

		got, err := repo.Audit().Get(ctx, audit.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.RiskScore).Equal(6)
		gt.Value(t, got.RiskLevel).Equal(types.AuditRiskMedium)
		gt.Value(t, got.ComplianceScore).Equal(70.0)
		gt.Value(t, got.SystemName).Equal(audit.SystemName)
	})

	t.Run("Replace without rollup leaves the audit untouched", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		audit := mustAudit(t, repo)

		gt.NoError(t, repo.Checklist().Replace(ctx, audit.ID, []*model.AuditAnswer{
			{ID: "a1", AuditID: audit.ID, Question: "Q1", Answer: types.AnswerCompliant},
		}, nil, &model.AuditRollup{RiskScore: 2, RiskLevel: types.AuditRiskLow, ComplianceScore: 100.0})).Required()

		gt.NoError(t, repo.Checklist().Replace(ctx, audit.ID, nil, nil, nil)).Required()

		got, err := repo.Audit().Get(ctx, audit.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.RiskScore).Equal(2)
		gt.Value(t, got.ComplianceScore).Equal(100.0)
	})

	t.Run("Replace with rollup on missing audit writes nothing", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		err := repo.Checklist().Replace(ctx, 9999, []*model.AuditAnswer{
			{ID: "a1", AuditID: 9999, Question: "Q1", Answer: types.AnswerCompliant},
		}, nil, &model.AuditRollup{RiskScore: 0, RiskLevel: types.AuditRiskLow, ComplianceScore: 100.0})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()

		answers, err := repo.Checklist().ListAnswers(ctx, 9999)
		gt.NoError(t, err).Required()
		gt.Array(t, answers).Length(0)
	})
}

func TestMemoryChecklistRepository(t *testing.T) {
	runChecklistRepositoryTest(t, newMemoryRepository)
}

func TestFirestoreChecklistRepository(t *testing.T) {
	runChecklistRepositoryTest(t, newFirestoreRepository)
}
