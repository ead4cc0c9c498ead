package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/allegro/pkg/domain/types"
	"github.com/secmon-lab/allegro/pkg/usecase"
)

func TestAuditCreate(t *testing.T) {
	t.Run("requires a system name", func(t *testing.T) {
		uc, _ := newTestUseCases(t)

		_, err := uc.Audit.Create(context.Background(), "", "", time.Time{})
		gt.Error(t, err)
	})

	t.Run("defaults the audit date to now", func(t *testing.T) {
		uc, _ := newTestUseCases(t)

		before := time.Now().UTC()
		audit, err := uc.Audit.Create(context.Background(), "Billing System", "", time.Time{})
		gt.NoError(t, err).Required()

		gt.Bool(t, audit.AuditDate.Before(before)).False()
	})

	t.Run("keeps an explicit audit date", func(t *testing.T) {
		uc, _ := newTestUseCases(t)

		date := time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)
		audit, err := uc.Audit.Create(context.Background(), "Billing System", "annual", date)
		gt.NoError(t, err).Required()
		gt.Value(t, audit.AuditDate).Equal(date)
		gt.Value(t, audit.Description).Equal("annual")
	})
}

func TestAuditDelete(t *testing.T) {
	t.Run("removes the full subtree", func(t *testing.T) {
		uc, repo := newTestUseCases(t)
		ctx := context.Background()

		audit := newTestAudit(t, uc)
		asset := newTestAsset(t, uc, audit.ID)

		_, err := uc.Criteria.Save(ctx, audit.ID, usecase.CriteriaInput{
			Reputation: 5, Financial: 4, Productivity: 3, Safety: 2, Legal: 1,
		})
		gt.NoError(t, err).Required()

		cascade, err := uc.Cascade.ApplyVulnerabilitySelection(ctx, asset.ID, []int64{1, 2})
		gt.NoError(t, err).Required()

		riskID := cascade.Scenarios[0].Risk.ID
		_, err = uc.Analysis.Analyze(ctx, riskID, usecase.AnalysisInput{
			CIAImpacted: "C", Likelihood: 3,
		})
		gt.NoError(t, err).Required()
		_, err = uc.Response.Save(ctx, riskID, "Mitigate", "Patch available", "Security Team", time.Time{})
		gt.NoError(t, err).Required()

		answers := map[string]string{}
		for _, selection := range cascade.Selections {
			answers[fmt.Sprintf("av_%d", selection.ID)] = "compliant"
		}
		_, err = uc.Checklist.Score(ctx, audit.ID, answers, nil)
		gt.NoError(t, err).Required()

		gt.NoError(t, uc.Audit.Delete(ctx, audit.ID)).Required()

		_, err = uc.Audit.Get(ctx, audit.ID)
		gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()
		_, err = repo.Asset().Get(ctx, asset.ID)
		gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()
		_, err = repo.Container().Get(ctx, cascade.Container.ID)
		gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()
		_, err = repo.Concern().Get(ctx, cascade.Concern.ID)
		gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()
		_, err = repo.Risk().Get(ctx, riskID)
		gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()
		_, err = repo.Analysis().GetByRisk(ctx, riskID)
		gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()
		_, err = repo.Response().GetByRisk(ctx, riskID)
		gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()
		_, err = repo.Criteria().GetByAudit(ctx, audit.ID)
		gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()

		selections, err := repo.AssetVuln().ListByAsset(ctx, asset.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, selections).Length(0)

		stored, err := repo.Checklist().ListAnswers(ctx, audit.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, stored).Length(0)
	})

	t.Run("missing audit fails", func(t *testing.T) {
		uc, _ := newTestUseCases(t)

		err := uc.Audit.Delete(context.Background(), 9999)
		gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()
	})
}

func TestAssetDelete(t *testing.T) {
	uc, repo := newTestUseCases(t)
	ctx := context.Background()

	audit := newTestAudit(t, uc)
	asset := newTestAsset(t, uc, audit.ID)

	cascade, err := uc.Cascade.ApplyVulnerabilitySelection(ctx, asset.ID, []int64{1})
	gt.NoError(t, err).Required()

	gt.NoError(t, uc.Asset.Delete(ctx, asset.ID)).Required()

	_, err = repo.Asset().Get(ctx, asset.ID)
	gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()
	_, err = repo.Container().Get(ctx, cascade.Container.ID)
	gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()

	// The audit itself is untouched.
	_, err = uc.Audit.Get(ctx, audit.ID)
	gt.NoError(t, err)
}
