package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/allegro/pkg/domain/model"
	"github.com/secmon-lab/allegro/pkg/domain/types"
	"github.com/secmon-lab/allegro/pkg/usecase"
)

func newAnalyzedRisk(t *testing.T, uc *usecase.UseCases) (int64, int64) {
	t.Helper()
	ctx := context.Background()

	audit := newTestAudit(t, uc)
	asset := newTestAsset(t, uc, audit.ID)

	cascade, err := uc.Cascade.ApplyVulnerabilitySelection(ctx, asset.ID, []int64{1})
	gt.NoError(t, err).Required()
	return audit.ID, cascade.Scenarios[0].Risk.ID
}

func TestAnalyze(t *testing.T) {
	t.Run("scores with default criteria when none are saved", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()

		_, riskID := newAnalyzedRisk(t, uc)

		analysis, err := uc.Analysis.Analyze(ctx, riskID, usecase.AnalysisInput{
			CIAImpacted: "I",
			Likelihood:  3,
			Impacts: model.ImpactRatings{
				Reputation: 3, Financial: 3, Productivity: 3, Safety: 3, Legal: 3,
			},
		})
		gt.NoError(t, err).Required()

		gt.Value(t, analysis.RiskScore).Equal(9.0)
		gt.Value(t, analysis.RiskLevel).Equal(types.RiskHigh)
	})

	t.Run("uses the audit's saved criteria weights", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()

		auditID, riskID := newAnalyzedRisk(t, uc)

		_, err := uc.Criteria.Save(ctx, auditID, usecase.CriteriaInput{
			Reputation: 5, Financial: 4, Productivity: 3, Safety: 2, Legal: 1,
		})
		gt.NoError(t, err).Required()

		analysis, err := uc.Analysis.Analyze(ctx, riskID, usecase.AnalysisInput{
			CIAImpacted: "C",
			Likelihood:  4,
			Impacts: model.ImpactRatings{
				Reputation: 5, Financial: 4, Productivity: 3, Safety: 2, Legal: 1,
			},
		})
		gt.NoError(t, err).Required()

		// (25+16+9+4+1)/15 = 3.666..., times likelihood 4, rounded to 2dp
		gt.Value(t, analysis.RiskScore).Equal(14.67)
		gt.Value(t, analysis.RiskLevel).Equal(types.RiskHigh)
	})

	t.Run("updates the risk's impacted CIA property", func(t *testing.T) {
		uc, repo := newTestUseCases(t)
		ctx := context.Background()

		_, riskID := newAnalyzedRisk(t, uc)

		_, err := uc.Analysis.Analyze(ctx, riskID, usecase.AnalysisInput{
			CIAImpacted: "A",
			Likelihood:  2,
			Impacts:     model.ImpactRatings{Reputation: 2, Financial: 2, Productivity: 2, Safety: 2, Legal: 2},
		})
		gt.NoError(t, err).Required()

		risk, err := repo.Risk().Get(ctx, riskID)
		gt.NoError(t, err).Required()
		gt.Value(t, risk.CIAImpacted).Equal(types.CIAAvailability)
	})

	t.Run("clamps out-of-range input and coerces bad CIA", func(t *testing.T) {
		uc, repo := newTestUseCases(t)
		ctx := context.Background()

		_, riskID := newAnalyzedRisk(t, uc)

		analysis, err := uc.Analysis.Analyze(ctx, riskID, usecase.AnalysisInput{
			CIAImpacted: "Z",
			Likelihood:  99,
			Impacts:     model.ImpactRatings{Reputation: -3, Financial: 0, Productivity: 9, Safety: 1, Legal: 1},
		})
		gt.NoError(t, err).Required()

		gt.Value(t, analysis.Likelihood).Equal(5)
		gt.Value(t, analysis.Impacts.Reputation).Equal(1)
		gt.Value(t, analysis.Impacts.Productivity).Equal(5)

		risk, err := repo.Risk().Get(ctx, riskID)
		gt.NoError(t, err).Required()
		gt.Value(t, risk.CIAImpacted).Equal(types.CIAConfidentiality)
	})

	t.Run("re-analysis overwrites the previous result", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()

		_, riskID := newAnalyzedRisk(t, uc)

		_, err := uc.Analysis.Analyze(ctx, riskID, usecase.AnalysisInput{
			CIAImpacted: "C", Likelihood: 5,
			Impacts: model.ImpactRatings{Reputation: 5, Financial: 5, Productivity: 5, Safety: 5, Legal: 5},
		})
		gt.NoError(t, err).Required()

		_, err = uc.Analysis.Analyze(ctx, riskID, usecase.AnalysisInput{
			CIAImpacted: "C", Likelihood: 1,
			Impacts: model.ImpactRatings{Reputation: 1, Financial: 1, Productivity: 1, Safety: 1, Legal: 1},
		})
		gt.NoError(t, err).Required()

		analysis, err := uc.Analysis.Get(ctx, riskID)
		gt.NoError(t, err).Required()
		gt.Value(t, analysis.RiskScore).Equal(1.0)
		gt.Value(t, analysis.RiskLevel).Equal(types.RiskLow)
	})

	t.Run("missing risk fails", func(t *testing.T) {
		uc, _ := newTestUseCases(t)

		_, err := uc.Analysis.Analyze(context.Background(), 9999, usecase.AnalysisInput{
			CIAImpacted: "C", Likelihood: 3,
		})
		gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()
	})
}
