package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/allegro/pkg/domain/interfaces"
	"github.com/secmon-lab/allegro/pkg/domain/model"
	"github.com/secmon-lab/allegro/pkg/domain/types"
)

type AnalysisUseCase struct {
	repo interfaces.Repository
}

func NewAnalysisUseCase(repo interfaces.Repository) *AnalysisUseCase {
	return &AnalysisUseCase{repo: repo}
}

// AnalysisInput carries one risk analysis submission. Likelihood and impact
// ratings are clamped to [1,5]; an invalid CIA property falls back to C.
type AnalysisInput struct {
	CIAImpacted string
	Likelihood  int
	Impacts     model.ImpactRatings
}

// Analyze scores the risk against the organization's criteria for the audit
// it belongs to, updates the risk's impacted CIA property and upserts the
// analysis. An audit without saved criteria is scored with every weight at
// the default.
func (uc *AnalysisUseCase) Analyze(ctx context.Context, riskID int64, input AnalysisInput) (*model.RiskAnalysis, error) {
	risk, err := uc.repo.Risk().Get(ctx, riskID)
	if err != nil {
		return nil, err
	}

	criteria, err := uc.criteriaForRisk(ctx, risk)
	if err != nil {
		return nil, err
	}

	likelihood := model.ClampRating(input.Likelihood)
	impacts := input.Impacts.Clamp()
	score, level := criteria.Score(likelihood, impacts)

	cia := types.CoerceCIAProperty(input.CIAImpacted)
	if err := uc.repo.Risk().UpdateCIA(ctx, riskID, cia); err != nil {
		return nil, goerr.Wrap(err, "failed to update risk CIA", goerr.V("risk_id", riskID))
	}

	analysis := &model.RiskAnalysis{
		RiskID:     riskID,
		Likelihood: likelihood,
		Impacts:    impacts,
		RiskScore:  score,
		RiskLevel:  level,
	}

	saved, err := uc.repo.Analysis().Put(ctx, analysis)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to save analysis", goerr.V("risk_id", riskID))
	}
	return saved, nil
}

func (uc *AnalysisUseCase) Get(ctx context.Context, riskID int64) (*model.RiskAnalysis, error) {
	return uc.repo.Analysis().GetByRisk(ctx, riskID)
}

// criteriaForRisk resolves the audit the risk belongs to by walking
// risk → scenario → concern → container → asset, then loads that audit's
// criteria, defaulting every weight when none are saved.
func (uc *AnalysisUseCase) criteriaForRisk(ctx context.Context, risk *model.Risk) (*model.RiskCriteria, error) {
	scenario, err := uc.repo.Scenario().Get(ctx, risk.ScenarioID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve scenario", goerr.V("risk_id", risk.ID))
	}
	concern, err := uc.repo.Concern().Get(ctx, scenario.ConcernID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve concern", goerr.V("risk_id", risk.ID))
	}
	container, err := uc.repo.Container().Get(ctx, concern.ContainerID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve container", goerr.V("risk_id", risk.ID))
	}
	asset, err := uc.repo.Asset().Get(ctx, container.AssetID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve asset", goerr.V("risk_id", risk.ID))
	}

	criteria, err := uc.repo.Criteria().GetByAudit(ctx, asset.AuditID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return model.DefaultRiskCriteria(asset.AuditID), nil
		}
		return nil, goerr.Wrap(err, "failed to load criteria", goerr.V("audit_id", asset.AuditID))
	}
	return criteria, nil
}
