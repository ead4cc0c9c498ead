package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/allegro/pkg/domain/interfaces"
	"github.com/secmon-lab/allegro/pkg/domain/model"
	"github.com/secmon-lab/allegro/pkg/domain/types"
)

type ResponseUseCase struct {
	repo interfaces.Repository
}

func NewResponseUseCase(repo interfaces.Repository) *ResponseUseCase {
	return &ResponseUseCase{repo: repo}
}

// Save records the treatment decision for a risk. The strategy is an explicit
// human judgment and is rejected when invalid, unlike the coerced scenario
// enums. One response per risk; saving again overwrites.
func (uc *ResponseUseCase) Save(ctx context.Context, riskID int64, strategy, rationale, owner string, targetDate time.Time) (*model.RiskResponse, error) {
	parsed, err := types.ParseResponseStrategy(strategy)
	if err != nil {
		return nil, err
	}

	if _, err := uc.repo.Risk().Get(ctx, riskID); err != nil {
		return nil, err
	}

	response := &model.RiskResponse{
		RiskID:     riskID,
		Strategy:   parsed,
		Rationale:  rationale,
		Owner:      owner,
		TargetDate: targetDate,
	}

	saved, err := uc.repo.Response().Put(ctx, response)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to save response", goerr.V("risk_id", riskID))
	}
	return saved, nil
}

func (uc *ResponseUseCase) Get(ctx context.Context, riskID int64) (*model.RiskResponse, error) {
	return uc.repo.Response().GetByRisk(ctx, riskID)
}
