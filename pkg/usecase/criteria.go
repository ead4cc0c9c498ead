package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/allegro/pkg/domain/interfaces"
	"github.com/secmon-lab/allegro/pkg/domain/model"
)

type CriteriaUseCase struct {
	repo interfaces.Repository
}

func NewCriteriaUseCase(repo interfaces.Repository) *CriteriaUseCase {
	return &CriteriaUseCase{repo: repo}
}

// CriteriaInput carries the five impact-area weights. A zero weight means
// unset and takes the default; everything else is clamped to [1,5].
type CriteriaInput struct {
	Reputation   int
	Financial    int
	Productivity int
	Safety       int
	Legal        int
	Notes        string
}

func (uc *CriteriaUseCase) Save(ctx context.Context, auditID int64, input CriteriaInput) (*model.RiskCriteria, error) {
	if _, err := uc.repo.Audit().Get(ctx, auditID); err != nil {
		return nil, err
	}

	criteria := &model.RiskCriteria{
		AuditID:      auditID,
		Reputation:   input.Reputation,
		Financial:    input.Financial,
		Productivity: input.Productivity,
		Safety:       input.Safety,
		Legal:        input.Legal,
		Notes:        input.Notes,
	}
	criteria.Normalize()

	saved, err := uc.repo.Criteria().Put(ctx, criteria)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to save criteria", goerr.V("audit_id", auditID))
	}
	return saved, nil
}

func (uc *CriteriaUseCase) Get(ctx context.Context, auditID int64) (*model.RiskCriteria, error) {
	return uc.repo.Criteria().GetByAudit(ctx, auditID)
}
