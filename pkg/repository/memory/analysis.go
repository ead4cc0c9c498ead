package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/allegro/pkg/domain/model"
)

type analysisRepository struct {
	mu       sync.RWMutex
	analyses map[int64]*model.RiskAnalysis // keyed by risk ID
}

func newAnalysisRepository() *analysisRepository {
	return &analysisRepository{
		analyses: make(map[int64]*model.RiskAnalysis),
	}
}

func (r *analysisRepository) Put(ctx context.Context, analysis *model.RiskAnalysis) (*model.RiskAnalysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	stored := *analysis
	stored.UpdatedAt = now
	if existing, exists := r.analyses[analysis.RiskID]; exists {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = now
	}

	r.analyses[analysis.RiskID] = &stored

	copied := stored
	return &copied, nil
}

func (r *analysisRepository) GetByRisk(ctx context.Context, riskID int64) (*model.RiskAnalysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	analysis, exists := r.analyses[riskID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "risk analysis not found", goerr.V("risk_id", riskID))
	}

	copied := *analysis
	return &copied, nil
}

// deleteByRiskLocked removes the analysis of a risk; the caller must hold r.mu.
func (r *analysisRepository) deleteByRiskLocked(riskID int64) {
	delete(r.analyses, riskID)
}
