package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/allegro/pkg/domain/model"
)

type responseRepository struct {
	mu        sync.RWMutex
	responses map[int64]*model.RiskResponse // keyed by risk ID
}

func newResponseRepository() *responseRepository {
	return &responseRepository{
		responses: make(map[int64]*model.RiskResponse),
	}
}

func (r *responseRepository) Put(ctx context.Context, response *model.RiskResponse) (*model.RiskResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	stored := *response
	stored.UpdatedAt = now
	if existing, exists := r.responses[response.RiskID]; exists {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = now
	}

	r.responses[response.RiskID] = &stored

	copied := stored
	return &copied, nil
}

func (r *responseRepository) GetByRisk(ctx context.Context, riskID int64) (*model.RiskResponse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	response, exists := r.responses[riskID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "risk response not found", goerr.V("risk_id", riskID))
	}

	copied := *response
	return &copied, nil
}

// deleteByRiskLocked removes the response of a risk; the caller must hold r.mu.
func (r *responseRepository) deleteByRiskLocked(riskID int64) {
	delete(r.responses, riskID)
}
