package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/allegro/pkg/domain/model"
	"github.com/secmon-lab/allegro/pkg/domain/types"
)

type riskRepository struct {
	mu         sync.RWMutex
	risks      map[int64]*model.Risk
	byScenario map[int64]int64
	nextID     int64
}

func newRiskRepository() *riskRepository {
	return &riskRepository{
		risks:      make(map[int64]*model.Risk),
		byScenario: make(map[int64]int64),
		nextID:     1,
	}
}

func (r *riskRepository) Get(ctx context.Context, id int64) (*model.Risk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	risk, exists := r.risks[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "risk not found", goerr.V("id", id))
	}

	copied := *risk
	return &copied, nil
}

func (r *riskRepository) GetByScenario(ctx context.Context, scenarioID int64) (*model.Risk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	riskID, exists := r.byScenario[scenarioID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "risk not found", goerr.V("scenario_id", scenarioID))
	}

	copied := *r.risks[riskID]
	return &copied, nil
}

func (r *riskRepository) UpdateCIA(ctx context.Context, id int64, cia types.CIAProperty) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	risk, exists := r.risks[id]
	if !exists {
		return goerr.Wrap(ErrNotFound, "risk not found", goerr.V("id", id))
	}

	risk.CIAImpacted = cia
	risk.UpdatedAt = time.Now().UTC()
	return nil
}

// createLocked inserts a risk; the caller must hold r.mu.
func (r *riskRepository) createLocked(risk *model.Risk) *model.Risk {
	now := time.Now().UTC()
	created := *risk
	created.ID = r.nextID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.risks[created.ID] = &created
	r.byScenario[created.ScenarioID] = created.ID

	copied := created
	return &copied
}

// deleteLocked removes a risk; the caller must hold r.mu.
func (r *riskRepository) deleteLocked(id int64) {
	if risk, exists := r.risks[id]; exists {
		delete(r.byScenario, risk.ScenarioID)
		delete(r.risks, id)
	}
}
