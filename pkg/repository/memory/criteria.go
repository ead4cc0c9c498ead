package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/allegro/pkg/domain/model"
)

type criteriaRepository struct {
	mu       sync.RWMutex
	criteria map[int64]*model.RiskCriteria // keyed by audit ID
}

func newCriteriaRepository() *criteriaRepository {
	return &criteriaRepository{
		criteria: make(map[int64]*model.RiskCriteria),
	}
}

func (r *criteriaRepository) Put(ctx context.Context, criteria *model.RiskCriteria) (*model.RiskCriteria, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	stored := *criteria
	stored.UpdatedAt = now
	if existing, exists := r.criteria[criteria.AuditID]; exists {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = now
	}

	r.criteria[criteria.AuditID] = &stored

	copied := stored
	return &copied, nil
}

func (r *criteriaRepository) GetByAudit(ctx context.Context, auditID int64) (*model.RiskCriteria, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	criteria, exists := r.criteria[auditID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "risk criteria not found", goerr.V("audit_id", auditID))
	}

	copied := *criteria
	return &copied, nil
}

func (r *criteriaRepository) Delete(ctx context.Context, auditID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.criteria, auditID)
	return nil
}
