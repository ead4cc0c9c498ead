package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/allegro/pkg/domain/model"
)

type auditRepository struct {
	mu     sync.RWMutex
	audits map[int64]*model.Audit
	nextID int64
}

func newAuditRepository() *auditRepository {
	return &auditRepository{
		audits: make(map[int64]*model.Audit),
		nextID: 1,
	}
}

func (r *auditRepository) Create(ctx context.Context, audit *model.Audit) (*model.Audit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := &model.Audit{
		ID:          r.nextID,
		SystemName:  audit.SystemName,
		Description: audit.Description,
		AuditDate:   audit.AuditDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.nextID++

	r.audits[created.ID] = created

	copied := *created
	return &copied, nil
}

func (r *auditRepository) Get(ctx context.Context, id int64) (*model.Audit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	audit, exists := r.audits[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "audit not found", goerr.V("id", id))
	}

	copied := *audit
	return &copied, nil
}

func (r *auditRepository) List(ctx context.Context) ([]*model.Audit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	audits := make([]*model.Audit, 0, len(r.audits))
	for _, audit := range r.audits {
		copied := *audit
		audits = append(audits, &copied)
	}
	sort.Slice(audits, func(i, j int) bool { return audits[i].ID < audits[j].ID })

	return audits, nil
}

func (r *auditRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.audits[id]; !exists {
		return goerr.Wrap(ErrNotFound, "audit not found", goerr.V("id", id))
	}

	delete(r.audits, id)
	return nil
}
