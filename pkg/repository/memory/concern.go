package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/allegro/pkg/domain/model"
)

type concernRepository struct {
	mu       sync.RWMutex
	concerns map[int64]*model.Concern
	nextID   int64
}

func newConcernRepository() *concernRepository {
	return &concernRepository{
		concerns: make(map[int64]*model.Concern),
		nextID:   1,
	}
}

func (r *concernRepository) Create(ctx context.Context, concern *model.Concern) (*model.Concern, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := *concern
	created.ID = r.nextID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.concerns[created.ID] = &created

	copied := created
	return &copied, nil
}

func (r *concernRepository) Get(ctx context.Context, id int64) (*model.Concern, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	concern, exists := r.concerns[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "concern not found", goerr.V("id", id))
	}

	copied := *concern
	return &copied, nil
}

func (r *concernRepository) GetByContainerAndDescription(ctx context.Context, containerID int64, description string) (*model.Concern, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, concern := range r.concerns {
		if concern.ContainerID == containerID && concern.Description == description {
			copied := *concern
			return &copied, nil
		}
	}

	return nil, goerr.Wrap(ErrNotFound, "concern not found",
		goerr.V("container_id", containerID), goerr.V("description", description))
}

func (r *concernRepository) ListByContainer(ctx context.Context, containerID int64) ([]*model.Concern, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	concerns := make([]*model.Concern, 0)
	for _, concern := range r.concerns {
		if concern.ContainerID != containerID {
			continue
		}
		copied := *concern
		concerns = append(concerns, &copied)
	}
	sort.Slice(concerns, func(i, j int) bool { return concerns[i].ID < concerns[j].ID })

	return concerns, nil
}

func (r *concernRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.concerns[id]; !exists {
		return goerr.Wrap(ErrNotFound, "concern not found", goerr.V("id", id))
	}

	delete(r.concerns, id)
	return nil
}
