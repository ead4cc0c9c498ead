package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/allegro/pkg/domain/model"
)

type containerRepository struct {
	mu         sync.RWMutex
	containers map[int64]*model.Container
	nextID     int64
}

func newContainerRepository() *containerRepository {
	return &containerRepository{
		containers: make(map[int64]*model.Container),
		nextID:     1,
	}
}

func (r *containerRepository) Create(ctx context.Context, container *model.Container) (*model.Container, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := *container
	created.ID = r.nextID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.containers[created.ID] = &created

	copied := created
	return &copied, nil
}

func (r *containerRepository) Get(ctx context.Context, id int64) (*model.Container, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	container, exists := r.containers[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "container not found", goerr.V("id", id))
	}

	copied := *container
	return &copied, nil
}

func (r *containerRepository) GetByAssetAndName(ctx context.Context, assetID int64, name string) (*model.Container, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, container := range r.containers {
		if container.AssetID == assetID && container.Name == name {
			copied := *container
			return &copied, nil
		}
	}

	return nil, goerr.Wrap(ErrNotFound, "container not found",
		goerr.V("asset_id", assetID), goerr.V("name", name))
}

func (r *containerRepository) ListByAsset(ctx context.Context, assetID int64) ([]*model.Container, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	containers := make([]*model.Container, 0)
	for _, container := range r.containers {
		if container.AssetID != assetID {
			continue
		}
		copied := *container
		containers = append(containers, &copied)
	}
	sort.Slice(containers, func(i, j int) bool { return containers[i].ID < containers[j].ID })

	return containers, nil
}

func (r *containerRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.containers[id]; !exists {
		return goerr.Wrap(ErrNotFound, "container not found", goerr.V("id", id))
	}

	delete(r.containers, id)
	return nil
}
