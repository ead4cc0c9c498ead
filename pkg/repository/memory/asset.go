package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/allegro/pkg/domain/model"
)

type assetRepository struct {
	mu     sync.RWMutex
	assets map[int64]*model.Asset
	nextID int64
}

func newAssetRepository() *assetRepository {
	return &assetRepository{
		assets: make(map[int64]*model.Asset),
		nextID: 1,
	}
}

func (r *assetRepository) Create(ctx context.Context, asset *model.Asset) (*model.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := *asset
	created.ID = r.nextID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.assets[created.ID] = &created

	copied := created
	return &copied, nil
}

func (r *assetRepository) Get(ctx context.Context, id int64) (*model.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	asset, exists := r.assets[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "asset not found", goerr.V("id", id))
	}

	copied := *asset
	return &copied, nil
}

func (r *assetRepository) ListByAudit(ctx context.Context, auditID int64) ([]*model.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	assets := make([]*model.Asset, 0)
	for _, asset := range r.assets {
		if asset.AuditID != auditID {
			continue
		}
		copied := *asset
		assets = append(assets, &copied)
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].ID < assets[j].ID })

	return assets, nil
}

func (r *assetRepository) Update(ctx context.Context, asset *model.Asset) (*model.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.assets[asset.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "asset not found", goerr.V("id", asset.ID))
	}

	updated := *asset
	updated.AuditID = existing.AuditID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.assets[updated.ID] = &updated

	copied := updated
	return &copied, nil
}

func (r *assetRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.assets[id]; !exists {
		return goerr.Wrap(ErrNotFound, "asset not found", goerr.V("id", id))
	}

	delete(r.assets, id)
	return nil
}
