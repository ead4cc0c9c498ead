package memory

import (
	"context"
	"sync"
	"time"

	"github.com/secmon-lab/allegro/pkg/domain/model"
)

type assetVulnRepository struct {
	mu      sync.RWMutex
	byAsset map[int64][]*model.AssetVulnerability
	nextID  int64
}

func newAssetVulnRepository() *assetVulnRepository {
	return &assetVulnRepository{
		byAsset: make(map[int64][]*model.AssetVulnerability),
		nextID:  1,
	}
}

func (r *assetVulnRepository) ReplaceForAsset(ctx context.Context, assetID int64, selections []*model.AssetVulnerability) ([]*model.AssetVulnerability, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.replaceLocked(assetID, selections), nil
}

// replaceLocked swaps the asset's selections; the caller must hold r.mu.
func (r *assetVulnRepository) replaceLocked(assetID int64, selections []*model.AssetVulnerability) []*model.AssetVulnerability {
	now := time.Now().UTC()
	stored := make([]*model.AssetVulnerability, 0, len(selections))
	for _, selection := range selections {
		created := *selection
		created.ID = r.nextID
		created.AssetID = assetID
		created.CreatedAt = now
		r.nextID++
		stored = append(stored, &created)
	}

	if len(stored) == 0 {
		delete(r.byAsset, assetID)
	} else {
		r.byAsset[assetID] = stored
	}

	copied := make([]*model.AssetVulnerability, len(stored))
	for i, selection := range stored {
		c := *selection
		copied[i] = &c
	}
	return copied
}

func (r *assetVulnRepository) ListByAsset(ctx context.Context, assetID int64) ([]*model.AssetVulnerability, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	selections := r.byAsset[assetID]
	copied := make([]*model.AssetVulnerability, len(selections))
	for i, selection := range selections {
		c := *selection
		copied[i] = &c
	}
	return copied, nil
}
