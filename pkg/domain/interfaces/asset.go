package interfaces

import (
	"context"

	"github.com/secmon-lab/allegro/pkg/domain/model"
)

// AssetRepository defines data access for information assets
type AssetRepository interface {
	Create(ctx context.Context, asset *model.Asset) (*model.Asset, error)
	Get(ctx context.Context, id int64) (*model.Asset, error)
	ListByAudit(ctx context.Context, auditID int64) ([]*model.Asset, error)
	Update(ctx context.Context, asset *model.Asset) (*model.Asset, error)
	Delete(ctx context.Context, id int64) error
}

// ContainerRepository defines data access for asset containers
type ContainerRepository interface {
	Create(ctx context.Context, container *model.Container) (*model.Container, error)
	Get(ctx context.Context, id int64) (*model.Container, error)

	// GetByAssetAndName retrieves a container by its unique (asset, name)
	// pair; the cascade uses it to resolve the reserved container
	// idempotently.
	GetByAssetAndName(ctx context.Context, assetID int64, name string) (*model.Container, error)

	ListByAsset(ctx context.Context, assetID int64) ([]*model.Container, error)
	Delete(ctx context.Context, id int64) error
}

// ConcernRepository defines data access for areas of concern
type ConcernRepository interface {
	Create(ctx context.Context, concern *model.Concern) (*model.Concern, error)
	Get(ctx context.Context, id int64) (*model.Concern, error)

	// GetByContainerAndDescription resolves the reserved cascade concern
	// idempotently, the same way GetByAssetAndName does for containers.
	GetByContainerAndDescription(ctx context.Context, containerID int64, description string) (*model.Concern, error)

	ListByContainer(ctx context.Context, containerID int64) ([]*model.Concern, error)
	Delete(ctx context.Context, id int64) error
}
