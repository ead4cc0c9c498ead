package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/allegro/pkg/domain/interfaces"
	"github.com/secmon-lab/allegro/pkg/domain/model"
	"github.com/secmon-lab/allegro/pkg/domain/types"
)

type ContainerUseCase struct {
	repo interfaces.Repository
}

func NewContainerUseCase(repo interfaces.Repository) *ContainerUseCase {
	return &ContainerUseCase{repo: repo}
}

func (uc *ContainerUseCase) Create(ctx context.Context, assetID int64, name, containerType, location, description string) (*model.Container, error) {
	if name == "" {
		return nil, goerr.New("container name is required")
	}
	if _, err := uc.repo.Asset().Get(ctx, assetID); err != nil {
		return nil, err
	}

	container := &model.Container{
		AssetID:     assetID,
		Name:        name,
		Type:        types.CoerceContainerType(containerType),
		Location:    types.CoerceContainerLocation(location),
		Description: description,
	}

	created, err := uc.repo.Container().Create(ctx, container)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create container", goerr.V("asset_id", assetID))
	}
	return created, nil
}

func (uc *ContainerUseCase) Get(ctx context.Context, id int64) (*model.Container, error) {
	return uc.repo.Container().Get(ctx, id)
}

func (uc *ContainerUseCase) ListByAsset(ctx context.Context, assetID int64) ([]*model.Container, error) {
	return uc.repo.Container().ListByAsset(ctx, assetID)
}

// Delete removes the container with its concerns and their scenarios.
func (uc *ContainerUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.repo.Container().Get(ctx, id); err != nil {
		return err
	}
	return deleteContainerTree(ctx, uc.repo, id)
}
