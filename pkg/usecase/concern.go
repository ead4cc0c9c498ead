package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/allegro/pkg/domain/interfaces"
	"github.com/secmon-lab/allegro/pkg/domain/model"
)

type ConcernUseCase struct {
	repo interfaces.Repository
}

func NewConcernUseCase(repo interfaces.Repository) *ConcernUseCase {
	return &ConcernUseCase{repo: repo}
}

func (uc *ConcernUseCase) Create(ctx context.Context, containerID int64, description string) (*model.Concern, error) {
	if description == "" {
		return nil, goerr.New("concern description is required")
	}
	if _, err := uc.repo.Container().Get(ctx, containerID); err != nil {
		return nil, err
	}

	concern := &model.Concern{
		ContainerID: containerID,
		Description: description,
	}

	created, err := uc.repo.Concern().Create(ctx, concern)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create concern", goerr.V("container_id", containerID))
	}
	return created, nil
}

func (uc *ConcernUseCase) Get(ctx context.Context, id int64) (*model.Concern, error) {
	return uc.repo.Concern().Get(ctx, id)
}

func (uc *ConcernUseCase) ListByContainer(ctx context.Context, containerID int64) ([]*model.Concern, error) {
	return uc.repo.Concern().ListByContainer(ctx, containerID)
}

// Delete removes the concern with its scenarios and risks.
func (uc *ConcernUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.repo.Concern().Get(ctx, id); err != nil {
		return err
	}
	return deleteConcernTree(ctx, uc.repo, id)
}
