package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/allegro/pkg/domain/interfaces"
	"github.com/secmon-lab/allegro/pkg/domain/model"
	"github.com/secmon-lab/allegro/pkg/domain/types"
)

type AssetUseCase struct {
	repo interfaces.Repository
}

func NewAssetUseCase(repo interfaces.Repository) *AssetUseCase {
	return &AssetUseCase{repo: repo}
}

// AssetInput carries a profiled asset. CIA ratings are clamped to [1,5] and
// an invalid primary requirement falls back to Confidentiality.
type AssetInput struct {
	Name            string
	Description     string
	OwnerName       string
	Rationale       string
	Confidentiality int
	Integrity       int
	Availability    int
	PrimaryReq      string
}

func (uc *AssetUseCase) Create(ctx context.Context, auditID int64, input AssetInput) (*model.Asset, error) {
	if input.Name == "" {
		return nil, goerr.New("asset name is required")
	}
	if _, err := uc.repo.Audit().Get(ctx, auditID); err != nil {
		return nil, err
	}

	asset := assetFromInput(input)
	asset.AuditID = auditID

	created, err := uc.repo.Asset().Create(ctx, asset)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create asset", goerr.V("audit_id", auditID))
	}
	return created, nil
}

func (uc *AssetUseCase) Update(ctx context.Context, id int64, input AssetInput) (*model.Asset, error) {
	if input.Name == "" {
		return nil, goerr.New("asset name is required")
	}

	asset := assetFromInput(input)
	asset.ID = id

	updated, err := uc.repo.Asset().Update(ctx, asset)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update asset", goerr.V("id", id))
	}
	return updated, nil
}

func (uc *AssetUseCase) Get(ctx context.Context, id int64) (*model.Asset, error) {
	return uc.repo.Asset().Get(ctx, id)
}

func (uc *AssetUseCase) ListByAudit(ctx context.Context, auditID int64) ([]*model.Asset, error) {
	return uc.repo.Asset().ListByAudit(ctx, auditID)
}

// Delete removes the asset and its whole subtree.
func (uc *AssetUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.repo.Asset().Get(ctx, id); err != nil {
		return err
	}
	return deleteAssetTree(ctx, uc.repo, id)
}

func assetFromInput(input AssetInput) *model.Asset {
	asset := &model.Asset{
		Name:            input.Name,
		Description:     input.Description,
		OwnerName:       input.OwnerName,
		Rationale:       input.Rationale,
		Confidentiality: input.Confidentiality,
		Integrity:       input.Integrity,
		Availability:    input.Availability,
		PrimaryReq:      types.CIAProperty(input.PrimaryReq),
	}
	asset.Normalize()
	return asset
}

// deleteAssetTree walks containers, concerns, scenarios and selections under
// the asset and removes them child-first, so a failure partway through never
// leaves children without a parent.
func deleteAssetTree(ctx context.Context, repo interfaces.Repository, assetID int64) error {
	containers, err := repo.Container().ListByAsset(ctx, assetID)
	if err != nil {
		return goerr.Wrap(err, "failed to list containers", goerr.V("asset_id", assetID))
	}
	for _, container := range containers {
		if err := deleteContainerTree(ctx, repo, container.ID); err != nil {
			return err
		}
	}

	if _, err := repo.AssetVuln().ReplaceForAsset(ctx, assetID, nil); err != nil {
		return goerr.Wrap(err, "failed to clear vulnerability selections", goerr.V("asset_id", assetID))
	}

	if err := repo.Asset().Delete(ctx, assetID); err != nil {
		return goerr.Wrap(err, "failed to delete asset", goerr.V("asset_id", assetID))
	}
	return nil
}

func deleteContainerTree(ctx context.Context, repo interfaces.Repository, containerID int64) error {
	concerns, err := repo.Concern().ListByContainer(ctx, containerID)
	if err != nil {
		return goerr.Wrap(err, "failed to list concerns", goerr.V("container_id", containerID))
	}
	for _, concern := range concerns {
		if err := deleteConcernTree(ctx, repo, concern.ID); err != nil {
			return err
		}
	}

	if err := repo.Container().Delete(ctx, containerID); err != nil {
		return goerr.Wrap(err, "failed to delete container", goerr.V("container_id", containerID))
	}
	return nil
}

func deleteConcernTree(ctx context.Context, repo interfaces.Repository, concernID int64) error {
	scenarios, err := repo.Scenario().ListByConcern(ctx, concernID)
	if err != nil {
		return goerr.Wrap(err, "failed to list scenarios", goerr.V("concern_id", concernID))
	}
	for _, scenario := range scenarios {
		if err := repo.Scenario().DeleteWithRisk(ctx, scenario.ID); err != nil {
			return goerr.Wrap(err, "failed to delete scenario", goerr.V("scenario_id", scenario.ID))
		}
	}

	if err := repo.Concern().Delete(ctx, concernID); err != nil {
		return goerr.Wrap(err, "failed to delete concern", goerr.V("concern_id", concernID))
	}
	return nil
}
