package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/allegro/pkg/domain/interfaces"
	"github.com/secmon-lab/allegro/pkg/domain/model"
	"github.com/secmon-lab/allegro/pkg/domain/types"
	"github.com/secmon-lab/allegro/pkg/service/checklist"
)

// CascadeUseCase builds threat scenarios and risks, either from a manually
// authored scenario or by cascading a vulnerability selection through the
// reserved auto-generated container and concern.
type CascadeUseCase struct {
	repo    interfaces.Repository
	library *checklist.Library
}

func NewCascadeUseCase(repo interfaces.Repository, library *checklist.Library) *CascadeUseCase {
	return &CascadeUseCase{repo: repo, library: library}
}

// AddManualScenario records an auditor-authored scenario under a concern and
// creates its risk in the same operation. Enum fields are tolerantly coerced;
// free text passes through untouched. The risk's consequence detail prefers
// the description and falls back to the motive.
func (uc *CascadeUseCase) AddManualScenario(ctx context.Context, concernID int64, actor, accessMethod, motive, consequence, description string) (*model.ScenarioRisk, error) {
	if _, err := uc.repo.Concern().Get(ctx, concernID); err != nil {
		return nil, err
	}

	conseq := types.CoerceConsequence(consequence)
	detail := description
	if detail == "" {
		detail = motive
	}

	scenario := &model.ThreatScenario{
		ConcernID:    concernID,
		Actor:        types.CoerceThreatActor(actor),
		AccessMethod: types.CoerceAccessMethod(accessMethod),
		Motive:       motive,
		Consequence:  conseq,
		Description:  description,
	}
	risk := &model.Risk{
		CIAImpacted:       types.CIAConfidentiality,
		ConsequenceDetail: conseq.String() + ": " + detail,
	}

	pair, err := uc.repo.Scenario().CreateWithRisk(ctx, scenario, risk)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create scenario", goerr.V("concern_id", concernID))
	}
	return pair, nil
}

// CascadeResult reports what a vulnerability selection produced.
type CascadeResult struct {
	Container  *model.Container
	Concern    *model.Concern
	Scenarios  []*model.ScenarioRisk
	Selections []*model.AssetVulnerability
}

// ApplyVulnerabilitySelection replaces the asset's vulnerability selections
// and regenerates the derived threat scenarios and risks under the reserved
// auto-generated concern. Unknown vulnerability ids are skipped silently, so
// a stale selection never aborts the whole submission. Passing an empty id
// list wipes the derived state. Re-running with the same ids is idempotent
// apart from row ids and timestamps.
func (uc *CascadeUseCase) ApplyVulnerabilitySelection(ctx context.Context, assetID int64, vulnIDs []int64) (*CascadeResult, error) {
	asset, err := uc.repo.Asset().Get(ctx, assetID)
	if err != nil {
		return nil, err
	}

	container, err := uc.resolveAutoContainer(ctx, assetID)
	if err != nil {
		return nil, err
	}
	concern, err := uc.resolveAutoConcern(ctx, container.ID)
	if err != nil {
		return nil, err
	}

	// Provisional impact term of the seed score. An unnormalized asset with
	// no ratings counts as mid-criticality rather than zero.
	impact := asset.CriticalityScore()
	if impact == 0 {
		impact = 9
	}

	primaryReq := asset.PrimaryReq
	if !primaryReq.IsValid() {
		primaryReq = types.CIAConfidentiality
	}

	var entries []*model.ScenarioRisk
	var selections []*model.AssetVulnerability
	for _, vulnID := range vulnIDs {
		vuln, ok := uc.library.Get(vulnID)
		if !ok {
			continue
		}

		selections = append(selections, &model.AssetVulnerability{
			VulnID:     vulnID,
			Likelihood: vuln.DefaultLikelihood,
			RiskScore:  vuln.DefaultLikelihood * impact,
		})

		description := fmt.Sprintf("Auto-generated from OWASP vulnerability: %s (%s) - Impact: %s",
			vuln.Name, vuln.MappedThreat, vuln.MappedImpact)

		entries = append(entries, &model.ScenarioRisk{
			Scenario: &model.ThreatScenario{
				Actor:        model.InferActor(vuln.MappedThreat),
				AccessMethod: types.AccessNetwork,
				Motive:       "Malicious Intent",
				Consequence:  model.InferConsequence(vuln.MappedImpact),
				Description:  description,
			},
			Risk: &model.Risk{
				CIAImpacted:       primaryReq,
				ConsequenceDetail: vuln.MappedImpact,
			},
		})
	}

	// Both derived sets swap in a single repository operation, so a failure
	// never leaves new scenarios next to the old selections.
	scenarios, stored, err := uc.repo.Scenario().ReplaceCascade(ctx, concern.ID, assetID, entries, selections)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCascadeFailed, err)
	}

	return &CascadeResult{
		Container:  container,
		Concern:    concern,
		Scenarios:  scenarios,
		Selections: stored,
	}, nil
}

// ListByConcern returns the concern's scenarios in creation order.
func (uc *CascadeUseCase) ListByConcern(ctx context.Context, concernID int64) ([]*model.ThreatScenario, error) {
	return uc.repo.Scenario().ListByConcern(ctx, concernID)
}

// DeleteScenario removes a single scenario together with its risk and the
// risk's analysis and response.
func (uc *CascadeUseCase) DeleteScenario(ctx context.Context, scenarioID int64) error {
	return uc.repo.Scenario().DeleteWithRisk(ctx, scenarioID)
}

func (uc *CascadeUseCase) resolveAutoContainer(ctx context.Context, assetID int64) (*model.Container, error) {
	container, err := uc.repo.Container().GetByAssetAndName(ctx, assetID, model.AutoContainerName)
	if err == nil {
		return container, nil
	}
	if !errors.Is(err, types.ErrNotFound) {
		return nil, goerr.Wrap(err, "failed to resolve auto container", goerr.V("asset_id", assetID))
	}

	created, err := uc.repo.Container().Create(ctx, &model.Container{
		AssetID:     assetID,
		Name:        model.AutoContainerName,
		Type:        types.ContainerTechnical,
		Location:    types.LocationInternal,
		Description: model.AutoContainerDescription,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create auto container", goerr.V("asset_id", assetID))
	}
	return created, nil
}

func (uc *CascadeUseCase) resolveAutoConcern(ctx context.Context, containerID int64) (*model.Concern, error) {
	concern, err := uc.repo.Concern().GetByContainerAndDescription(ctx, containerID, model.AutoConcernDescription)
	if err == nil {
		return concern, nil
	}
	if !errors.Is(err, types.ErrNotFound) {
		return nil, goerr.Wrap(err, "failed to resolve auto concern", goerr.V("container_id", containerID))
	}

	created, err := uc.repo.Concern().Create(ctx, &model.Concern{
		ContainerID: containerID,
		Description: model.AutoConcernDescription,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create auto concern", goerr.V("container_id", containerID))
	}
	return created, nil
}
