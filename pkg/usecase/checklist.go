package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/allegro/pkg/domain/interfaces"
	"github.com/secmon-lab/allegro/pkg/domain/model"
	"github.com/secmon-lab/allegro/pkg/domain/types"
	"github.com/secmon-lab/allegro/pkg/service/checklist"
)

type ChecklistUseCase struct {
	repo    interfaces.Repository
	library *checklist.Library
}

func NewChecklistUseCase(repo interfaces.Repository, library *checklist.Library) *ChecklistUseCase {
	return &ChecklistUseCase{repo: repo, library: library}
}

// BuildTemplates derives the audit's checklist: one item per vulnerability
// selection across all of the audit's assets, or the built-in baseline when
// no selections exist. Selections referencing ids missing from the library
// are skipped, matching the cascade's tolerance for unknown ids.
func (uc *ChecklistUseCase) BuildTemplates(ctx context.Context, auditID int64) ([]*model.ChecklistItem, error) {
	if _, err := uc.repo.Audit().Get(ctx, auditID); err != nil {
		return nil, err
	}

	assets, err := uc.repo.Asset().ListByAudit(ctx, auditID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list assets", goerr.V("audit_id", auditID))
	}

	var controls []checklist.Control
	for _, asset := range assets {
		selections, err := uc.repo.AssetVuln().ListByAsset(ctx, asset.ID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list selections", goerr.V("asset_id", asset.ID))
		}
		for _, selection := range selections {
			vuln, ok := uc.library.Get(selection.VulnID)
			if !ok {
				continue
			}
			controls = append(controls, checklist.Control{
				SelectionID:   selection.ID,
				AssetName:     asset.Name,
				Vulnerability: vuln,
			})
		}
	}

	if len(controls) == 0 {
		return checklist.BaselineItems()
	}
	return checklist.BuildItems(controls), nil
}

// Score validates and scores a checklist submission, replaces the audit's
// stored answers and findings, and writes the rollup onto the audit record.
// Every item must be answered with a valid value or the whole submission is
// rejected before anything is written.
func (uc *ChecklistUseCase) Score(ctx context.Context, auditID int64, answers map[string]string, items []*model.ChecklistItem) (*model.ChecklistResult, error) {
	if _, err := uc.repo.Audit().Get(ctx, auditID); err != nil {
		return nil, err
	}

	if len(items) == 0 {
		var err error
		if items, err = uc.BuildTemplates(ctx, auditID); err != nil {
			return nil, err
		}
	}

	typed := make(map[string]types.ChecklistAnswer, len(answers))
	for key, value := range answers {
		typed[key] = types.ChecklistAnswer(value)
	}

	result, err := model.ScoreChecklist(items, typed)
	if err != nil {
		return nil, err
	}

	for _, answer := range result.Answers {
		answer.ID = uuid.NewString()
		answer.AuditID = auditID
	}
	for _, finding := range result.Findings {
		finding.ID = uuid.NewString()
		finding.AuditID = auditID
	}

	rollup := &model.AuditRollup{
		RiskScore:       result.RiskScore,
		RiskLevel:       result.RiskLevel,
		ComplianceScore: result.ComplianceScore,
	}
	if err := uc.repo.Checklist().Replace(ctx, auditID, result.Answers, result.Findings, rollup); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrChecklistSaveFailed, err)
	}

	return result, nil
}

func (uc *ChecklistUseCase) ListAnswers(ctx context.Context, auditID int64) ([]*model.AuditAnswer, error) {
	return uc.repo.Checklist().ListAnswers(ctx, auditID)
}

func (uc *ChecklistUseCase) ListFindings(ctx context.Context, auditID int64) ([]*model.Finding, error) {
	return uc.repo.Checklist().ListFindings(ctx, auditID)
}
