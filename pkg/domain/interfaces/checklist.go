package interfaces

import (
	"context"

	"github.com/secmon-lab/allegro/pkg/domain/model"
)

// AssetVulnRepository defines data access for an asset's vulnerability
// selections.
type AssetVulnRepository interface {
	// ReplaceForAsset atomically replaces the asset's selections.
	ReplaceForAsset(ctx context.Context, assetID int64, selections []*model.AssetVulnerability) ([]*model.AssetVulnerability, error)

	ListByAsset(ctx context.Context, assetID int64) ([]*model.AssetVulnerability, error)
}

// ChecklistRepository defines data access for audit answers and findings.
// Both are written only through Replace, which discards the audit's previous
// answer and finding sets in the same atomic operation. A non-nil rollup is
// written onto the audit record in that same operation, so a stored
// submission is never visible next to a stale audit score.
type ChecklistRepository interface {
	Replace(ctx context.Context, auditID int64, answers []*model.AuditAnswer, findings []*model.Finding, rollup *model.AuditRollup) error
	ListAnswers(ctx context.Context, auditID int64) ([]*model.AuditAnswer, error)
	ListFindings(ctx context.Context, auditID int64) ([]*model.Finding, error)
}
