package model

import (
	"time"

	"github.com/secmon-lab/allegro/pkg/domain/types"
)

// Audit represents one assessment of a target system. The rollup fields
// (RiskScore, RiskLevel, ComplianceScore) are written by the checklist engine
// on submission and are zero until the first checklist is scored.
type Audit struct {
	ID          int64
	SystemName  string
	Description string
	AuditDate   time.Time

	RiskScore       int
	RiskLevel       types.AuditRiskLevel
	ComplianceScore float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AuditRollup carries the checklist outcome onto the audit record. It is
// stored together with the submission itself, never separately.
type AuditRollup struct {
	RiskScore       int
	RiskLevel       types.AuditRiskLevel
	ComplianceScore float64
}
