package types

// AuditRiskLevel classifies an audit's checklist point total. This is a
// deliberately separate type from RiskLevel: the checklist scale counts
// 0/1/2 points per item with its own thresholds, and the two scales must not
// be unified.
type AuditRiskLevel string

const (
	AuditRiskLow      AuditRiskLevel = "Low"
	AuditRiskMedium   AuditRiskLevel = "Medium"
	AuditRiskHigh     AuditRiskLevel = "High"
	AuditRiskCritical AuditRiskLevel = "Critical"
)

// IsValid checks if the audit risk level is valid
func (l AuditRiskLevel) IsValid() bool {
	switch l {
	case AuditRiskLow, AuditRiskMedium, AuditRiskHigh, AuditRiskCritical:
		return true
	default:
		return false
	}
}

// String returns the string representation of the audit risk level
func (l AuditRiskLevel) String() string {
	return string(l)
}

// ClassifyAuditRiskScore maps a checklist point total to its level.
func ClassifyAuditRiskScore(points int) AuditRiskLevel {
	switch {
	case points <= 3:
		return AuditRiskLow
	case points <= 7:
		return AuditRiskMedium
	case points <= 12:
		return AuditRiskHigh
	default:
		return AuditRiskCritical
	}
}
