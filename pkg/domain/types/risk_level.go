package types

// RiskLevel classifies a weighted risk analysis score. The scale tops out at
// 25 (likelihood 5 × weighted impact 5).
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskMedium   RiskLevel = "Medium"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
)

// AllRiskLevels returns all risk levels in ascending severity order
func AllRiskLevels() []RiskLevel {
	return []RiskLevel{RiskLow, RiskMedium, RiskHigh, RiskCritical}
}

// IsValid checks if the risk level is valid
func (l RiskLevel) IsValid() bool {
	switch l {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return true
	default:
		return false
	}
}

// String returns the string representation of the risk level
func (l RiskLevel) String() string {
	return string(l)
}

// ClassifyRiskScore maps a weighted analysis score to its level. Thresholds
// are boundary-inclusive on the upper side: 9.00 is High, 15.00 is Critical.
func ClassifyRiskScore(score float64) RiskLevel {
	switch {
	case score >= 15:
		return RiskCritical
	case score >= 9:
		return RiskHigh
	case score >= 4:
		return RiskMedium
	default:
		return RiskLow
	}
}
