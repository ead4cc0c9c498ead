package types

// CriticalityLevel buckets an asset's summed CIA ratings (range 3-15)
type CriticalityLevel string

const (
	CriticalityLow      CriticalityLevel = "Low"
	CriticalityMedium   CriticalityLevel = "Medium"
	CriticalityHigh     CriticalityLevel = "High"
	CriticalityCritical CriticalityLevel = "Critical"
)

// String returns the string representation of the criticality level
func (l CriticalityLevel) String() string {
	return string(l)
}

// ClassifyCriticality maps a summed CIA score to its bucket.
func ClassifyCriticality(score int) CriticalityLevel {
	switch {
	case score >= 13:
		return CriticalityCritical
	case score >= 10:
		return CriticalityHigh
	case score >= 6:
		return CriticalityMedium
	default:
		return CriticalityLow
	}
}
