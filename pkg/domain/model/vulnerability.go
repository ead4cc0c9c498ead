package model

import "time"

// Vulnerability is one entry of the reference library the cascade draws from.
// The mapped threat/impact/control strings are free text authored with the
// library; consequence and actor are inferred from them by keyword match.
type Vulnerability struct {
	ID                int64
	Name              string
	Category          string
	DefaultLikelihood int
	MappedThreat      string
	MappedImpact      string
	RequiredControl   string
}

// AssetVulnerability records that a library vulnerability was selected for an
// asset. RiskScore is the provisional sort key seeded at selection time
// (default likelihood × asset criticality); the authoritative weighted score
// is produced later by risk analysis and the two are not required to match.
type AssetVulnerability struct {
	ID         int64
	AssetID    int64
	VulnID     int64
	Likelihood int
	RiskScore  int

	CreatedAt time.Time
}
