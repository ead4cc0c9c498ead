package model

import (
	"time"

	"github.com/secmon-lab/allegro/pkg/domain/types"
)

// RiskAnalysis holds the scored analysis of one risk. It is overwritten on
// every re-analysis; no score history is kept.
type RiskAnalysis struct {
	RiskID     int64
	Likelihood int
	Impacts    ImpactRatings
	RiskScore  float64
	RiskLevel  types.RiskLevel

	CreatedAt time.Time
	UpdatedAt time.Time
}
