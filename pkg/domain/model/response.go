package model

import (
	"time"

	"github.com/secmon-lab/allegro/pkg/domain/types"
)

// RiskResponse records the chosen treatment for one risk. One response per
// risk; last write wins.
type RiskResponse struct {
	RiskID     int64
	Strategy   types.ResponseStrategy
	Rationale  string
	Owner      string
	TargetDate time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
