package model

import (
	"math"
	"time"

	"github.com/secmon-lab/allegro/pkg/domain/types"
)

// DefaultWeight is assumed for any impact area an organization has not rated.
const DefaultWeight = 3

// RiskCriteria holds the organization's impact-area weights for one audit.
// Each weight is in [1,5]; the sum is used as the scoring denominator and is
// therefore always positive.
type RiskCriteria struct {
	AuditID      int64
	Reputation   int
	Financial    int
	Productivity int
	Safety       int
	Legal        int
	Notes        string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultRiskCriteria returns criteria with every weight at the default,
// used when an audit has none configured.
func DefaultRiskCriteria(auditID int64) *RiskCriteria {
	return &RiskCriteria{
		AuditID:      auditID,
		Reputation:   DefaultWeight,
		Financial:    DefaultWeight,
		Productivity: DefaultWeight,
		Safety:       DefaultWeight,
		Legal:        DefaultWeight,
	}
}

// Normalize clamps every weight into [1,5], mapping absent (zero) weights to
// the default first.
func (c *RiskCriteria) Normalize() {
	for _, w := range []*int{&c.Reputation, &c.Financial, &c.Productivity, &c.Safety, &c.Legal} {
		if *w == 0 {
			*w = DefaultWeight
		}
		*w = ClampRating(*w)
	}
}

// TotalWeight returns the sum of the five area weights.
func (c *RiskCriteria) TotalWeight() int {
	return c.Reputation + c.Financial + c.Productivity + c.Safety + c.Legal
}

// ImpactRatings holds the per-area impact ratings of one risk analysis,
// each in [1,5].
type ImpactRatings struct {
	Reputation   int
	Financial    int
	Productivity int
	Safety       int
	Legal        int
}

// Clamp clamps every rating into [1,5].
func (r ImpactRatings) Clamp() ImpactRatings {
	return ImpactRatings{
		Reputation:   ClampRating(r.Reputation),
		Financial:    ClampRating(r.Financial),
		Productivity: ClampRating(r.Productivity),
		Safety:       ClampRating(r.Safety),
		Legal:        ClampRating(r.Legal),
	}
}

// Score computes the organization-weighted risk score for the given
// likelihood and impact ratings:
//
//	weighted_impact = Σ(impact_i × weight_i) / Σ(weight_i)
//	score           = round(likelihood × weighted_impact, 2)
//
// Inputs are clamped to [1,5] first, so the result is always within [1,25].
// This is a pure function of the criteria and ratings; persistence is the
// caller's concern.
func (c *RiskCriteria) Score(likelihood int, impacts ImpactRatings) (float64, types.RiskLevel) {
	likelihood = ClampRating(likelihood)
	impacts = impacts.Clamp()

	weighted := float64(impacts.Reputation*c.Reputation+
		impacts.Financial*c.Financial+
		impacts.Productivity*c.Productivity+
		impacts.Safety*c.Safety+
		impacts.Legal*c.Legal) / float64(c.TotalWeight())

	score := math.Round(float64(likelihood)*weighted*100) / 100
	return score, types.ClassifyRiskScore(score)
}
