package model

import (
	"time"

	"github.com/secmon-lab/allegro/pkg/domain/types"
)

// Asset represents one profiled information asset within an audit.
type Asset struct {
	ID          int64
	AuditID     int64
	Name        string
	Description string
	OwnerName   string
	Rationale   string

	Confidentiality int
	Integrity       int
	Availability    int
	PrimaryReq      types.CIAProperty

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Normalize clamps the CIA ratings into [1,5] and corrects an invalid
// primary requirement to Confidentiality.
func (a *Asset) Normalize() {
	a.Confidentiality = ClampRating(a.Confidentiality)
	a.Integrity = ClampRating(a.Integrity)
	a.Availability = ClampRating(a.Availability)
	if !a.PrimaryReq.IsValid() {
		a.PrimaryReq = types.CIAConfidentiality
	}
}

// CriticalityScore is the sum of the three CIA ratings (range 3-15).
func (a *Asset) CriticalityScore() int {
	return a.Confidentiality + a.Integrity + a.Availability
}

// CriticalityLevel buckets the criticality score.
func (a *Asset) CriticalityLevel() types.CriticalityLevel {
	return types.ClassifyCriticality(a.CriticalityScore())
}
