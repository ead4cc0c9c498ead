package model

// Rating bounds for likelihood, impact and weight values. These come from
// slider-style inputs, so out-of-range values are clamped to the nearest
// bound rather than rejected.
const (
	RatingMin = 1
	RatingMax = 5
)

// ClampRating clamps a rating into [RatingMin, RatingMax].
func ClampRating(v int) int {
	if v < RatingMin {
		return RatingMin
	}
	if v > RatingMax {
		return RatingMax
	}
	return v
}
