package model

import "time"

// Reserved description of the concern that anchors cascade-derived threat
// scenarios, so they can be wiped and rebuilt without touching manually
// authored concerns.
const AutoConcernDescription = "OWASP Auto-Generated Concerns"

// Concern represents one area of concern attached to a container.
type Concern struct {
	ID          int64
	ContainerID int64
	Description string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAutoGenerated reports whether this is the reserved cascade concern.
func (c *Concern) IsAutoGenerated() bool {
	return c.Description == AutoConcernDescription
}
