package model

import (
	"time"

	"github.com/secmon-lab/allegro/pkg/domain/types"
)

// Reserved name of the container the vulnerability cascade creates under each
// asset. It is looked up by name, so creation is idempotent per asset.
const AutoContainerName = "OWASP Auto-Generated"

// AutoContainerDescription documents the reserved container's purpose.
const AutoContainerDescription = "Auto-generated for OWASP vulnerabilities"

// Container represents a place where an information asset is stored,
// transported or processed.
type Container struct {
	ID          int64
	AssetID     int64
	Name        string
	Type        types.ContainerType
	Location    types.ContainerLocation
	Description string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAutoGenerated reports whether this is the reserved cascade container.
func (c *Container) IsAutoGenerated() bool {
	return c.Name == AutoContainerName
}
