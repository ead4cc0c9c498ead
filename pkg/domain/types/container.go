package types

// ContainerType represents the kind of container an asset lives in
type ContainerType string

const (
	ContainerTechnical ContainerType = "Technical"
	ContainerPhysical  ContainerType = "Physical"
	ContainerPeople    ContainerType = "People"
)

// AllContainerTypes returns all valid container types
func AllContainerTypes() []ContainerType {
	return []ContainerType{ContainerTechnical, ContainerPhysical, ContainerPeople}
}

// IsValid checks if the container type is valid
func (t ContainerType) IsValid() bool {
	switch t {
	case ContainerTechnical, ContainerPhysical, ContainerPeople:
		return true
	default:
		return false
	}
}

// String returns the string representation of the container type
func (t ContainerType) String() string {
	return string(t)
}

// CoerceContainerType maps a user-supplied value to a valid container type.
// Unknown values fall back to Technical.
func CoerceContainerType(s string) ContainerType {
	t := ContainerType(s)
	if !t.IsValid() {
		return ContainerTechnical
	}
	return t
}

// ContainerLocation represents whether a container is inside or outside the
// organization's direct control
type ContainerLocation string

const (
	LocationInternal ContainerLocation = "Internal"
	LocationExternal ContainerLocation = "External"
)

// IsValid checks if the container location is valid
func (l ContainerLocation) IsValid() bool {
	return l == LocationInternal || l == LocationExternal
}

// String returns the string representation of the container location
func (l ContainerLocation) String() string {
	return string(l)
}

// CoerceContainerLocation maps a user-supplied value to a valid location.
// Unknown values fall back to Internal.
func CoerceContainerLocation(s string) ContainerLocation {
	l := ContainerLocation(s)
	if !l.IsValid() {
		return LocationInternal
	}
	return l
}
