package types

// AccessMethod represents how a threat actor reaches the asset
type AccessMethod string

const (
	AccessNetwork     AccessMethod = "Network"
	AccessPhysical    AccessMethod = "Physical"
	AccessRemote      AccessMethod = "Remote"
	AccessSupplyChain AccessMethod = "Supply Chain"
	AccessOther       AccessMethod = "Other"
)

// AllAccessMethods returns all valid access methods
func AllAccessMethods() []AccessMethod {
	return []AccessMethod{
		AccessNetwork,
		AccessPhysical,
		AccessRemote,
		AccessSupplyChain,
		AccessOther,
	}
}

// IsValid checks if the access method is valid
func (m AccessMethod) IsValid() bool {
	switch m {
	case AccessNetwork, AccessPhysical, AccessRemote, AccessSupplyChain, AccessOther:
		return true
	default:
		return false
	}
}

// String returns the string representation of the access method
func (m AccessMethod) String() string {
	return string(m)
}

// CoerceAccessMethod maps a user-supplied value to a valid access method.
// Unknown values fall back to Network.
func CoerceAccessMethod(s string) AccessMethod {
	method := AccessMethod(s)
	if !method.IsValid() {
		return AccessNetwork
	}
	return method
}
