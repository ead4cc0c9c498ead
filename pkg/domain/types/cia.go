package types

// CIAProperty represents which security property of the asset a risk impacts
type CIAProperty string

const (
	CIAConfidentiality CIAProperty = "C"
	CIAIntegrity       CIAProperty = "I"
	CIAAvailability    CIAProperty = "A"
)

// AllCIAProperties returns all valid CIA properties
func AllCIAProperties() []CIAProperty {
	return []CIAProperty{CIAConfidentiality, CIAIntegrity, CIAAvailability}
}

// IsValid checks if the CIA property is valid
func (p CIAProperty) IsValid() bool {
	switch p {
	case CIAConfidentiality, CIAIntegrity, CIAAvailability:
		return true
	default:
		return false
	}
}

// String returns the string representation of the CIA property
func (p CIAProperty) String() string {
	return string(p)
}

// CoerceCIAProperty maps a user-supplied value to a valid CIA property.
// Unknown values fall back to Confidentiality.
func CoerceCIAProperty(s string) CIAProperty {
	p := CIAProperty(s)
	if !p.IsValid() {
		return CIAConfidentiality
	}
	return p
}
