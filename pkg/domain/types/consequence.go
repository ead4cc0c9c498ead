package types

// Consequence represents the outcome of a realized threat scenario
type Consequence string

const (
	ConsequenceDisclosure   Consequence = "Disclosure"
	ConsequenceModification Consequence = "Modification"
	ConsequenceDestruction  Consequence = "Destruction"
	ConsequenceInterruption Consequence = "Interruption"
)

// AllConsequences returns all valid consequences
func AllConsequences() []Consequence {
	return []Consequence{
		ConsequenceDisclosure,
		ConsequenceModification,
		ConsequenceDestruction,
		ConsequenceInterruption,
	}
}

// IsValid checks if the consequence is valid
func (c Consequence) IsValid() bool {
	switch c {
	case ConsequenceDisclosure, ConsequenceModification, ConsequenceDestruction, ConsequenceInterruption:
		return true
	default:
		return false
	}
}

// String returns the string representation of the consequence
func (c Consequence) String() string {
	return string(c)
}

// CoerceConsequence maps a user-supplied value to a valid consequence.
// Unknown values fall back to Disclosure.
func CoerceConsequence(s string) Consequence {
	conseq := Consequence(s)
	if !conseq.IsValid() {
		return ConsequenceDisclosure
	}
	return conseq
}
