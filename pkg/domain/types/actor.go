package types

// ThreatActor represents who initiates a threat scenario
type ThreatActor string

const (
	ActorInternalHuman ThreatActor = "Internal Human"
	ActorExternalHuman ThreatActor = "External Human"
	ActorSystem        ThreatActor = "System"
	ActorNatural       ThreatActor = "Natural"
)

// AllThreatActors returns all valid threat actors
func AllThreatActors() []ThreatActor {
	return []ThreatActor{
		ActorInternalHuman,
		ActorExternalHuman,
		ActorSystem,
		ActorNatural,
	}
}

// IsValid checks if the threat actor is valid
func (a ThreatActor) IsValid() bool {
	switch a {
	case ActorInternalHuman, ActorExternalHuman, ActorSystem, ActorNatural:
		return true
	default:
		return false
	}
}

// String returns the string representation of the threat actor
func (a ThreatActor) String() string {
	return string(a)
}

// CoerceThreatActor maps a user-supplied value to a valid actor. Unknown
// values fall back to External Human; actor is a low-stakes classification
// field, so bad input is corrected rather than rejected.
func CoerceThreatActor(s string) ThreatActor {
	actor := ThreatActor(s)
	if !actor.IsValid() {
		return ActorExternalHuman
	}
	return actor
}
