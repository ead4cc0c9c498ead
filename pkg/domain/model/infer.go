package model

import (
	"strings"

	"github.com/secmon-lab/allegro/pkg/domain/types"
)

// InferConsequence guesses a scenario consequence from a vulnerability's
// mapped-impact text by case-insensitive substring match. The rules are a
// fuzzy heuristic carried over from the original library mapping; later
// matches overwrite earlier ones, and text with none of the keywords means
// Disclosure. Kept isolated here so it can be swapped for a lookup table
// without touching cascade logic.
func InferConsequence(mappedImpact string) types.Consequence {
	text := strings.ToLower(mappedImpact)

	conseq := types.ConsequenceDisclosure
	if strings.Contains(text, "tamper") {
		conseq = types.ConsequenceModification
	}
	if strings.Contains(text, "loss") || strings.Contains(text, "destroy") {
		conseq = types.ConsequenceDestruction
	}
	if strings.Contains(text, "avail") {
		conseq = types.ConsequenceInterruption
	}
	return conseq
}

// InferActor guesses the threat actor from a vulnerability's mapped-threat
// text: anything mentioning "internal" is an insider, everything else an
// external human.
func InferActor(mappedThreat string) types.ThreatActor {
	if strings.Contains(strings.ToLower(mappedThreat), "internal") {
		return types.ActorInternalHuman
	}
	return types.ActorExternalHuman
}
