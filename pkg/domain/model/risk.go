package model

import (
	"time"

	"github.com/secmon-lab/allegro/pkg/domain/types"
)

// Risk is the 1:1 companion of a threat scenario. Analysis and response are
// attached in later workflow steps, so a risk may exist without either.
type Risk struct {
	ID                int64
	ScenarioID        int64
	CIAImpacted       types.CIAProperty
	ConsequenceDetail string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ScenarioRisk pairs a scenario with its risk for operations that create or
// replace both together.
type ScenarioRisk struct {
	Scenario *ThreatScenario
	Risk     *Risk
}
