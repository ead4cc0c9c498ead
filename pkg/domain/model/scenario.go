package model

import (
	"time"

	"github.com/secmon-lab/allegro/pkg/domain/types"
)

// ThreatScenario represents one structured threat scenario under a concern:
// who (actor), how (access method), why (motive), what (consequence).
// Every scenario has exactly one risk, created with it.
type ThreatScenario struct {
	ID           int64
	ConcernID    int64
	Actor        types.ThreatActor
	AccessMethod types.AccessMethod
	Motive       string
	Consequence  types.Consequence
	Description  string

	CreatedAt time.Time
	UpdatedAt time.Time
}
