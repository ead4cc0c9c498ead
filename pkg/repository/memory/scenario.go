package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/allegro/pkg/domain/model"
)

type scenarioRepository struct {
	mu        sync.RWMutex
	scenarios map[int64]*model.ThreatScenario
	nextID    int64

	risks      *riskRepository
	analyses   *analysisRepository
	responses  *responseRepository
	selections *assetVulnRepository
}

func newScenarioRepository(risks *riskRepository, analyses *analysisRepository, responses *responseRepository, selections *assetVulnRepository) *scenarioRepository {
	return &scenarioRepository{
		scenarios:  make(map[int64]*model.ThreatScenario),
		nextID:     1,
		risks:      risks,
		analyses:   analyses,
		responses:  responses,
		selections: selections,
	}
}

// lockAll takes every lock a paired scenario/risk mutation needs, always in
// the same order to avoid deadlock. The returned function releases them.
func (r *scenarioRepository) lockAll() func() {
	r.mu.Lock()
	r.risks.mu.Lock()
	r.analyses.mu.Lock()
	r.responses.mu.Lock()
	r.selections.mu.Lock()
	return func() {
		r.selections.mu.Unlock()
		r.responses.mu.Unlock()
		r.analyses.mu.Unlock()
		r.risks.mu.Unlock()
		r.mu.Unlock()
	}
}

func (r *scenarioRepository) CreateWithRisk(ctx context.Context, scenario *model.ThreatScenario, risk *model.Risk) (*model.ScenarioRisk, error) {
	unlock := r.lockAll()
	defer unlock()

	created := r.createLocked(scenario)
	pairedRisk := *risk
	pairedRisk.ScenarioID = created.ID
	createdRisk := r.risks.createLocked(&pairedRisk)

	return &model.ScenarioRisk{Scenario: created, Risk: createdRisk}, nil
}

func (r *scenarioRepository) Get(ctx context.Context, id int64) (*model.ThreatScenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	scenario, exists := r.scenarios[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "threat scenario not found", goerr.V("id", id))
	}

	copied := *scenario
	return &copied, nil
}

func (r *scenarioRepository) ListByConcern(ctx context.Context, concernID int64) ([]*model.ThreatScenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	scenarios := make([]*model.ThreatScenario, 0)
	for _, scenario := range r.scenarios {
		if scenario.ConcernID != concernID {
			continue
		}
		copied := *scenario
		scenarios = append(scenarios, &copied)
	}
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].ID < scenarios[j].ID })

	return scenarios, nil
}

func (r *scenarioRepository) ReplaceCascade(ctx context.Context, concernID, assetID int64, entries []*model.ScenarioRisk, selections []*model.AssetVulnerability) ([]*model.ScenarioRisk, []*model.AssetVulnerability, error) {
	unlock := r.lockAll()
	defer unlock()

	// Remove the old subtree first: scenarios under the concern, their risks,
	// and anything hanging off those risks. Map operations cannot fail, so
	// the whole replace commits or never starts.
	for id, scenario := range r.scenarios {
		if scenario.ConcernID != concernID {
			continue
		}
		if riskID, exists := r.risks.byScenario[id]; exists {
			r.analyses.deleteByRiskLocked(riskID)
			r.responses.deleteByRiskLocked(riskID)
			r.risks.deleteLocked(riskID)
		}
		delete(r.scenarios, id)
	}

	created := make([]*model.ScenarioRisk, 0, len(entries))
	for _, entry := range entries {
		scenario := *entry.Scenario
		scenario.ConcernID = concernID
		createdScenario := r.createLocked(&scenario)

		risk := *entry.Risk
		risk.ScenarioID = createdScenario.ID
		createdRisk := r.risks.createLocked(&risk)

		created = append(created, &model.ScenarioRisk{Scenario: createdScenario, Risk: createdRisk})
	}

	// The asset's selections swap under the same locks, so the scenario set
	// and the selection set commit together.
	stored := r.selections.replaceLocked(assetID, selections)

	return created, stored, nil
}

func (r *scenarioRepository) DeleteWithRisk(ctx context.Context, id int64) error {
	unlock := r.lockAll()
	defer unlock()

	if _, exists := r.scenarios[id]; !exists {
		return goerr.Wrap(ErrNotFound, "threat scenario not found", goerr.V("id", id))
	}

	if riskID, exists := r.risks.byScenario[id]; exists {
		r.analyses.deleteByRiskLocked(riskID)
		r.responses.deleteByRiskLocked(riskID)
		r.risks.deleteLocked(riskID)
	}
	delete(r.scenarios, id)
	return nil
}

// createLocked inserts a scenario; the caller must hold r.mu.
func (r *scenarioRepository) createLocked(scenario *model.ThreatScenario) *model.ThreatScenario {
	now := time.Now().UTC()
	created := *scenario
	created.ID = r.nextID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.scenarios[created.ID] = &created

	copied := created
	return &copied
}
