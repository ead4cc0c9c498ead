package memory

import (
	"github.com/secmon-lab/allegro/pkg/domain/interfaces"
	"github.com/secmon-lab/allegro/pkg/domain/types"
)

// ErrNotFound is returned for any lookup of a record that does not exist
var ErrNotFound = types.ErrNotFound

// Memory is the in-memory repository, used for development and tests.
type Memory struct {
	audit     *auditRepository
	criteria  *criteriaRepository
	asset     *assetRepository
	container *containerRepository
	concern   *concernRepository
	scenario  *scenarioRepository
	risk      *riskRepository
	analysis  *analysisRepository
	response  *responseRepository
	assetVuln *assetVulnRepository
	checklist *checklistRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	auditRepo := newAuditRepository()
	riskRepo := newRiskRepository()
	analysisRepo := newAnalysisRepository()
	responseRepo := newResponseRepository()
	assetVulnRepo := newAssetVulnRepository()

	return &Memory{
		audit:     auditRepo,
		criteria:  newCriteriaRepository(),
		asset:     newAssetRepository(),
		container: newContainerRepository(),
		concern:   newConcernRepository(),
		scenario:  newScenarioRepository(riskRepo, analysisRepo, responseRepo, assetVulnRepo),
		risk:      riskRepo,
		analysis:  analysisRepo,
		response:  responseRepo,
		assetVuln: assetVulnRepo,
		checklist: newChecklistRepository(auditRepo),
	}
}

func (m *Memory) Audit() interfaces.AuditRepository {
	return m.audit
}

func (m *Memory) Criteria() interfaces.CriteriaRepository {
	return m.criteria
}

func (m *Memory) Asset() interfaces.AssetRepository {
	return m.asset
}

func (m *Memory) Container() interfaces.ContainerRepository {
	return m.container
}

func (m *Memory) Concern() interfaces.ConcernRepository {
	return m.concern
}

func (m *Memory) Scenario() interfaces.ScenarioRepository {
	return m.scenario
}

func (m *Memory) Risk() interfaces.RiskRepository {
	return m.risk
}

func (m *Memory) Analysis() interfaces.AnalysisRepository {
	return m.analysis
}

func (m *Memory) Response() interfaces.ResponseRepository {
	return m.response
}

func (m *Memory) AssetVuln() interfaces.AssetVulnRepository {
	return m.assetVuln
}

func (m *Memory) Checklist() interfaces.ChecklistRepository {
	return m.checklist
}

func (m *Memory) Close() error {
	return nil
}
