package interfaces

// Repository defines the interface for data persistence. Upserting
// repositories (criteria, analysis, response) have last-writer-wins
// semantics; no cross-call locking is provided beyond the atomicity of the
// individual replace operations.
type Repository interface {
	Audit() AuditRepository
	Criteria() CriteriaRepository
	Asset() AssetRepository
	Container() ContainerRepository
	Concern() ConcernRepository
	Scenario() ScenarioRepository
	Risk() RiskRepository
	Analysis() AnalysisRepository
	Response() ResponseRepository
	AssetVuln() AssetVulnRepository
	Checklist() ChecklistRepository

	Close() error
}
