package interfaces

import (
	"context"

	"github.com/secmon-lab/allegro/pkg/domain/model"
	"github.com/secmon-lab/allegro/pkg/domain/types"
)

// ScenarioRepository defines data access for threat scenarios. A scenario and
// its risk are a 1:1 pair enforced at creation time, so the repository only
// exposes paired creation and deletion.
type ScenarioRepository interface {
	// CreateWithRisk atomically inserts a scenario and its paired risk.
	CreateWithRisk(ctx context.Context, scenario *model.ThreatScenario, risk *model.Risk) (*model.ScenarioRisk, error)

	Get(ctx context.Context, id int64) (*model.ThreatScenario, error)
	ListByConcern(ctx context.Context, concernID int64) ([]*model.ThreatScenario, error)

	// ReplaceCascade atomically replaces both derived sets of a vulnerability
	// cascade: every scenario under the concern (and their risks, plus any
	// analyses and responses attached to those risks) and the asset's
	// vulnerability selections. All-or-nothing across both sets: a failure
	// partway through leaves the previous scenarios and selections intact.
	ReplaceCascade(ctx context.Context, concernID, assetID int64, entries []*model.ScenarioRisk, selections []*model.AssetVulnerability) ([]*model.ScenarioRisk, []*model.AssetVulnerability, error)

	// DeleteWithRisk removes a scenario together with its risk and the
	// risk's analysis and response, if any.
	DeleteWithRisk(ctx context.Context, id int64) error
}

// RiskRepository defines data access for risks
type RiskRepository interface {
	Get(ctx context.Context, id int64) (*model.Risk, error)
	GetByScenario(ctx context.Context, scenarioID int64) (*model.Risk, error)

	// UpdateCIA updates which CIA property the risk impacts; set during
	// analysis.
	UpdateCIA(ctx context.Context, id int64, cia types.CIAProperty) error
}

// AnalysisRepository defines data access for risk analyses. One analysis per
// risk, overwritten on re-analysis.
type AnalysisRepository interface {
	Put(ctx context.Context, analysis *model.RiskAnalysis) (*model.RiskAnalysis, error)
	GetByRisk(ctx context.Context, riskID int64) (*model.RiskAnalysis, error)
}

// ResponseRepository defines data access for risk responses. One response per
// risk, last write wins.
type ResponseRepository interface {
	Put(ctx context.Context, response *model.RiskResponse) (*model.RiskResponse, error)
	GetByRisk(ctx context.Context, riskID int64) (*model.RiskResponse, error)
}
