package interfaces

import (
	"context"

	"github.com/secmon-lab/allegro/pkg/domain/model"
)

// AuditRepository defines data access for audits
type AuditRepository interface {
	// Create creates a new audit with auto-generated ID
	Create(ctx context.Context, audit *model.Audit) (*model.Audit, error)

	// Get retrieves an audit by ID
	Get(ctx context.Context, id int64) (*model.Audit, error)

	// List retrieves all audits
	List(ctx context.Context) ([]*model.Audit, error)

	// Delete deletes an audit by ID
	Delete(ctx context.Context, id int64) error
}

// CriteriaRepository defines data access for risk measurement criteria.
// One criteria row per audit, upserted.
type CriteriaRepository interface {
	Put(ctx context.Context, criteria *model.RiskCriteria) (*model.RiskCriteria, error)
	GetByAudit(ctx context.Context, auditID int64) (*model.RiskCriteria, error)

	// Delete removes the audit's criteria; deleting absent criteria is a no-op.
	Delete(ctx context.Context, auditID int64) error
}
