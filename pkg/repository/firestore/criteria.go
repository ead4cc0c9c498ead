package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/allegro/pkg/domain/model"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type criteriaDocument struct {
	AuditID      int64     `firestore:"audit_id"`
	Reputation   int       `firestore:"reputation_weight"`
	Financial    int       `firestore:"financial_weight"`
	Productivity int       `firestore:"productivity_weight"`
	Safety       int       `firestore:"safety_weight"`
	Legal        int       `firestore:"legal_weight"`
	Notes        string    `firestore:"notes"`
	CreatedAt    time.Time `firestore:"created_at"`
	UpdatedAt    time.Time `firestore:"updated_at"`
}

func (d *criteriaDocument) toModel() *model.RiskCriteria {
	return &model.RiskCriteria{
		AuditID:      d.AuditID,
		Reputation:   d.Reputation,
		Financial:    d.Financial,
		Productivity: d.Productivity,
		Safety:       d.Safety,
		Legal:        d.Legal,
		Notes:        d.Notes,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type criteriaRepository struct {
	client *firestore.Client
	prefix string
}

func newCriteriaRepository(client *firestore.Client) *criteriaRepository {
	return &criteriaRepository{client: client}
}

func (r *criteriaRepository) collection() string {
	if r.prefix != "" {
		return r.prefix + "_risk_criteria"
	}
	return "risk_criteria"
}

// Put upserts the criteria of an audit. The audit ID doubles as document ID,
// which gives the one-row-per-audit invariant for free.
func (r *criteriaRepository) Put(ctx context.Context, criteria *model.RiskCriteria) (*model.RiskCriteria, error) {
	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", criteria.AuditID))

	now := time.Now().UTC()
	createdAt := now
	if snapshot, err := docRef.Get(ctx); err == nil {
		var existing criteriaDocument
		if err := snapshot.DataTo(&existing); err == nil {
			createdAt = existing.CreatedAt
		}
	} else if status.Code(err) != codes.NotFound {
		return nil, goerr.Wrap(err, "failed to get risk criteria", goerr.V("audit_id", criteria.AuditID))
	}

	doc := &criteriaDocument{
		AuditID:      criteria.AuditID,
		Reputation:   criteria.Reputation,
		Financial:    criteria.Financial,
		Productivity: criteria.Productivity,
		Safety:       criteria.Safety,
		Legal:        criteria.Legal,
		Notes:        criteria.Notes,
		CreatedAt:    createdAt,
		UpdatedAt:    now,
	}

	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to put risk criteria", goerr.V("audit_id", criteria.AuditID))
	}
	return doc.toModel(), nil
}

func (r *criteriaRepository) GetByAudit(ctx context.Context, auditID int64) (*model.RiskCriteria, error) {
	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", auditID))
	snapshot, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "risk criteria not found", goerr.V("audit_id", auditID))
		}
		return nil, goerr.Wrap(err, "failed to get risk criteria", goerr.V("audit_id", auditID))
	}

	var doc criteriaDocument
	if err := snapshot.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode risk criteria")
	}
	return doc.toModel(), nil
}

// Delete is idempotent; audit deletion calls it without checking presence.
func (r *criteriaRepository) Delete(ctx context.Context, auditID int64) error {
	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", auditID))
	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete risk criteria", goerr.V("audit_id", auditID))
	}
	return nil
}
