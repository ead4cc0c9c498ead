package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/allegro/pkg/domain/model"
	"github.com/secmon-lab/allegro/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type auditDocument struct {
	ID              int64     `firestore:"id"`
	SystemName      string    `firestore:"system_name"`
	Description     string    `firestore:"description"`
	AuditDate       time.Time `firestore:"audit_date"`
	RiskScore       int       `firestore:"risk_score"`
	RiskLevel       string    `firestore:"risk_level"`
	ComplianceScore float64   `firestore:"compliance_score"`
	CreatedAt       time.Time `firestore:"created_at"`
	UpdatedAt       time.Time `firestore:"updated_at"`
}

func (d *auditDocument) toModel() *model.Audit {
	return &model.Audit{
		ID:              d.ID,
		SystemName:      d.SystemName,
		Description:     d.Description,
		AuditDate:       d.AuditDate,
		RiskScore:       d.RiskScore,
		RiskLevel:       types.AuditRiskLevel(d.RiskLevel),
		ComplianceScore: d.ComplianceScore,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

type auditRepository struct {
	client *firestore.Client
	prefix string
}

func newAuditRepository(client *firestore.Client) *auditRepository {
	return &auditRepository{client: client}
}

func (r *auditRepository) collection() string {
	if r.prefix != "" {
		return r.prefix + "_audits"
	}
	return "audits"
}

func (r *auditRepository) counter() *counter {
	col := "counters"
	if r.prefix != "" {
		col = r.prefix + "_counters"
	}
	return &counter{client: r.client, collection: col, doc: "audit_counter"}
}

func (r *auditRepository) Create(ctx context.Context, audit *model.Audit) (*model.Audit, error) {
	id, err := r.counter().next(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := &auditDocument{
		ID:          id,
		SystemName:  audit.SystemName,
		Description: audit.Description,
		AuditDate:   audit.AuditDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", id))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create audit")
	}

	return doc.toModel(), nil
}

func (r *auditRepository) Get(ctx context.Context, id int64) (*model.Audit, error) {
	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", id))
	snapshot, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "audit not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get audit", goerr.V("id", id))
	}

	var doc auditDocument
	if err := snapshot.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode audit")
	}
	return doc.toModel(), nil
}

func (r *auditRepository) List(ctx context.Context) ([]*model.Audit, error) {
	iter := r.client.Collection(r.collection()).OrderBy("id", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var audits []*model.Audit
	for {
		snapshot, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list audits")
		}

		var doc auditDocument
		if err := snapshot.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode audit")
		}
		audits = append(audits, doc.toModel())
	}
	return audits, nil
}

func (r *auditRepository) Delete(ctx context.Context, id int64) error {
	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", id))
	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "audit not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get audit", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete audit", goerr.V("id", id))
	}
	return nil
}
