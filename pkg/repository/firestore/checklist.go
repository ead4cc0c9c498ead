package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/allegro/pkg/domain/model"
	"github.com/secmon-lab/allegro/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type answerDocument struct {
	ID        string    `firestore:"id"`
	AuditID   int64     `firestore:"audit_id"`
	Question  string    `firestore:"question"`
	Answer    string    `firestore:"answer"`
	CreatedAt time.Time `firestore:"created_at"`
}

func (d *answerDocument) toModel() *model.AuditAnswer {
	return &model.AuditAnswer{
		ID:        d.ID,
		AuditID:   d.AuditID,
		Question:  d.Question,
		Answer:    types.ChecklistAnswer(d.Answer),
		CreatedAt: d.CreatedAt,
	}
}

type findingDocument struct {
	ID             string    `firestore:"id"`
	AuditID        int64     `firestore:"audit_id"`
	Text           string    `firestore:"text"`
	RiskLevel      string    `firestore:"risk_level"`
	Recommendation string    `firestore:"recommendation"`
	CreatedAt      time.Time `firestore:"created_at"`
}

func (d *findingDocument) toModel() *model.Finding {
	return &model.Finding{
		ID:             d.ID,
		AuditID:        d.AuditID,
		Text:           d.Text,
		RiskLevel:      types.RiskLevel(d.RiskLevel),
		Recommendation: d.Recommendation,
		CreatedAt:      d.CreatedAt,
	}
}

type checklistRepository struct {
	client *firestore.Client
	prefix string
	audits *auditRepository
}

func newChecklistRepository(client *firestore.Client, audits *auditRepository) *checklistRepository {
	return &checklistRepository{client: client, audits: audits}
}

func (r *checklistRepository) answersCollection() string {
	if r.prefix != "" {
		return r.prefix + "_audit_answers"
	}
	return "audit_answers"
}

func (r *checklistRepository) findingsCollection() string {
	if r.prefix != "" {
		return r.prefix + "_audit_findings"
	}
	return "audit_findings"
}

// Replace swaps the audit's answer and finding sets in one transaction, so a
// reader never sees old findings next to new answers. A non-nil rollup
// updates the audit record inside the same transaction.
func (r *checklistRepository) Replace(ctx context.Context, auditID int64, answers []*model.AuditAnswer, findings []*model.Finding, rollup *model.AuditRollup) error {
	now := time.Now().UTC()

	answerDocs := make([]*answerDocument, 0, len(answers))
	for _, answer := range answers {
		id := answer.ID
		if id == "" {
			id = uuid.NewString()
		}
		answerDocs = append(answerDocs, &answerDocument{
			ID:        id,
			AuditID:   auditID,
			Question:  answer.Question,
			Answer:    answer.Answer.String(),
			CreatedAt: now,
		})
	}

	findingDocs := make([]*findingDocument, 0, len(findings))
	for _, finding := range findings {
		id := finding.ID
		if id == "" {
			id = uuid.NewString()
		}
		findingDocs = append(findingDocs, &findingDocument{
			ID:             id,
			AuditID:        auditID,
			Text:           finding.Text,
			RiskLevel:      finding.RiskLevel.String(),
			Recommendation: finding.Recommendation,
			CreatedAt:      now,
		})
	}

	auditRef := r.client.Collection(r.audits.collection()).Doc(fmt.Sprintf("%d", auditID))

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		// All reads must come before any write.
		if rollup != nil {
			if _, err := tx.Get(auditRef); err != nil {
				if status.Code(err) == codes.NotFound {
					return goerr.Wrap(ErrNotFound, "audit not found", goerr.V("id", auditID))
				}
				return goerr.Wrap(err, "failed to get audit", goerr.V("id", auditID))
			}
		}
		oldAnswers, err := tx.Documents(r.client.Collection(r.answersCollection()).
			Where("audit_id", "==", auditID)).GetAll()
		if err != nil {
			return goerr.Wrap(err, "failed to query answers")
		}
		oldFindings, err := tx.Documents(r.client.Collection(r.findingsCollection()).
			Where("audit_id", "==", auditID)).GetAll()
		if err != nil {
			return goerr.Wrap(err, "failed to query findings")
		}

		for _, snapshot := range oldAnswers {
			if err := tx.Delete(snapshot.Ref); err != nil {
				return err
			}
		}
		for _, snapshot := range oldFindings {
			if err := tx.Delete(snapshot.Ref); err != nil {
				return err
			}
		}

		for _, doc := range answerDocs {
			if err := tx.Set(r.client.Collection(r.answersCollection()).Doc(doc.ID), doc); err != nil {
				return err
			}
		}
		for _, doc := range findingDocs {
			if err := tx.Set(r.client.Collection(r.findingsCollection()).Doc(doc.ID), doc); err != nil {
				return err
			}
		}
		if rollup != nil {
			return tx.Update(auditRef, []firestore.Update{
				{Path: "risk_score", Value: rollup.RiskScore},
				{Path: "risk_level", Value: rollup.RiskLevel.String()},
				{Path: "compliance_score", Value: rollup.ComplianceScore},
				{Path: "updated_at", Value: now},
			})
		}
		return nil
	})
	if err != nil {
		return goerr.Wrap(err, "failed to replace checklist", goerr.V("audit_id", auditID))
	}
	return nil
}

func (r *checklistRepository) ListAnswers(ctx context.Context, auditID int64) ([]*model.AuditAnswer, error) {
	iter := r.client.Collection(r.answersCollection()).
		Where("audit_id", "==", auditID).
		OrderBy("created_at", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var answers []*model.AuditAnswer
	for {
		snapshot, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list answers", goerr.V("audit_id", auditID))
		}

		var doc answerDocument
		if err := snapshot.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode answer")
		}
		answers = append(answers, doc.toModel())
	}
	return answers, nil
}

func (r *checklistRepository) ListFindings(ctx context.Context, auditID int64) ([]*model.Finding, error) {
	iter := r.client.Collection(r.findingsCollection()).
		Where("audit_id", "==", auditID).
		OrderBy("created_at", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var findings []*model.Finding
	for {
		snapshot, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list findings", goerr.V("audit_id", auditID))
		}

		var doc findingDocument
		if err := snapshot.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode finding")
		}
		findings = append(findings, doc.toModel())
	}
	return findings, nil
}
