package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/allegro/pkg/domain/model"
)

type checklistRepository struct {
	mu       sync.RWMutex
	answers  map[int64][]*model.AuditAnswer
	findings map[int64][]*model.Finding

	audits *auditRepository
}

func newChecklistRepository(audits *auditRepository) *checklistRepository {
	return &checklistRepository{
		answers:  make(map[int64][]*model.AuditAnswer),
		findings: make(map[int64][]*model.Finding),
		audits:   audits,
	}
}

func (r *checklistRepository) Replace(ctx context.Context, auditID int64, answers []*model.AuditAnswer, findings []*model.Finding, rollup *model.AuditRollup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.audits.mu.Lock()
	defer r.audits.mu.Unlock()

	now := time.Now().UTC()

	audit, auditExists := r.audits.audits[auditID]
	if rollup != nil && !auditExists {
		return goerr.Wrap(ErrNotFound, "audit not found", goerr.V("id", auditID))
	}

	storedAnswers := make([]*model.AuditAnswer, 0, len(answers))
	for _, answer := range answers {
		created := *answer
		created.AuditID = auditID
		created.CreatedAt = now
		storedAnswers = append(storedAnswers, &created)
	}

	storedFindings := make([]*model.Finding, 0, len(findings))
	for _, finding := range findings {
		created := *finding
		created.AuditID = auditID
		created.CreatedAt = now
		storedFindings = append(storedFindings, &created)
	}

	// Both sets and the rollup swap together under the same locks, so a
	// reader never sees old findings next to new answers, or a new
	// submission next to a stale audit score.
	r.answers[auditID] = storedAnswers
	r.findings[auditID] = storedFindings
	if rollup != nil {
		audit.RiskScore = rollup.RiskScore
		audit.RiskLevel = rollup.RiskLevel
		audit.ComplianceScore = rollup.ComplianceScore
		audit.UpdatedAt = now
	}
	return nil
}

func (r *checklistRepository) ListAnswers(ctx context.Context, auditID int64) ([]*model.AuditAnswer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	answers := r.answers[auditID]
	copied := make([]*model.AuditAnswer, len(answers))
	for i, answer := range answers {
		c := *answer
		copied[i] = &c
	}
	return copied, nil
}

func (r *checklistRepository) ListFindings(ctx context.Context, auditID int64) ([]*model.Finding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	findings := r.findings[auditID]
	copied := make([]*model.Finding, len(findings))
	for i, finding := range findings {
		c := *finding
		copied[i] = &c
	}
	return copied, nil
}
