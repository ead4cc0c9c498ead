package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/allegro/pkg/domain/interfaces"
	"github.com/secmon-lab/allegro/pkg/domain/model"
)

type AuditUseCase struct {
	repo interfaces.Repository
}

func NewAuditUseCase(repo interfaces.Repository) *AuditUseCase {
	return &AuditUseCase{repo: repo}
}

func (uc *AuditUseCase) Create(ctx context.Context, systemName, description string, auditDate time.Time) (*model.Audit, error) {
	if systemName == "" {
		return nil, goerr.New("system name is required")
	}
	if auditDate.IsZero() {
		auditDate = time.Now().UTC()
	}

	audit := &model.Audit{
		SystemName:  systemName,
		Description: description,
		AuditDate:   auditDate,
	}

	created, err := uc.repo.Audit().Create(ctx, audit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create audit")
	}
	return created, nil
}

func (uc *AuditUseCase) Get(ctx context.Context, id int64) (*model.Audit, error) {
	return uc.repo.Audit().Get(ctx, id)
}

func (uc *AuditUseCase) List(ctx context.Context) ([]*model.Audit, error) {
	return uc.repo.Audit().List(ctx)
}

// Delete removes an audit with its whole subtree: assets, containers,
// concerns, scenarios, risks, analyses, responses, vulnerability selections,
// criteria, checklist answers and findings.
func (uc *AuditUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.repo.Audit().Get(ctx, id); err != nil {
		return err
	}

	assets, err := uc.repo.Asset().ListByAudit(ctx, id)
	if err != nil {
		return goerr.Wrap(err, "failed to list assets", goerr.V("audit_id", id))
	}
	for _, asset := range assets {
		if err := deleteAssetTree(ctx, uc.repo, asset.ID); err != nil {
			return err
		}
	}

	if err := uc.repo.Checklist().Replace(ctx, id, nil, nil, nil); err != nil {
		return goerr.Wrap(err, "failed to clear checklist", goerr.V("audit_id", id))
	}
	if err := uc.repo.Criteria().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete criteria", goerr.V("audit_id", id))
	}

	if err := uc.repo.Audit().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete audit", goerr.V("audit_id", id))
	}
	return nil
}
