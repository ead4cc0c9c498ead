package usecase

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/allegro/pkg/domain/interfaces"
	"github.com/secmon-lab/allegro/pkg/service/checklist"
)

type UseCases struct {
	repo    interfaces.Repository
	library *checklist.Library

	Audit     *AuditUseCase
	Criteria  *CriteriaUseCase
	Asset     *AssetUseCase
	Container *ContainerUseCase
	Concern   *ConcernUseCase
	Cascade   *CascadeUseCase
	Analysis  *AnalysisUseCase
	Response  *ResponseUseCase
	Checklist *ChecklistUseCase
}

type Option func(*UseCases)

// WithLibrary overrides the built-in vulnerability library.
func WithLibrary(lib *checklist.Library) Option {
	return func(uc *UseCases) {
		uc.library = lib
	}
}

func New(repo interfaces.Repository, opts ...Option) (*UseCases, error) {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.library == nil {
		lib, err := checklist.NewLibrary()
		if err != nil {
			return nil, goerr.Wrap(err, "failed to load built-in vulnerability library")
		}
		uc.library = lib
	}

	uc.Audit = NewAuditUseCase(repo)
	uc.Criteria = NewCriteriaUseCase(repo)
	uc.Asset = NewAssetUseCase(repo)
	uc.Container = NewContainerUseCase(repo)
	uc.Concern = NewConcernUseCase(repo)
	uc.Cascade = NewCascadeUseCase(repo, uc.library)
	uc.Analysis = NewAnalysisUseCase(repo)
	uc.Response = NewResponseUseCase(repo)
	uc.Checklist = NewChecklistUseCase(repo, uc.library)

	return uc, nil
}

// Library exposes the vulnerability library the use cases were built with.
func (uc *UseCases) Library() *checklist.Library {
	return uc.library
}
