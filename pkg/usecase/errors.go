package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for the use case layer. Not-found conditions carry
// types.ErrNotFound from the repository adapters.
var (
	ErrCascadeFailed       = goerr.New("vulnerability cascade failed")
	ErrChecklistSaveFailed = goerr.New("checklist save failed")
)
