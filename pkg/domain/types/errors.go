package types

import "github.com/m-mizutani/goerr/v2"

// ErrNotFound is the shared sentinel for lookups of records that do not
// exist. Both repository adapters wrap it, so callers can branch on it with
// errors.Is without caring which backend is in use.
var ErrNotFound = goerr.New("record not found")
