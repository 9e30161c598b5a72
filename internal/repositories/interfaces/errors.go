package interfaces

import "errors"

// Sentinel errors shared by all repository implementations. Services match on
// these with errors.Is and translate them into caller-facing outcomes.
var (
	// ErrNotFound means no document matched the lookup filter.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate means an insert violated a uniqueness constraint.
	ErrDuplicate = errors.New("record already exists")

	// ErrQuotaExceeded means a conditional increment found the usage counter
	// already at its limit. The counter is unchanged.
	ErrQuotaExceeded = errors.New("usage limit reached")

	// ErrStatusConflict means a compare-and-swap status transition found the
	// document no longer in the expected state.
	ErrStatusConflict = errors.New("status transition conflict")
)
