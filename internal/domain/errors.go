package domain

import "errors"

// Error taxonomy shared by every layer. Lower layers wrap these sentinels so
// callers can branch with errors.Is.
var (
	// ErrNotFound referenced collaborator, reservation, account or service does not exist
	ErrNotFound = errors.New("not found")

	// ErrClaimConflict a claim lost the race for a collaborator
	ErrClaimConflict = errors.New("collaborator claim conflict")

	// ErrInvalidTransition a status change violates the reservation state machine
	ErrInvalidTransition = errors.New("invalid reservation status transition")

	// ErrStoreUnavailable the underlying database or remote service failed
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrInvariantViolation collaborator status is internally inconsistent
	ErrInvariantViolation = errors.New("collaborator status invariant violated")
)
