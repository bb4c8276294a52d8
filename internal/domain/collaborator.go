package domain

import (
	"fmt"
	"time"
)

// CollaboratorStatus is the live availability record of a service collaborator.
// Invariant: IsAvailable == (CurrentReservationID == nil).
type CollaboratorStatus struct {
	CollaboratorID       string
	IsAvailable          bool
	CurrentReservationID *string
	// AvailableAt is the best-known estimate of when an unavailable collaborator
	// frees up; nil means unknown. For available collaborators it records the
	// moment of the last release.
	AvailableAt   *time.Time
	LastUpdatedAt time.Time
}

// CheckInvariant verifies the availability/reservation binding invariant
func (c *CollaboratorStatus) CheckInvariant() error {
	if c.IsAvailable && c.CurrentReservationID != nil {
		return fmt.Errorf("%w: collaborator %s is available but bound to reservation %s",
			ErrInvariantViolation, c.CollaboratorID, *c.CurrentReservationID)
	}
	if !c.IsAvailable && c.CurrentReservationID == nil {
		return fmt.Errorf("%w: collaborator %s is unavailable without a reservation",
			ErrInvariantViolation, c.CollaboratorID)
	}
	return nil
}

// IsBusyUntilKnown returns true when the collaborator is busy and has a known release estimate
func (c *CollaboratorStatus) IsBusyUntilKnown() bool {
	return !c.IsAvailable && c.AvailableAt != nil
}

// Availability is a future moment at which a collaborator is expected to be free
type Availability struct {
	CollaboratorID       string
	EstimatedAvailableAt time.Time
}
