package domain

import (
	"time"

	"github.com/m04kA/Mucamas-BookingService/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPendingAssignment ReservationStatus = "PENDING_ASSIGNMENT"
	StatusPendingPayment    ReservationStatus = "PENDING_PAYMENT"
	StatusConfirmed         ReservationStatus = "CONFIRMED"
	StatusInProgress        ReservationStatus = "IN_PROGRESS"
	StatusCompleted         ReservationStatus = "COMPLETED"
	StatusCancelled         ReservationStatus = "CANCELLED"
)

// PaymentStatus is owned by the payment collaborator; the core only stores it
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// transitions lists every allowed non-administrative edge
var transitions = map[ReservationStatus][]ReservationStatus{
	StatusPendingAssignment: {StatusPendingPayment, StatusCancelled},
	StatusPendingPayment:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:         {StatusInProgress},
	StatusInProgress:        {StatusCompleted},
}

// AllStatuses every known reservation status
var AllStatuses = []ReservationStatus{
	StatusPendingAssignment,
	StatusPendingPayment,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

// ActiveStatuses statuses that occupy a collaborator's time window
var ActiveStatuses = []ReservationStatus{
	StatusPendingPayment,
	StatusConfirmed,
	StatusInProgress,
}

// IsValid returns true for a known status
func (s ReservationStatus) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal returns true for COMPLETED and CANCELLED
func (s ReservationStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsActive returns true if the status occupies the collaborator's window
func (s ReservationStatus) IsActive() bool {
	for _, active := range ActiveStatuses {
		if s == active {
			return true
		}
	}
	return false
}

// CanTransition reports whether from -> to is a listed non-administrative edge
func CanTransition(from, to ReservationStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanAdminCancel reports whether an administrator may cancel from this status
func CanAdminCancel(from ReservationStatus) bool {
	return from.IsValid() && !from.IsTerminal()
}

// Address is an embedded value object; no reference to an address book
type Address struct {
	City         string
	Neighborhood string
	Street       string
	Notes        string
}

// Reservation represents a client's booking of a home service
type Reservation struct {
	ID        string
	ClientID  string
	ServiceID string

	// Snapshot of the catalog at booking time
	ServiceName string
	Price       float64

	Date      string // YYYY-MM-DD
	StartTime types.TimeString
	EndTime   types.TimeString
	Address   Address

	CollaboratorID *string
	Status         ReservationStatus

	PaymentStatus PaymentStatus
	PaymentMethod string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Window returns the requested service window
func (r *Reservation) Window() TimeWindow {
	return TimeWindow{Date: r.Date, Start: r.StartTime, End: r.EndTime}
}

// IsAssigned returns true when a collaborator is bound
func (r *Reservation) IsAssigned() bool {
	return r.CollaboratorID != nil
}

// CanBeCancelledByClient returns true if the client may cancel on their own
func (r *Reservation) CanBeCancelledByClient() bool {
	return CanTransition(r.Status, StatusCancelled)
}

// ReservationDraft is the input for creating a reservation
type ReservationDraft struct {
	// ID is optional; when empty the ledger allocates one
	ID             string
	ClientID       string
	ServiceID      string
	ServiceName    string
	Price          float64
	Date           string
	StartTime      types.TimeString
	EndTime        types.TimeString
	Address        Address
	CollaboratorID *string
	PaymentMethod  string
}

// Window returns the requested service window
func (d *ReservationDraft) Window() TimeWindow {
	return TimeWindow{Date: d.Date, Start: d.StartTime, End: d.EndTime}
}
