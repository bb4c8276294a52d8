package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/Mucamas-BookingService/pkg/ptr"
)

func TestCanTransition_OnlyListedEdges(t *testing.T) {
	allowed := map[[2]ReservationStatus]bool{
		{StatusPendingAssignment, StatusPendingPayment}: true,
		{StatusPendingAssignment, StatusCancelled}:      true,
		{StatusPendingPayment, StatusConfirmed}:         true,
		{StatusPendingPayment, StatusCancelled}:         true,
		{StatusConfirmed, StatusInProgress}:             true,
		{StatusInProgress, StatusCompleted}:             true,
	}

	for _, from := range AllStatuses {
		for _, to := range AllStatuses {
			want := allowed[[2]ReservationStatus{from, to}]
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCanTransition_TerminalStatesAreClosed(t *testing.T) {
	assert.False(t, CanTransition(StatusCompleted, StatusInProgress))
	assert.False(t, CanTransition(StatusCancelled, StatusPendingAssignment))
	assert.False(t, CanAdminCancel(StatusCompleted))
	assert.False(t, CanAdminCancel(StatusCancelled))
}

func TestCanAdminCancel_AnyNonTerminal(t *testing.T) {
	for _, s := range []ReservationStatus{
		StatusPendingAssignment, StatusPendingPayment, StatusConfirmed, StatusInProgress,
	} {
		assert.True(t, CanAdminCancel(s), s)
	}
	assert.False(t, CanAdminCancel("UNKNOWN"))
}

func TestReservation_CanBeCancelledByClient(t *testing.T) {
	r := &Reservation{Status: StatusPendingPayment}
	assert.True(t, r.CanBeCancelledByClient())

	r.Status = StatusConfirmed
	assert.False(t, r.CanBeCancelledByClient())
}

func TestTimeWindow_Overlaps(t *testing.T) {
	base := TimeWindow{Date: "2024-03-01", Start: "10:00", End: "12:00"}

	tests := []struct {
		name  string
		other TimeWindow
		want  bool
	}{
		{name: "identical", other: base, want: true},
		{name: "inside", other: TimeWindow{Date: "2024-03-01", Start: "10:30", End: "11:00"}, want: true},
		{name: "straddles start", other: TimeWindow{Date: "2024-03-01", Start: "09:00", End: "10:01"}, want: true},
		{name: "touches end", other: TimeWindow{Date: "2024-03-01", Start: "12:00", End: "13:00"}, want: false},
		{name: "touches start", other: TimeWindow{Date: "2024-03-01", Start: "08:00", End: "10:00"}, want: false},
		{name: "other date", other: TimeWindow{Date: "2024-03-02", Start: "10:00", End: "12:00"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestTimeWindow_Validate(t *testing.T) {
	assert.NoError(t, TimeWindow{Date: "2024-03-01", Start: "10:00", End: "12:00"}.Validate())
	assert.Error(t, TimeWindow{Date: "01/03/2024", Start: "10:00", End: "12:00"}.Validate())
	assert.Error(t, TimeWindow{Date: "2024-03-01", Start: "12:00", End: "10:00"}.Validate())
	assert.Error(t, TimeWindow{Date: "2024-03-01", Start: "9:00", End: "10:00"}.Validate())
}

func TestCollaboratorStatus_CheckInvariant(t *testing.T) {
	ok := CollaboratorStatus{CollaboratorID: "c1", IsAvailable: true}
	assert.NoError(t, ok.CheckInvariant())

	busy := CollaboratorStatus{CollaboratorID: "c1", CurrentReservationID: ptr.Ptr("r1")}
	assert.NoError(t, busy.CheckInvariant())

	broken := CollaboratorStatus{CollaboratorID: "c1", IsAvailable: true, CurrentReservationID: ptr.Ptr("r1")}
	assert.ErrorIs(t, broken.CheckInvariant(), ErrInvariantViolation)

	orphan := CollaboratorStatus{CollaboratorID: "c1"}
	assert.ErrorIs(t, orphan.CheckInvariant(), ErrInvariantViolation)
}
