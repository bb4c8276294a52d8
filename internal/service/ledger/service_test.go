package ledger

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Mucamas-BookingService/internal/domain"
	"github.com/m04kA/Mucamas-BookingService/internal/infra/storage/memory"
	"github.com/m04kA/Mucamas-BookingService/pkg/broker"
	"github.com/m04kA/Mucamas-BookingService/pkg/logger"
	"github.com/m04kA/Mucamas-BookingService/pkg/ptr"
)

func newLedger(t *testing.T) (*Service, *memory.ReservationStore, *broker.Broker) {
	t.Helper()
	store := memory.NewReservationStore()
	bus := broker.New()
	return NewService(store, bus, logger.NewWithWriter(io.Discard, logger.LevelError)), store, bus
}

func draft(clientID string) *domain.ReservationDraft {
	return &domain.ReservationDraft{
		ClientID:    clientID,
		ServiceID:   "svc-1",
		ServiceName: "Deep cleaning",
		Price:       80,
		Date:        "2024-03-01",
		StartTime:   "10:00",
		EndTime:     "12:00",
		Address:     domain.Address{City: "Bogota", Street: "Cra 7 #45"},
	}
}

func TestService_CreateStatusDependsOnCollaborator(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newLedger(t)

	id, err := svc.Create(ctx, draft("client-1"))
	require.NoError(t, err)
	res, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingAssignment, res.Status)
	assert.Equal(t, domain.PaymentStatusPending, res.PaymentStatus)
	assert.Nil(t, res.CollaboratorID)

	d := draft("client-1")
	d.ID = "fixed-id"
	d.CollaboratorID = ptr.Ptr("c1")
	id, err = svc.Create(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", id)

	res, err = svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingPayment, res.Status)
	assert.Equal(t, "c1", ptr.Value(res.CollaboratorID))
}

func TestService_CreateRejectsInvalidDraft(t *testing.T) {
	svc, store, _ := newLedger(t)

	d := draft("client-1")
	d.EndTime = "09:00"
	_, err := svc.Create(context.Background(), d)
	assert.ErrorIs(t, err, ErrInvalidInput)

	d = draft("")
	_, err = svc.Create(context.Background(), d)
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Equal(t, 0, store.Len())
}

func TestService_BindCollaborator(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newLedger(t)

	id, err := svc.Create(ctx, draft("client-1"))
	require.NoError(t, err)

	require.NoError(t, svc.BindCollaborator(ctx, id, "c1"))

	res, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingPayment, res.Status)
	assert.Equal(t, "c1", ptr.Value(res.CollaboratorID))

	err = svc.BindCollaborator(ctx, id, "c2")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	err = svc.BindCollaborator(ctx, "missing", "c2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_TransitionFollowsTable(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newLedger(t)

	d := draft("client-1")
	d.CollaboratorID = ptr.Ptr("c1")
	id, err := svc.Create(ctx, d)
	require.NoError(t, err)

	_, err = svc.Transition(ctx, id, domain.StatusInProgress)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	for _, next := range []domain.ReservationStatus{
		domain.StatusConfirmed, domain.StatusInProgress, domain.StatusCompleted,
	} {
		res, err := svc.Transition(ctx, id, next)
		require.NoError(t, err)
		assert.Equal(t, next, res.Status)
	}

	_, err = svc.Transition(ctx, id, domain.StatusCancelled)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = svc.AdminCancel(ctx, id)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestService_AdminCancelFromConfirmed(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newLedger(t)

	d := draft("client-1")
	d.CollaboratorID = ptr.Ptr("c1")
	id, err := svc.Create(ctx, d)
	require.NoError(t, err)
	_, err = svc.Transition(ctx, id, domain.StatusConfirmed)
	require.NoError(t, err)

	_, err = svc.Transition(ctx, id, domain.StatusCancelled)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	res, err := svc.AdminCancel(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, res.Status)
}

func TestService_ConcurrentTransitionsHaveSingleWinner(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newLedger(t)

	d := draft("client-1")
	d.CollaboratorID = ptr.Ptr("c1")
	id, err := svc.Create(ctx, d)
	require.NoError(t, err)

	targets := []domain.ReservationStatus{domain.StatusConfirmed, domain.StatusCancelled}
	errs := make([]error, len(targets))

	var wg sync.WaitGroup
	for i, to := range targets {
		wg.Add(1)
		go func(i int, to domain.ReservationStatus) {
			defer wg.Done()
			_, errs[i] = svc.Transition(ctx, id, to)
		}(i, to)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	}
	assert.Equal(t, 1, successes)
}

func TestService_StreamByClient(t *testing.T) {
	ctx := context.Background()
	svc, _, bus := newLedger(t)

	_, err := svc.Create(ctx, draft("client-1"))
	require.NoError(t, err)

	sub, err := svc.StreamByClient(ctx, "client-1")
	require.NoError(t, err)

	first := receive(t, sub.C)
	assert.Len(t, first, 1)

	// изменения другого клиента не приходят
	_, err = svc.Create(ctx, draft("client-2"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, draft("client-1"))
	require.NoError(t, err)

	second := receive(t, sub.C)
	assert.Len(t, second, 2)

	sub.Cancel()
	for range sub.C {
	}
	assert.Equal(t, 0, bus.SubscriberCount("client-1"))

	sub.Cancel()
}

func TestService_StreamStopsWithContext(t *testing.T) {
	svc, _, bus := newLedger(t)
	ctx, cancel := context.WithCancel(context.Background())

	sub, err := svc.StreamByClient(ctx, "client-1")
	require.NoError(t, err)
	assert.Empty(t, receive(t, sub.C))

	cancel()

	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-sub.C:
			return !ok
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, bus.SubscriberCount("client-1"))
}

func receive(t *testing.T, ch <-chan []*domain.Reservation) []*domain.Reservation {
	t.Helper()
	select {
	case snapshot, ok := <-ch:
		require.True(t, ok, "stream closed")
		return snapshot
	case <-time.After(time.Second):
		require.FailNow(t, "no snapshot delivered")
		return nil
	}
}
