package directory

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Mucamas-BookingService/internal/domain"
	"github.com/m04kA/Mucamas-BookingService/internal/infra/storage/memory"
	"github.com/m04kA/Mucamas-BookingService/pkg/logger"
)

type failingRepo struct {
	*memory.CollaboratorStore
}

func (failingRepo) TryClaim(context.Context, string, string, *time.Time) (bool, error) {
	return false, errors.New("connection reset")
}

func newService(t *testing.T) (*Service, *memory.CollaboratorStore) {
	t.Helper()
	store := memory.NewCollaboratorStore()
	return NewService(store, logger.NewWithWriter(io.Discard, logger.LevelError)), store
}

func TestService_ClaimAndRelease(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	created, err := svc.Register(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.Register(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, created)

	ids, err := svc.ListAvailable(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, ids)

	claimed, err := svc.TryClaim(ctx, "c1", "r1", nil)
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = svc.TryClaim(ctx, "c1", "r2", nil)
	require.NoError(t, err)
	assert.False(t, claimed)

	status, err := svc.Get(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, status.IsAvailable)
	require.NotNil(t, status.CurrentReservationID)
	assert.Equal(t, "r1", *status.CurrentReservationID)

	freedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, svc.Release(ctx, "c1", freedAt))

	status, err = svc.Get(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, status.IsAvailable)
	assert.Nil(t, status.CurrentReservationID)
	require.NotNil(t, status.AvailableAt)
	assert.True(t, freedAt.Equal(*status.AvailableAt))
}

func TestService_NotFoundMapsToDomain(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	_, err := svc.Get(ctx, "ghost")
	assert.ErrorIs(t, err, ErrCollaboratorNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = svc.Release(ctx, "ghost", time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	claimed, err := svc.TryClaim(ctx, "ghost", "r1", nil)
	require.NoError(t, err)
	assert.False(t, claimed)
}

func TestService_NextAvailable(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	_, ok, err := svc.NextAvailable(ctx, now)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _ = svc.Register(ctx, "c1")
	eta := now.Add(3 * time.Hour)
	_, err = svc.TryClaim(ctx, "c1", "r1", &eta)
	require.NoError(t, err)

	got, ok, err := svc.NextAvailable(ctx, now)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "c1", got.CollaboratorID)
	assert.True(t, eta.Equal(got.EstimatedAvailableAt))
}

func TestService_StoreFailure(t *testing.T) {
	svc := NewService(failingRepo{memory.NewCollaboratorStore()}, logger.NewWithWriter(io.Discard, logger.LevelError))

	_, err := svc.TryClaim(context.Background(), "c1", "r1", nil)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestService_InvalidInput(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Register(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.TryClaim(context.Background(), "c1", "", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
