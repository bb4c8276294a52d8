package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Mucamas-BookingService/internal/domain"
	"github.com/m04kA/Mucamas-BookingService/pkg/dbmetrics"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(dbmetrics.Wrap(db)), mock
}

func reservationRow(id, status string, collaboratorID interface{}) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(columns).AddRow(
		id, "client-1", "svc-1", "Deep cleaning", 120.5,
		"2024-03-01", "10:00:00", "12:00:00",
		"Bogota", "Chapinero", "Cra 7 #45", nil,
		collaboratorID, status, "PENDING", "CARD",
		now, now,
	)
}

func TestRepository_Create(t *testing.T) {
	ctx := context.Background()
	res := &domain.Reservation{
		ID:            "r1",
		ClientID:      "client-1",
		ServiceID:     "svc-1",
		ServiceName:   "Deep cleaning",
		Price:         120.5,
		Date:          "2024-03-01",
		StartTime:     "10:00",
		EndTime:       "12:00",
		Status:        domain.StatusPendingAssignment,
		PaymentStatus: domain.PaymentStatusPending,
	}

	t.Run("ok", func(t *testing.T) {
		repo, mock := newRepo(t)
		now := time.Now()
		mock.ExpectQuery(`INSERT INTO reservations`).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		created, err := repo.Create(ctx, res)
		require.NoError(t, err)
		assert.Equal(t, "r1", created.ID)
		assert.False(t, created.CreatedAt.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate id", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery(`INSERT INTO reservations`).
			WillReturnError(&pq.Error{Code: "23505"})

		_, err := repo.Create(ctx, res)
		assert.ErrorIs(t, err, ErrDuplicateID)
	})
}

func TestRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery(`SELECT .* FROM reservations WHERE id = \$1`).
			WithArgs("r1").
			WillReturnRows(reservationRow("r1", "PENDING_PAYMENT", "c1"))

		got, err := repo.GetByID(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPendingPayment, got.Status)
		require.NotNil(t, got.CollaboratorID)
		assert.Equal(t, "c1", *got.CollaboratorID)
		assert.Equal(t, "10:00", got.StartTime.String())
		assert.Equal(t, "", got.Address.Notes)
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery(`FROM reservations`).WillReturnRows(sqlmock.NewRows(columns))

		_, err := repo.GetByID(ctx, "nope")
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}

func TestRepository_GetAssignedByDate(t *testing.T) {
	ctx := context.Background()
	repo, mock := newRepo(t)

	mock.ExpectQuery(`collaborator_id IS NOT NULL AND status IN \(\$2,\$3,\$4\)`).
		WithArgs("2024-03-01", "PENDING_PAYMENT", "CONFIRMED", "IN_PROGRESS").
		WillReturnRows(reservationRow("r1", "CONFIRMED", "c1"))

	got, err := repo.GetAssignedByDate(ctx, "2024-03-01", domain.ActiveStatuses)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "r1", got[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("applied", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec(`UPDATE reservations SET status = \$1`).
			WithArgs("CONFIRMED", "r1", "PENDING_PAYMENT").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(ctx, "r1", domain.StatusPendingPayment, domain.StatusConfirmed)
		assert.NoError(t, err)
	})

	t.Run("status moved on", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec(`UPDATE reservations`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`FROM reservations`).WillReturnRows(reservationRow("r1", "CANCELLED", nil))

		err := repo.UpdateStatus(ctx, "r1", domain.StatusPendingPayment, domain.StatusConfirmed)
		assert.ErrorIs(t, err, ErrStatusMismatch)
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec(`UPDATE reservations`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`FROM reservations`).WillReturnRows(sqlmock.NewRows(columns))

		err := repo.UpdateStatus(ctx, "r1", domain.StatusPendingPayment, domain.StatusConfirmed)
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}

func TestRepository_BindCollaborator(t *testing.T) {
	ctx := context.Background()
	repo, mock := newRepo(t)

	mock.ExpectExec(`UPDATE reservations SET collaborator_id = \$1, status = \$2`).
		WithArgs("c1", "PENDING_PAYMENT", "r1", "PENDING_ASSIGNMENT").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.BindCollaborator(ctx, "r1", "c1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
