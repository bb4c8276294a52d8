package collaborator

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/Mucamas-BookingService/internal/domain"
	"github.com/m04kA/Mucamas-BookingService/pkg/dbmetrics"
	"github.com/m04kA/Mucamas-BookingService/pkg/psqlbuilder"
)

const tableName = "collaborators"

// Repository репозиторий состояния доступности исполнителей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория исполнителей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert регистрирует исполнителя как доступного, если записи еще нет.
// Возвращает true, если запись была создана.
func (r *Repository) Upsert(ctx context.Context, collaboratorID string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("collaborator_id", "is_available", "last_updated_at").
		Values(collaboratorID, true, squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (collaborator_id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: Upsert - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected == 1, nil
}

// GetByID получает состояние исполнителя
func (r *Repository) GetByID(ctx context.Context, collaboratorID string) (*domain.CollaboratorStatus, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"collaborator_id",
		"is_available",
		"current_reservation_id",
		"available_at",
		"last_updated_at",
	).
		From(tableName).
		Where(squirrel.Eq{"collaborator_id": collaboratorID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		status        domain.CollaboratorStatus
		reservationID sql.NullString
		availableAt   sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&status.CollaboratorID,
		&status.IsAvailable,
		&reservationID,
		&availableAt,
		&status.LastUpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCollaboratorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan collaborator: %v", ErrScanRow, err)
	}

	if reservationID.Valid {
		status.CurrentReservationID = &reservationID.String
	}
	if availableAt.Valid {
		status.AvailableAt = &availableAt.Time
	}

	return &status, nil
}

// ListAvailableIDs возвращает ID всех доступных сейчас исполнителей
func (r *Repository) ListAvailableIDs(ctx context.Context) ([]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("collaborator_id").
		From(tableName).
		Where(squirrel.Eq{"is_available": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailableIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailableIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListAvailableIDs - scan collaborator_id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAvailableIDs - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

// TryClaim атомарно переводит исполнителя из доступного в занятого.
// Выполняется одним условным UPDATE с предикатом is_available = TRUE, поэтому
// из двух конкурирующих вызовов строку изменит только один.
// Возвращает false, если исполнитель уже занят или не существует.
func (r *Repository) TryClaim(ctx context.Context, collaboratorID, reservationID string, availableAt *time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("is_available", false).
		Set("current_reservation_id", reservationID).
		Set("available_at", availableAt).
		Set("last_updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"collaborator_id": collaboratorID, "is_available": true}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: TryClaim - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: TryClaim - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: TryClaim - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected == 1, nil
}

// Release возвращает исполнителя в доступные, фиксируя момент освобождения
func (r *Repository) Release(ctx context.Context, collaboratorID string, freedAt time.Time) error {
	return r.release(ctx, "Release", squirrel.Eq{"collaborator_id": collaboratorID}, freedAt, true)
}

// ReleaseReservation освобождает исполнителя, только если он всё еще занят указанным бронированием.
// Возвращает false, если исполнитель уже свободен или занят другим бронированием.
func (r *Repository) ReleaseReservation(ctx context.Context, collaboratorID, reservationID string, freedAt time.Time) (bool, error) {
	err := r.release(ctx, "ReleaseReservation", squirrel.Eq{
		"collaborator_id":        collaboratorID,
		"current_reservation_id": reservationID,
	}, freedAt, false)
	if errors.Is(err, ErrCollaboratorNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *Repository) release(ctx context.Context, op string, where squirrel.Eq, freedAt time.Time, strict bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("is_available", true).
		Set("current_reservation_id", nil).
		Set("available_at", freedAt).
		Set("last_updated_at", squirrel.Expr("NOW()")).
		Where(where).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrCollaboratorNotFound
	}

	return nil
}

// NextAvailable возвращает занятого исполнителя с наименьшим известным временем
// освобождения строго позже after. При равенстве времени выигрывает меньший ID.
func (r *Repository) NextAvailable(ctx context.Context, after time.Time) (*domain.Availability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("collaborator_id", "available_at").
		From(tableName).
		Where(squirrel.Eq{"is_available": false}).
		Where(squirrel.NotEq{"available_at": nil}).
		Where(squirrel.Gt{"available_at": after}).
		OrderBy("available_at ASC", "collaborator_id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: NextAvailable - build select query: %v", ErrBuildQuery, err)
	}

	var availability domain.Availability
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&availability.CollaboratorID,
		&availability.EstimatedAvailableAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoFutureAvailability
	}
	if err != nil {
		return nil, fmt.Errorf("%w: NextAvailable - scan availability: %v", ErrScanRow, err)
	}

	return &availability, nil
}
