package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/Mucamas-BookingService/internal/domain"
	"github.com/m04kA/Mucamas-BookingService/pkg/dbmetrics"
	"github.com/m04kA/Mucamas-BookingService/pkg/psqlbuilder"
)

const (
	tableName = "reservations"

	// код ошибки postgres unique_violation
	uniqueViolationCode = "23505"
)

var columns = []string{
	"id",
	"client_id",
	"service_id",
	"service_name",
	"price",
	"reservation_date",
	"start_time",
	"end_time",
	"address_city",
	"address_neighborhood",
	"address_street",
	"address_notes",
	"collaborator_id",
	"status",
	"payment_status",
	"payment_method",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		res            domain.Reservation
		collaboratorID sql.NullString
		notes          sql.NullString
		createdAt      sql.NullTime
		updatedAt      sql.NullTime
	)

	err := row.Scan(
		&res.ID,
		&res.ClientID,
		&res.ServiceID,
		&res.ServiceName,
		&res.Price,
		&res.Date,
		&res.StartTime,
		&res.EndTime,
		&res.Address.City,
		&res.Address.Neighborhood,
		&res.Address.Street,
		&notes,
		&collaboratorID,
		&res.Status,
		&res.PaymentStatus,
		&res.PaymentMethod,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if collaboratorID.Valid {
		res.CollaboratorID = &collaboratorID.String
	}
	res.Address.Notes = notes.String
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

// Create создает новое бронирование.
// ID должен быть выделен заранее, статус и статус оплаты берутся из переданной модели.
// Если в контексте есть транзакция, запрос выполняется в ней.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(columns[:len(columns)-2]...).
		Values(
			res.ID,
			res.ClientID,
			res.ServiceID,
			res.ServiceName,
			res.Price,
			res.Date,
			res.StartTime,
			res.EndTime,
			res.Address.City,
			res.Address.Neighborhood,
			res.Address.Street,
			res.Address.Notes,
			res.CollaboratorID,
			res.Status,
			res.PaymentStatus,
			res.PaymentMethod,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
			return nil, fmt.Errorf("%w: Create - id %s", ErrDuplicateID, res.ID)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// GetByClientID получает список бронирований клиента, новые первыми
func (r *Repository) GetByClientID(ctx context.Context, clientID string) ([]*domain.Reservation, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("created_at DESC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - build select query: %v", ErrBuildQuery, err)
	}

	return r.list(ctx, "GetByClientID", query, args)
}

// GetAssignedByDate получает бронирования с назначенным исполнителем на дату
// в одном из переданных статусов
func (r *Repository) GetAssignedByDate(ctx context.Context, date string, statuses []domain.ReservationStatus) ([]*domain.Reservation, error) {
	if len(statuses) == 0 {
		return []*domain.Reservation{}, nil
	}

	statusValues := make([]string, 0, len(statuses))
	for _, s := range statuses {
		statusValues = append(statusValues, string(s))
	}

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"reservation_date": date}).
		Where(squirrel.NotEq{"collaborator_id": nil}).
		Where(squirrel.Eq{"status": statusValues}).
		OrderBy("start_time ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAssignedByDate - build select query: %v", ErrBuildQuery, err)
	}

	return r.list(ctx, "GetAssignedByDate", query, args)
}

func (r *Repository) list(ctx context.Context, op, query string, args []interface{}) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan reservation: %v", ErrScanRow, op, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return reservations, nil
}

// BindCollaborator назначает исполнителя и переводит бронирование в PENDING_PAYMENT.
// Обновление условное: применяется только к бронированию в PENDING_ASSIGNMENT.
func (r *Repository) BindCollaborator(ctx context.Context, id, collaboratorID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("collaborator_id", collaboratorID).
		Set("status", domain.StatusPendingPayment).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusPendingAssignment}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: BindCollaborator - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, "BindCollaborator", id, query, args)
}

// UpdateStatus переводит бронирование из статуса from в статус to.
// Если текущий статус уже не from, возвращает ErrStatusMismatch.
func (r *Repository) UpdateStatus(ctx context.Context, id string, from, to domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, "UpdateStatus", id, query, args)
}

// execConditional выполняет условный UPDATE; 0 затронутых строк различает
// отсутствующее бронирование и несовпадение статуса
func (r *Repository) execConditional(ctx context.Context, executor DBExecutor, op, id, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 1 {
		return nil
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrStatusMismatch
}
