package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/Mucamas-BookingService/internal/domain"
	reservationRepo "github.com/m04kA/Mucamas-BookingService/internal/infra/storage/reservation"
	"github.com/m04kA/Mucamas-BookingService/pkg/broker"
	"github.com/m04kA/Mucamas-BookingService/pkg/dbmetrics"
)

// Service журнал бронирований: единственный, кто меняет их статус
type Service struct {
	repo   ReservationRepository
	bus    EventBus
	logger Logger
}

// NewService создает новый экземпляр журнала бронирований
func NewService(repo ReservationRepository, bus EventBus, logger Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

// NewID выделяет идентификатор бронирования заранее, чтобы захват исполнителя
// можно было привязать к нему до записи в журнал
func (s *Service) NewID() string {
	return uuid.NewString()
}

// Create записывает новое бронирование.
// Без исполнителя статус PENDING_ASSIGNMENT, с исполнителем сразу PENDING_PAYMENT.
func (s *Service) Create(ctx context.Context, draft *domain.ReservationDraft) (string, error) {
	if err := validateDraft(draft); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return "", err
	}

	id := draft.ID
	if id == "" {
		id = s.NewID()
	}

	status := domain.StatusPendingAssignment
	var collaboratorID *string
	if draft.CollaboratorID != nil {
		cid := *draft.CollaboratorID
		collaboratorID = &cid
		status = domain.StatusPendingPayment
	}

	res := &domain.Reservation{
		ID:             id,
		ClientID:       draft.ClientID,
		ServiceID:      draft.ServiceID,
		ServiceName:    draft.ServiceName,
		Price:          draft.Price,
		Date:           draft.Date,
		StartTime:      draft.StartTime,
		EndTime:        draft.EndTime,
		Address:        draft.Address,
		CollaboratorID: collaboratorID,
		Status:         status,
		PaymentStatus:  domain.PaymentStatusPending,
		PaymentMethod:  draft.PaymentMethod,
	}

	if _, err := s.repo.Create(ctx, res); err != nil {
		s.logger.Error("Create: repository error for reservation=%s: %v", id, err)
		return "", fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: reservation=%s created for client=%s with status=%s", id, draft.ClientID, status)
	s.publish(ctx, EventReservationCreated, draft.ClientID)
	return id, nil
}

// BindCollaborator назначает исполнителя бронированию в статусе PENDING_ASSIGNMENT
// и переводит его в PENDING_PAYMENT
func (s *Service) BindCollaborator(ctx context.Context, id, collaboratorID string) error {
	if collaboratorID == "" {
		return fmt.Errorf("%w: collaboratorID is required", ErrInvalidInput)
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.Status != domain.StatusPendingAssignment {
		s.logger.Warn("BindCollaborator: reservation=%s is %s", id, current.Status)
		return fmt.Errorf("%w: BindCollaborator - reservation %s is %s", ErrInvalidTransition, id, current.Status)
	}

	if err := s.repo.BindCollaborator(ctx, id, collaboratorID); err != nil {
		return s.mapWriteError("BindCollaborator", id, err)
	}

	s.logger.Info("BindCollaborator: reservation=%s bound to collaborator=%s", id, collaboratorID)
	s.publish(ctx, EventCollaboratorBound, current.ClientID)
	return nil
}

// Transition меняет статус по таблице переходов.
// Обновление условное по наблюдаемому статусу: если бронирование изменили конкурентно,
// возвращается ErrInvalidTransition.
func (s *Service) Transition(ctx context.Context, id string, to domain.ReservationStatus) (*domain.Reservation, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransition(current.Status, to) {
		s.logger.Warn("Transition: reservation=%s cannot move %s -> %s", id, current.Status, to)
		return nil, fmt.Errorf("%w: Transition - %s -> %s", ErrInvalidTransition, current.Status, to)
	}

	return s.apply(ctx, "Transition", current, to)
}

// AdminCancel отменяет бронирование из любого нетерминального статуса
func (s *Service) AdminCancel(ctx context.Context, id string) (*domain.Reservation, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanAdminCancel(current.Status) {
		s.logger.Warn("AdminCancel: reservation=%s is already %s", id, current.Status)
		return nil, fmt.Errorf("%w: AdminCancel - reservation is %s", ErrInvalidTransition, current.Status)
	}

	return s.apply(ctx, "AdminCancel", current, domain.StatusCancelled)
}

func (s *Service) apply(ctx context.Context, op string, current *domain.Reservation, to domain.ReservationStatus) (*domain.Reservation, error) {
	if err := s.repo.UpdateStatus(ctx, current.ID, current.Status, to); err != nil {
		return nil, s.mapWriteError(op, current.ID, err)
	}

	s.logger.Info("%s: reservation=%s %s -> %s", op, current.ID, current.Status, to)
	s.publish(ctx, EventReservationStatus, current.ClientID)

	updated := *current
	updated.Status = to
	return &updated, nil
}

func (s *Service) mapWriteError(op, id string, err error) error {
	switch {
	case errors.Is(err, reservationRepo.ErrReservationNotFound):
		return ErrReservationNotFound
	case errors.Is(err, reservationRepo.ErrStatusMismatch):
		s.logger.Warn("%s: reservation=%s changed concurrently", op, id)
		return fmt.Errorf("%w: %s - reservation %s changed concurrently", ErrInvalidTransition, op, id)
	default:
		s.logger.Error("%s: repository error for reservation=%s: %v", op, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}

// Get получает бронирование по ID
func (s *Service) Get(ctx context.Context, id string) (*domain.Reservation, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		s.logger.Error("Get: repository error for reservation=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}
	return res, nil
}

// ListByClient возвращает все бронирования клиента
func (s *Service) ListByClient(ctx context.Context, clientID string) ([]*domain.Reservation, error) {
	list, err := s.repo.GetByClientID(ctx, clientID)
	if err != nil {
		s.logger.Error("ListByClient: repository error for client=%s: %v", clientID, err)
		return nil, fmt.Errorf("%w: ListByClient - repository error: %v", ErrInternal, err)
	}
	return list, nil
}

// ListActiveByDate возвращает бронирования с назначенным исполнителем,
// которые занимают его время на указанную дату
func (s *Service) ListActiveByDate(ctx context.Context, date string) ([]*domain.Reservation, error) {
	list, err := s.repo.GetAssignedByDate(ctx, date, domain.ActiveStatuses)
	if err != nil {
		s.logger.Error("ListActiveByDate: repository error for date=%s: %v", date, err)
		return nil, fmt.Errorf("%w: ListActiveByDate - repository error: %v", ErrInternal, err)
	}
	return list, nil
}

// Notify сообщает подписчикам клиента об изменении его бронирований.
// Нужен после коммита транзакции: внутри транзакции публикация откладывается.
func (s *Service) Notify(clientID string) {
	s.bus.Publish(broker.NewEvent(EventReservationExternal, clientID))
}

func (s *Service) publish(ctx context.Context, eventType, clientID string) {
	// Подписчик перечитает снимок сразу по событию, поэтому до коммита публиковать нельзя
	if dbmetrics.IsInTransaction(ctx) {
		return
	}
	s.bus.Publish(broker.NewEvent(eventType, clientID))
}
