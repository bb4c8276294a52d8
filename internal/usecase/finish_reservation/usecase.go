package finish_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/Mucamas-BookingService/internal/domain"
	"github.com/m04kA/Mucamas-BookingService/internal/service/ledger"
	"github.com/m04kA/Mucamas-BookingService/pkg/ptr"
)

// UseCase смена статуса бронирования с освобождением исполнителя в терминальном статусе
type UseCase struct {
	ledger       Ledger
	directory    Directory
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(ledger Ledger, directory Directory, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		ledger:       ledger,
		directory:    directory,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет смену статуса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || req.ReservationID == "" || !req.Status.IsValid() {
		return nil, ErrInvalidInput
	}

	uc.logger.Info("FinishReservation: reservation=%s -> %s by %s=%s",
		req.ReservationID, req.Status, req.ActorRole, req.ActorID)

	// 1. Текущее состояние для проверки прав
	current, err := uc.ledger.Get(ctx, req.ReservationID)
	if err != nil {
		return nil, uc.mapLedgerError(req.ReservationID, err)
	}

	if err := checkAccess(current, req); err != nil {
		uc.logger.Warn("FinishReservation: %s=%s cannot set %s on reservation=%s",
			req.ActorRole, req.ActorID, req.Status, req.ReservationID)
		return nil, err
	}

	// 2. Переход статуса и освобождение исполнителя фиксируются вместе
	resp := &Response{}
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		var updated *domain.Reservation
		var err error
		// администратор отменяет из любого нетерминального статуса
		if req.ActorRole == domain.RoleAdmin && req.Status == domain.StatusCancelled {
			updated, err = uc.ledger.AdminCancel(txCtx, req.ReservationID)
		} else {
			updated, err = uc.ledger.Transition(txCtx, req.ReservationID, req.Status)
		}
		if err != nil {
			return uc.mapLedgerError(req.ReservationID, err)
		}
		resp.Reservation = updated

		// 3. В терминальном статусе исполнитель больше не занят этим бронированием
		if !updated.Status.IsTerminal() || !updated.IsAssigned() {
			return nil
		}
		collaboratorID := ptr.Value(updated.CollaboratorID)
		released, err := uc.directory.ReleaseReservation(txCtx, collaboratorID, updated.ID, uc.timeProvider.Now())
		if err != nil {
			uc.logger.Error("FinishReservation: failed to release collaborator=%s: %v", collaboratorID, err)
			return fmt.Errorf("%w: release collaborator: %v", ErrInternal, err)
		}
		resp.CollaboratorReleased = released
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Подписчики клиента узнают об изменении только после коммита
	uc.ledger.Notify(current.ClientID)

	return resp, nil
}

func (uc *UseCase) mapLedgerError(id string, err error) error {
	switch {
	case errors.Is(err, ledger.ErrReservationNotFound):
		uc.logger.Warn("FinishReservation: reservation=%s not found", id)
		return ErrReservationNotFound
	case errors.Is(err, ledger.ErrInvalidTransition):
		uc.logger.Warn("FinishReservation: %v", err)
		return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	default:
		uc.logger.Error("FinishReservation: ledger error for reservation=%s: %v", id, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

// checkAccess проверяет, может ли роль установить запрошенный статус
func checkAccess(res *domain.Reservation, req *Request) error {
	switch req.ActorRole {
	case domain.RoleAdmin:
		return nil
	case domain.RoleClient:
		if res.ClientID == req.ActorID && req.Status == domain.StatusCancelled {
			return nil
		}
	case domain.RoleCollaborator:
		if ptr.Value(res.CollaboratorID) == req.ActorID &&
			(req.Status == domain.StatusInProgress || req.Status == domain.StatusCompleted) {
			return nil
		}
	}
	return ErrAccessDenied
}
