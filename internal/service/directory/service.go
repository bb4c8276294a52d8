package directory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/Mucamas-BookingService/internal/domain"
	collaboratorRepo "github.com/m04kA/Mucamas-BookingService/internal/infra/storage/collaborator"
)

// Service каталог исполнителей: единственный, кто меняет их статус доступности
type Service struct {
	repo   CollaboratorRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса исполнителей
func NewService(repo CollaboratorRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Register регистрирует исполнителя как доступного. Повторная регистрация не меняет текущий статус.
func (s *Service) Register(ctx context.Context, collaboratorID string) (bool, error) {
	if collaboratorID == "" {
		return false, ErrInvalidInput
	}

	created, err := s.repo.Upsert(ctx, collaboratorID)
	if err != nil {
		s.logger.Error("Register: repository error for collaborator=%s: %v", collaboratorID, err)
		return false, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	if created {
		s.logger.Info("Register: collaborator=%s registered as available", collaboratorID)
	}
	return created, nil
}

// Get возвращает текущее состояние исполнителя
func (s *Service) Get(ctx context.Context, collaboratorID string) (*domain.CollaboratorStatus, error) {
	status, err := s.repo.GetByID(ctx, collaboratorID)
	if err != nil {
		if errors.Is(err, collaboratorRepo.ErrCollaboratorNotFound) {
			return nil, ErrCollaboratorNotFound
		}
		s.logger.Error("Get: repository error for collaborator=%s: %v", collaboratorID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	if err := status.CheckInvariant(); err != nil {
		s.logger.Error("Get: %v", err)
	}
	return status, nil
}

// ListAvailable возвращает ID всех доступных исполнителей
func (s *Service) ListAvailable(ctx context.Context) ([]string, error) {
	ids, err := s.repo.ListAvailableIDs(ctx)
	if err != nil {
		s.logger.Error("ListAvailable: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAvailable - repository error: %v", ErrInternal, err)
	}
	return ids, nil
}

// TryClaim атомарно занимает исполнителя под бронирование.
// false означает, что исполнитель уже занят (или неизвестен): это штатный исход гонки, а не ошибка.
func (s *Service) TryClaim(ctx context.Context, collaboratorID, reservationID string, estimatedFreeAt *time.Time) (bool, error) {
	if collaboratorID == "" || reservationID == "" {
		return false, ErrInvalidInput
	}

	claimed, err := s.repo.TryClaim(ctx, collaboratorID, reservationID, estimatedFreeAt)
	if err != nil {
		s.logger.Error("TryClaim: repository error for collaborator=%s: %v", collaboratorID, err)
		return false, fmt.Errorf("%w: TryClaim - repository error: %v", ErrInternal, err)
	}

	if claimed {
		s.logger.Info("TryClaim: collaborator=%s claimed for reservation=%s", collaboratorID, reservationID)
	} else {
		s.logger.Warn("TryClaim: collaborator=%s is no longer available", collaboratorID)
	}
	return claimed, nil
}

// Release возвращает исполнителя в доступные
func (s *Service) Release(ctx context.Context, collaboratorID string, freedAt time.Time) error {
	err := s.repo.Release(ctx, collaboratorID, freedAt)
	if err != nil {
		if errors.Is(err, collaboratorRepo.ErrCollaboratorNotFound) {
			s.logger.Warn("Release: collaborator=%s not found", collaboratorID)
			return ErrCollaboratorNotFound
		}
		s.logger.Error("Release: repository error for collaborator=%s: %v", collaboratorID, err)
		return fmt.Errorf("%w: Release - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Release: collaborator=%s is available again", collaboratorID)
	return nil
}

// ReleaseReservation освобождает исполнителя, только если он занят именно этим бронированием.
// Используется компенсацией, чтобы не снять чужой захват.
func (s *Service) ReleaseReservation(ctx context.Context, collaboratorID, reservationID string, freedAt time.Time) (bool, error) {
	released, err := s.repo.ReleaseReservation(ctx, collaboratorID, reservationID, freedAt)
	if err != nil {
		s.logger.Error("ReleaseReservation: repository error for collaborator=%s: %v", collaboratorID, err)
		return false, fmt.Errorf("%w: ReleaseReservation - repository error: %v", ErrInternal, err)
	}

	if !released {
		s.logger.Warn("ReleaseReservation: collaborator=%s is not held by reservation=%s", collaboratorID, reservationID)
	}
	return released, nil
}

// NextAvailable возвращает ближайшее известное освобождение исполнителя строго после after.
// Второе значение false, если таких исполнителей нет.
func (s *Service) NextAvailable(ctx context.Context, after time.Time) (*domain.Availability, bool, error) {
	availability, err := s.repo.NextAvailable(ctx, after)
	if err != nil {
		if errors.Is(err, collaboratorRepo.ErrNoFutureAvailability) {
			return nil, false, nil
		}
		s.logger.Error("NextAvailable: repository error: %v", err)
		return nil, false, fmt.Errorf("%w: NextAvailable - repository error: %v", ErrInternal, err)
	}
	return availability, true, nil
}
