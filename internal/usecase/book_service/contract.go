package book_service

import (
	"context"
	"time"

	"github.com/m04kA/Mucamas-BookingService/internal/domain"
)

// AccountStore интерфейс хранилища аккаунтов
type AccountStore interface {
	FindByIDNumber(ctx context.Context, idNumber string) (*domain.Account, error)
}

// Catalog интерфейс каталога услуг
type Catalog interface {
	GetByName(ctx context.Context, name string) (*domain.ServiceDescriptor, error)
}

// Matcher интерфейс подбора исполнителя
type Matcher interface {
	FindCandidate(ctx context.Context, window domain.TimeWindow, exclude map[string]struct{}) (string, bool, error)
	FindNextAvailability(ctx context.Context, after time.Time) (*domain.Availability, bool, error)
}

// Directory интерфейс каталога исполнителей
type Directory interface {
	TryClaim(ctx context.Context, collaboratorID, reservationID string, estimatedFreeAt *time.Time) (bool, error)
	ReleaseReservation(ctx context.Context, collaboratorID, reservationID string, freedAt time.Time) (bool, error)
}

// Ledger интерфейс журнала бронирований
type Ledger interface {
	NewID() string
	Create(ctx context.Context, draft *domain.ReservationDraft) (string, error)
	Get(ctx context.Context, id string) (*domain.Reservation, error)
}

// EventPublisher публикует итог бронирования во внешнюю шину
type EventPublisher interface {
	PublishBookingOutcome(ctx context.Context, reservationID, clientID, outcome string) error
}

// Metrics счетчики протокола бронирования
type Metrics interface {
	RecordBookingOutcome(outcome string)
	RecordClaimConflict()
	RecordCompensation(success bool)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

type noopMetrics struct{}

func (noopMetrics) RecordBookingOutcome(string) {}
func (noopMetrics) RecordClaimConflict()        {}
func (noopMetrics) RecordCompensation(bool)     {}
