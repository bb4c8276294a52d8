package finish_reservation

import (
	"context"
	"time"

	"github.com/m04kA/Mucamas-BookingService/internal/domain"
)

// Ledger интерфейс журнала бронирований
type Ledger interface {
	Get(ctx context.Context, id string) (*domain.Reservation, error)
	Transition(ctx context.Context, id string, to domain.ReservationStatus) (*domain.Reservation, error)
	AdminCancel(ctx context.Context, id string) (*domain.Reservation, error)
	Notify(clientID string)
}

// Directory интерфейс каталога исполнителей
type Directory interface {
	ReleaseReservation(ctx context.Context, collaboratorID, reservationID string, freedAt time.Time) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
