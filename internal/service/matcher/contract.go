package matcher

import (
	"context"
	"time"

	"github.com/m04kA/Mucamas-BookingService/internal/domain"
)

// Directory источник доступности исполнителей
type Directory interface {
	ListAvailable(ctx context.Context) ([]string, error)
	NextAvailable(ctx context.Context, after time.Time) (*domain.Availability, bool, error)
}

// Ledger источник бронирований, занимающих время исполнителей
type Ledger interface {
	ListActiveByDate(ctx context.Context, date string) ([]*domain.Reservation, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
