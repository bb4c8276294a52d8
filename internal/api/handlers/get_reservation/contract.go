package get_reservation

import (
	"context"

	"github.com/m04kA/Mucamas-BookingService/internal/domain"
)

type ReservationLedger interface {
	Get(ctx context.Context, id string) (*domain.Reservation, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
