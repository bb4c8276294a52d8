package get_client_reservations

import (
	"context"

	"github.com/m04kA/Mucamas-BookingService/internal/domain"
)

type ReservationLedger interface {
	ListByClient(ctx context.Context, clientID string) ([]*domain.Reservation, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
