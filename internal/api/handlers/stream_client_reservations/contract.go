package stream_client_reservations

import (
	"context"

	"github.com/m04kA/Mucamas-BookingService/internal/service/ledger"
)

type ReservationStreamer interface {
	StreamByClient(ctx context.Context, clientID string) (*ledger.Subscription, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
