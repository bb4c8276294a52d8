package update_reservation_status

import (
	"context"

	finishReservation "github.com/m04kA/Mucamas-BookingService/internal/usecase/finish_reservation"
)

type FinishReservationUseCase interface {
	Execute(ctx context.Context, req *finishReservation.Request) (*finishReservation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
