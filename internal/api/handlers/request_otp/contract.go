package request_otp

import (
	"context"

	"github.com/m04kA/Mucamas-BookingService/internal/domain"
)

type AccountStore interface {
	FindByIDNumber(ctx context.Context, idNumber string) (*domain.Account, error)
}

type CodeIssuer interface {
	Issue(ctx context.Context, deviceID, subject, destination string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
