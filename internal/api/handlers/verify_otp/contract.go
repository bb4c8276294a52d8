package verify_otp

import (
	"context"
	"time"

	"github.com/m04kA/Mucamas-BookingService/internal/domain"
)

type AccountStore interface {
	FindByIDNumber(ctx context.Context, idNumber string) (*domain.Account, error)
}

type CodeChecker interface {
	Check(deviceID, subject, entered string) bool
}

type TokenIssuer interface {
	CreateAccessToken(sub, idNumber, role string, ttl time.Duration) (string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
