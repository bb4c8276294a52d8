package get_next_availability

import (
	"context"
	"time"

	"github.com/m04kA/Mucamas-BookingService/internal/domain"
)

type AvailabilityFinder interface {
	FindNextAvailability(ctx context.Context, after time.Time) (*domain.Availability, bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
