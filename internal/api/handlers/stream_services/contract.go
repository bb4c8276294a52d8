package stream_services

import (
	"context"
	"time"

	"github.com/m04kA/Mucamas-BookingService/internal/domain"
)

type ServiceWatcher interface {
	WatchActiveServices(ctx context.Context, interval time.Duration) <-chan []domain.ServiceDescriptor
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
