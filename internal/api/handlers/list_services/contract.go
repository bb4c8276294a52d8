package list_services

import (
	"context"

	"github.com/m04kA/Mucamas-BookingService/internal/domain"
)

type ServiceCatalog interface {
	GetActiveServices(ctx context.Context) ([]domain.ServiceDescriptor, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
