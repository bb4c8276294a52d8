package directory

import (
	"context"
	"time"

	"github.com/m04kA/Mucamas-BookingService/internal/domain"
)

// CollaboratorRepository интерфейс хранилища состояний исполнителей
type CollaboratorRepository interface {
	Upsert(ctx context.Context, collaboratorID string) (bool, error)
	GetByID(ctx context.Context, collaboratorID string) (*domain.CollaboratorStatus, error)
	ListAvailableIDs(ctx context.Context) ([]string, error)
	TryClaim(ctx context.Context, collaboratorID, reservationID string, availableAt *time.Time) (bool, error)
	Release(ctx context.Context, collaboratorID string, freedAt time.Time) error
	ReleaseReservation(ctx context.Context, collaboratorID, reservationID string, freedAt time.Time) (bool, error)
	NextAvailable(ctx context.Context, after time.Time) (*domain.Availability, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
