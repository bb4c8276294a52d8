package ledger

import (
	"context"

	"github.com/m04kA/Mucamas-BookingService/internal/domain"
	"github.com/m04kA/Mucamas-BookingService/pkg/broker"
)

// ReservationRepository интерфейс хранилища бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	GetByClientID(ctx context.Context, clientID string) ([]*domain.Reservation, error)
	GetAssignedByDate(ctx context.Context, date string, statuses []domain.ReservationStatus) ([]*domain.Reservation, error)
	BindCollaborator(ctx context.Context, id, collaboratorID string) error
	UpdateStatus(ctx context.Context, id string, from, to domain.ReservationStatus) error
}

// EventBus источник и приемник уведомлений об изменениях бронирований клиента
type EventBus interface {
	Publish(event broker.Event)
	Subscribe(key string) chan broker.Event
	Unsubscribe(key string, ch chan broker.Event)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
