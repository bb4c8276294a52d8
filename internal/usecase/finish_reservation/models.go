package finish_reservation

import "github.com/m04kA/Mucamas-BookingService/internal/domain"

// Request модель запроса на смену статуса
type Request struct {
	ReservationID string                   // ID бронирования
	Status        domain.ReservationStatus // Новый статус
	ActorID       string                   // ID аккаунта, выполняющего действие
	ActorRole     domain.Role              // Роль аккаунта
}

// Response результат смены статуса
type Response struct {
	Reservation *domain.Reservation
	// CollaboratorReleased исполнитель возвращен в доступные
	CollaboratorReleased bool
}
