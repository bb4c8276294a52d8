package update_reservation_status

import (
	"github.com/m04kA/Mucamas-BookingService/internal/api/handlers"
	finishReservation "github.com/m04kA/Mucamas-BookingService/internal/usecase/finish_reservation"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatusResponse HTTP response model
type UpdateStatusResponse struct {
	Reservation          *handlers.ReservationResponse `json:"reservation"`
	CollaboratorReleased bool                          `json:"collaboratorReleased"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *finishReservation.Response) *UpdateStatusResponse {
	return &UpdateStatusResponse{
		Reservation:          handlers.FromReservation(resp.Reservation),
		CollaboratorReleased: resp.CollaboratorReleased,
	}
}
