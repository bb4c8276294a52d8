package update_reservation_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/Mucamas-BookingService/internal/api/handlers"
	"github.com/m04kA/Mucamas-BookingService/internal/api/middleware"
	"github.com/m04kA/Mucamas-BookingService/internal/domain"
	finishReservation "github.com/m04kA/Mucamas-BookingService/internal/usecase/finish_reservation"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidStatus        = "некорректный статус"
	msgMissingClaims        = "требуется авторизация"
	msgNotFound             = "бронирование не найдено"
	msgForbidden            = "доступ запрещен"
	msgInvalidTransition    = "переход в указанный статус невозможен"
)

type Handler struct {
	useCase FinishReservationUseCase
	logger  Logger
}

func NewHandler(useCase FinishReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID := mux.Vars(r)["reservationId"]
	if reservationID == "" {
		h.logger.Warn("PATCH /reservations/{id}/status - Empty reservation ID")
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id}/status - Missing claims")
		handlers.RespondUnauthorized(w, msgMissingClaims)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	status := domain.ReservationStatus(req.Status)
	if !status.IsValid() {
		h.logger.Warn("PATCH /reservations/{id}/status - Invalid status: %s", req.Status)
		handlers.RespondBadRequest(w, msgInvalidStatus)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &finishReservation.Request{
		ReservationID: reservationID,
		Status:        status,
		ActorID:       claims.Subject,
		ActorRole:     domain.Role(claims.Role),
	})
	if err != nil {
		switch {
		case errors.Is(err, finishReservation.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/status - Reservation not found: reservation_id=%s", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, finishReservation.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/{id}/status - Access denied: reservation_id=%s, account=%s",
				reservationID, claims.Subject)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, finishReservation.ErrInvalidTransition):
			h.logger.Warn("PATCH /reservations/{id}/status - Invalid transition: reservation_id=%s, to=%s",
				reservationID, status)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, finishReservation.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id}/status - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("PATCH /reservations/{id}/status - Failed to update status: reservation_id=%s, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/status - Status updated: reservation_id=%s, status=%s, released=%t",
		reservationID, status, resp.CollaboratorReleased)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
