package get_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/Mucamas-BookingService/internal/api/handlers"
	"github.com/m04kA/Mucamas-BookingService/internal/api/middleware"
	"github.com/m04kA/Mucamas-BookingService/internal/service/ledger"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgNotFound             = "бронирование не найдено"
	msgMissingClaims        = "требуется авторизация"
	msgForbidden            = "доступ запрещен"
)

type Handler struct {
	ledger ReservationLedger
	logger Logger
}

func NewHandler(ledger ReservationLedger, logger Logger) *Handler {
	return &Handler{
		ledger: ledger,
		logger: logger,
	}
}

// Handle GET /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID := mux.Vars(r)["reservationId"]
	if reservationID == "" {
		h.logger.Warn("GET /reservations/{id} - Empty reservation ID")
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		h.logger.Warn("GET /reservations/{id} - Missing claims")
		handlers.RespondUnauthorized(w, msgMissingClaims)
		return
	}

	res, err := h.ledger.Get(r.Context(), reservationID)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrReservationNotFound):
			h.logger.Warn("GET /reservations/{id} - Reservation not found: reservation_id=%s", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /reservations/{id} - Failed to get reservation: reservation_id=%s, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if !handlers.CanReadReservation(claims, res) {
		h.logger.Warn("GET /reservations/{id} - Access denied: reservation_id=%s, account=%s", reservationID, claims.Subject)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	h.logger.Info("GET /reservations/{id} - Reservation retrieved: reservation_id=%s, account=%s",
		reservationID, claims.Subject)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromReservation(res))
}
