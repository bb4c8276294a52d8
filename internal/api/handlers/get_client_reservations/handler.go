package get_client_reservations

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/Mucamas-BookingService/internal/api/handlers"
	"github.com/m04kA/Mucamas-BookingService/internal/api/middleware"
	"github.com/m04kA/Mucamas-BookingService/internal/domain"
)

const (
	msgInvalidClientID = "некорректный ID клиента"
	msgInvalidStatus   = "некорректный статус"
	msgMissingClaims   = "требуется авторизация"
	msgForbidden       = "доступ запрещен"
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

// Handle GET /api/v1/clients/{clientId}/reservations[?status=...]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID := mux.Vars(r)["clientId"]
	if clientID == "" {
		h.logger.Warn("GET /clients/{clientId}/reservations - Empty client ID")
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		h.logger.Warn("GET /clients/{clientId}/reservations - Missing claims")
		handlers.RespondUnauthorized(w, msgMissingClaims)
		return
	}
	if !handlers.CanReadClient(claims, clientID) {
		h.logger.Warn("GET /clients/{clientId}/reservations - Access denied: client_id=%s, account=%s",
			clientID, claims.Subject)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	// Фильтр по статусу (опционально)
	var status *domain.ReservationStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := domain.ReservationStatus(raw)
		if !s.IsValid() {
			h.logger.Warn("GET /clients/{clientId}/reservations - Invalid status: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		status = &s
	}

	list, err := h.ledger.ListByClient(r.Context(), clientID)
	if err != nil {
		h.logger.Error("GET /clients/{clientId}/reservations - Failed to list reservations: client_id=%s, error=%v",
			clientID, err)
		handlers.RespondInternalError(w)
		return
	}

	if status != nil {
		filtered := list[:0]
		for _, res := range list {
			if res.Status == *status {
				filtered = append(filtered, res)
			}
		}
		list = filtered
	}

	h.logger.Info("GET /clients/{clientId}/reservations - Retrieved %d reservations: client_id=%s",
		len(list), clientID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromReservations(list))
}
