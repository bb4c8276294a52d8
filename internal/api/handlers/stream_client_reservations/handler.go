package stream_client_reservations

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/Mucamas-BookingService/internal/api/handlers"
	"github.com/m04kA/Mucamas-BookingService/internal/api/middleware"
)

const (
	msgInvalidClientID = "некорректный ID клиента"
	msgMissingClaims   = "требуется авторизация"
	msgForbidden       = "доступ запрещен"

	eventSnapshot = "reservations"

	defaultPingInterval = 15 * time.Second
)

type Handler struct {
	streamer     ReservationStreamer
	logger       Logger
	pingInterval time.Duration
}

func NewHandler(streamer ReservationStreamer, logger Logger) *Handler {
	return &Handler{
		streamer:     streamer,
		logger:       logger,
		pingInterval: defaultPingInterval,
	}
}

// Handle GET /api/v1/clients/{clientId}/reservations/stream
// Каждое событие содержит полный список бронирований клиента.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID := mux.Vars(r)["clientId"]
	if clientID == "" {
		h.logger.Warn("GET /clients/{clientId}/reservations/stream - Empty client ID")
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		h.logger.Warn("GET /clients/{clientId}/reservations/stream - Missing claims")
		handlers.RespondUnauthorized(w, msgMissingClaims)
		return
	}
	if !handlers.CanReadClient(claims, clientID) {
		h.logger.Warn("GET /clients/{clientId}/reservations/stream - Access denied: client_id=%s, account=%s",
			clientID, claims.Subject)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	sub, err := h.streamer.StreamByClient(r.Context(), clientID)
	if err != nil {
		h.logger.Error("GET /clients/{clientId}/reservations/stream - Failed to subscribe: client_id=%s, error=%v",
			clientID, err)
		handlers.RespondInternalError(w)
		return
	}
	defer sub.Cancel()

	sse, err := handlers.NewSSE(w, r)
	if err != nil {
		h.logger.Error("GET /clients/{clientId}/reservations/stream - %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /clients/{clientId}/reservations/stream - Stream opened: client_id=%s", clientID)

	ping := time.NewTicker(h.pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-r.Context().Done():
			h.logger.Info("GET /clients/{clientId}/reservations/stream - Client disconnected: client_id=%s", clientID)
			return

		case snapshot, ok := <-sub.C:
			if !ok {
				return
			}
			if err := handlers.SendJSON(sse, eventSnapshot, handlers.FromReservations(snapshot)); err != nil {
				h.logger.Warn("GET /clients/{clientId}/reservations/stream - Write failed: client_id=%s, error=%v",
					clientID, err)
				return
			}

		case <-ping.C:
			if err := handlers.Ping(sse); err != nil {
				return
			}
		}
	}
}
