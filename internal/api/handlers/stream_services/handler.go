package stream_services

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/Mucamas-BookingService/internal/api/handlers"
)

const (
	eventServices = "services"

	defaultPingInterval = 15 * time.Second
)

type Handler struct {
	watcher      ServiceWatcher
	pollInterval time.Duration
	pingInterval time.Duration
	logger       Logger
}

func NewHandler(watcher ServiceWatcher, pollInterval time.Duration, logger Logger) *Handler {
	return &Handler{
		watcher:      watcher,
		pollInterval: pollInterval,
		pingInterval: defaultPingInterval,
		logger:       logger,
	}
}

// Handle GET /api/v1/services/stream
// Отдает набор активных услуг при подключении и после каждого изменения каталога.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sse, err := handlers.NewSSE(w, r)
	if err != nil {
		h.logger.Error("GET /services/stream - %v", err)
		handlers.RespondInternalError(w)
		return
	}

	updates := h.watcher.WatchActiveServices(ctx, h.pollInterval)
	h.logger.Info("GET /services/stream - Stream opened")

	ping := time.NewTicker(h.pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("GET /services/stream - Client disconnected")
			return

		case services, ok := <-updates:
			if !ok {
				return
			}
			if err := handlers.SendJSON(sse, eventServices, handlers.FromServices(services)); err != nil {
				h.logger.Warn("GET /services/stream - Write failed: %v", err)
				return
			}

		case <-ping.C:
			if err := handlers.Ping(sse); err != nil {
				return
			}
		}
	}
}
