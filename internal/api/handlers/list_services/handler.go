package list_services

import (
	"net/http"

	"github.com/m04kA/Mucamas-BookingService/internal/api/handlers"
)

const (
	msgCatalogUnavailable = "каталог услуг временно недоступен"
)

type Handler struct {
	catalog ServiceCatalog
	logger  Logger
}

func NewHandler(catalog ServiceCatalog, logger Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// Handle GET /api/v1/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	services, err := h.catalog.GetActiveServices(r.Context())
	if err != nil {
		h.logger.Error("GET /services - Failed to get active services: %v", err)
		handlers.RespondServiceUnavailable(w, msgCatalogUnavailable)
		return
	}

	h.logger.Info("GET /services - Retrieved %d active services", len(services))
	handlers.RespondJSON(w, http.StatusOK, handlers.FromServices(services))
}
