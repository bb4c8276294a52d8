package get_next_availability

import (
	"net/http"
	"time"

	"github.com/m04kA/Mucamas-BookingService/internal/api/handlers"
)

const (
	msgInvalidAfter = "некорректный параметр after, ожидается RFC3339"
)

type Handler struct {
	finder AvailabilityFinder
	logger Logger
	now    func() time.Time
}

func NewHandler(finder AvailabilityFinder, logger Logger) *Handler {
	return &Handler{
		finder: finder,
		logger: logger,
		now:    time.Now,
	}
}

// Handle GET /api/v1/collaborators/next-available[?after=RFC3339]
// 204, если ни у одного занятого исполнителя нет оценки освобождения.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	after := h.now()
	if raw := r.URL.Query().Get("after"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.logger.Warn("GET /collaborators/next-available - Invalid after: %v", err)
			handlers.RespondBadRequest(w, msgInvalidAfter)
			return
		}
		after = parsed
	}

	availability, found, err := h.finder.FindNextAvailability(r.Context(), after)
	if err != nil {
		h.logger.Error("GET /collaborators/next-available - Failed to find availability: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	if !found {
		h.logger.Info("GET /collaborators/next-available - No availability after %s", after.Format(time.RFC3339))
		handlers.RespondJSON(w, http.StatusNoContent, nil)
		return
	}

	h.logger.Info("GET /collaborators/next-available - collaborator=%s at %s",
		availability.CollaboratorID, availability.EstimatedAvailableAt.Format(time.RFC3339))
	handlers.RespondJSON(w, http.StatusOK, handlers.FromAvailability(availability))
}
