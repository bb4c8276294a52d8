package register_collaborator

import (
	"errors"
	"net/http"

	"github.com/m04kA/Mucamas-BookingService/internal/api/handlers"
	"github.com/m04kA/Mucamas-BookingService/internal/api/middleware"
	"github.com/m04kA/Mucamas-BookingService/internal/domain"
	"github.com/m04kA/Mucamas-BookingService/internal/service/directory"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidID          = "некорректный ID исполнителя"
	msgMissingClaims      = "требуется авторизация"
	msgForbidden          = "исполнитель может зарегистрировать только себя"
)

type Handler struct {
	directory CollaboratorDirectory
	logger    Logger
}

func NewHandler(directory CollaboratorDirectory, logger Logger) *Handler {
	return &Handler{
		directory: directory,
		logger:    logger,
	}
}

// Handle POST /api/v1/collaborators
// Повторная регистрация не меняет состояние исполнителя.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		h.logger.Warn("POST /collaborators - Missing claims")
		handlers.RespondUnauthorized(w, msgMissingClaims)
		return
	}

	var req RegisterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /collaborators - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	collaboratorID := req.CollaboratorID
	if domain.Role(claims.Role) == domain.RoleCollaborator {
		if collaboratorID == "" {
			collaboratorID = claims.Subject
		}
		if collaboratorID != claims.Subject {
			h.logger.Warn("POST /collaborators - Access denied: account=%s, collaborator_id=%s",
				claims.Subject, collaboratorID)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
	}

	created, err := h.directory.Register(r.Context(), collaboratorID)
	if err != nil {
		switch {
		case errors.Is(err, directory.ErrInvalidInput):
			h.logger.Warn("POST /collaborators - Invalid collaborator ID: %q", collaboratorID)
			handlers.RespondBadRequest(w, msgInvalidID)

		default:
			h.logger.Error("POST /collaborators - Failed to register: collaborator_id=%s, error=%v", collaboratorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	h.logger.Info("POST /collaborators - collaborator_id=%s, created=%t", collaboratorID, created)
	handlers.RespondJSON(w, status, &RegisterResponse{CollaboratorID: collaboratorID, Created: created})
}
