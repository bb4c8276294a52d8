package request_otp

import (
	"errors"
	"net/http"

	"github.com/m04kA/Mucamas-BookingService/internal/api/handlers"
	"github.com/m04kA/Mucamas-BookingService/internal/integrations/accountservice"
	"github.com/m04kA/Mucamas-BookingService/internal/service/otp"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingFields      = "deviceId и idNumber обязательны"
	msgRateLimited        = "слишком много запросов кода, попробуйте позже"
)

type Handler struct {
	accounts AccountStore
	codes    CodeIssuer
	logger   Logger
}

func NewHandler(accounts AccountStore, codes CodeIssuer, logger Logger) *Handler {
	return &Handler{
		accounts: accounts,
		codes:    codes,
		logger:   logger,
	}
}

// Handle POST /api/v1/otp
// Код отправляется на телефон аккаунта. Ответ одинаков для известных и неизвестных номеров документа.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req RequestOTPRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /otp - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.DeviceID == "" || req.IDNumber == "" {
		h.logger.Warn("POST /otp - Missing fields")
		handlers.RespondBadRequest(w, msgMissingFields)
		return
	}

	account, err := h.accounts.FindByIDNumber(r.Context(), req.IDNumber)
	if err != nil {
		if errors.Is(err, accountservice.ErrAccountNotFound) {
			h.logger.Warn("POST /otp - Unknown id_number, device=%s", req.DeviceID)
			handlers.RespondJSON(w, http.StatusAccepted, nil)
			return
		}
		h.logger.Error("POST /otp - Failed to resolve account: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	if err := h.codes.Issue(r.Context(), req.DeviceID, account.ID, account.Phone); err != nil {
		switch {
		case errors.Is(err, otp.ErrRateLimited):
			h.logger.Warn("POST /otp - Rate limited: device=%s", req.DeviceID)
			handlers.RespondTooManyRequests(w, msgRateLimited)

		default:
			h.logger.Error("POST /otp - Failed to issue code: device=%s, error=%v", req.DeviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /otp - Code issued: device=%s, account=%s", req.DeviceID, account.ID)
	handlers.RespondJSON(w, http.StatusAccepted, nil)
}
