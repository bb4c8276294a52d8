package verify_otp

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/Mucamas-BookingService/internal/api/handlers"
	"github.com/m04kA/Mucamas-BookingService/internal/integrations/accountservice"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingFields      = "deviceId, idNumber и code обязательны"
	msgInvalidCode        = "неверный или просроченный код"
)

type Handler struct {
	accounts AccountStore
	codes    CodeChecker
	tokens   TokenIssuer
	tokenTTL time.Duration
	logger   Logger
}

func NewHandler(accounts AccountStore, codes CodeChecker, tokens TokenIssuer, tokenTTL time.Duration, logger Logger) *Handler {
	return &Handler{
		accounts: accounts,
		codes:    codes,
		tokens:   tokens,
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// Handle POST /api/v1/otp/verify
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req VerifyOTPRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /otp/verify - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.DeviceID == "" || req.IDNumber == "" || req.Code == "" {
		h.logger.Warn("POST /otp/verify - Missing fields")
		handlers.RespondBadRequest(w, msgMissingFields)
		return
	}

	account, err := h.accounts.FindByIDNumber(r.Context(), req.IDNumber)
	if err != nil {
		if errors.Is(err, accountservice.ErrAccountNotFound) {
			h.logger.Warn("POST /otp/verify - Unknown id_number, device=%s", req.DeviceID)
			handlers.RespondUnauthorized(w, msgInvalidCode)
			return
		}
		h.logger.Error("POST /otp/verify - Failed to resolve account: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	if !h.codes.Check(req.DeviceID, account.ID, req.Code) {
		h.logger.Warn("POST /otp/verify - Invalid code: device=%s, account=%s", req.DeviceID, account.ID)
		handlers.RespondUnauthorized(w, msgInvalidCode)
		return
	}

	token, err := h.tokens.CreateAccessToken(account.ID, account.IDNumber, string(account.Role), h.tokenTTL)
	if err != nil {
		h.logger.Error("POST /otp/verify - Failed to sign token: account=%s, error=%v", account.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /otp/verify - Token issued: account=%s, role=%s", account.ID, account.Role)
	handlers.RespondJSON(w, http.StatusOK, &TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.tokenTTL.Seconds()),
		AccountID:   account.ID,
		Role:        string(account.Role),
	})
}
