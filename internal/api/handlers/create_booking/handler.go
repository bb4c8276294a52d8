package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/Mucamas-BookingService/internal/api/handlers"
	"github.com/m04kA/Mucamas-BookingService/internal/api/middleware"
	bookService "github.com/m04kA/Mucamas-BookingService/internal/usecase/book_service"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgMissingClaims      = "требуется авторизация"
	msgInvalidInput       = "некорректные данные бронирования"
	msgClientNotFound     = "клиент не найден"
	msgNotClient          = "бронировать может только клиент"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceInactive    = "услуга недоступна для бронирования"
	msgBookingFailed      = "не удалось завершить бронирование, повторите попытку"
)

type Handler struct {
	useCase BookServiceUseCase
	logger  Logger
}

func NewHandler(useCase BookServiceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing claims")
		handlers.RespondUnauthorized(w, msgMissingClaims)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(claims.IDNumber)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	outcome, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookService.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: account=%s, error=%v", claims.Subject, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, bookService.ErrClientNotFound):
			h.logger.Warn("POST /bookings - Client not found: account=%s", claims.Subject)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, bookService.ErrNotClient):
			h.logger.Warn("POST /bookings - Not a client: account=%s", claims.Subject)
			handlers.RespondForbidden(w, msgNotClient)

		case errors.Is(err, bookService.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service=%q", req.ServiceName)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, bookService.ErrServiceInactive):
			h.logger.Warn("POST /bookings - Service inactive: service=%q", req.ServiceName)
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, bookService.ErrBookingFailed):
			h.logger.Error("POST /bookings - Booking failed: account=%s, error=%v", claims.Subject, err)
			handlers.RespondServiceUnavailable(w, msgBookingFailed)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: account=%s, error=%v", claims.Subject, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusCreated
	if outcome.Kind == bookService.OutcomeSuggested {
		// бронирование не создано, клиенту предложено другое время
		status = http.StatusOK
	}

	h.logger.Info("POST /bookings - Booking processed: account=%s, outcome=%s, reservation_id=%s",
		claims.Subject, outcome.Kind, outcome.ReservationID)
	handlers.RespondJSON(w, status, FromOutcome(outcome))
}
