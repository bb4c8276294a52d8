package create_booking

import (
	"github.com/m04kA/Mucamas-BookingService/internal/api/handlers"
	bookService "github.com/m04kA/Mucamas-BookingService/internal/usecase/book_service"
	"github.com/m04kA/Mucamas-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceName   string              `json:"serviceName"`
	Date          string              `json:"date"`              // "2025-10-15"
	StartTime     string              `json:"startTime"`         // "10:00"
	EndTime       string              `json:"endTime,omitempty"` // если пусто, берется длительность услуги
	Address       handlers.AddressDTO `json:"address"`
	PaymentMethod string              `json:"paymentMethod"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	Outcome       string                         `json:"outcome"`
	ReservationID string                         `json:"reservationId,omitempty"`
	Reservation   *handlers.ReservationResponse  `json:"reservation,omitempty"`
	Suggestion    *handlers.AvailabilityResponse `json:"suggestion,omitempty"`
	ClaimAttempts int                            `json:"claimAttempts"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Номер документа клиента берется из токена, а не из тела запроса.
func (r *CreateBookingRequest) ToUseCaseRequest(clientIDNumber string) (*bookService.Request, error) {
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	var endTime types.TimeString
	if r.EndTime != "" {
		endTime, err = types.NewTimeStringFromString(r.EndTime)
		if err != nil {
			return nil, err
		}
	}

	return &bookService.Request{
		ClientIDNumber: clientIDNumber,
		ServiceName:    r.ServiceName,
		Date:           r.Date,
		StartTime:      startTime,
		EndTime:        endTime,
		Address:        r.Address.ToDomain(),
		PaymentMethod:  r.PaymentMethod,
	}, nil
}

// FromOutcome конвертирует результат use case в HTTP response
func FromOutcome(outcome *bookService.Outcome) *BookingResponse {
	return &BookingResponse{
		Outcome:       string(outcome.Kind),
		ReservationID: outcome.ReservationID,
		Reservation:   handlers.FromReservation(outcome.Reservation),
		Suggestion:    handlers.FromAvailability(outcome.Suggestion),
		ClaimAttempts: outcome.ClaimAttempts,
	}
}
