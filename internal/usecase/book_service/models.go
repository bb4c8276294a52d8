package book_service

import (
	"time"

	"github.com/m04kA/Mucamas-BookingService/internal/domain"
	"github.com/m04kA/Mucamas-BookingService/pkg/types"
)

// OutcomeKind итог попытки бронирования
type OutcomeKind string

const (
	// OutcomeAssigned исполнитель назначен, бронирование в PENDING_PAYMENT
	OutcomeAssigned OutcomeKind = "assigned"
	// OutcomeSuggested свободных нет, предложено ближайшее время; бронирование не создано
	OutcomeSuggested OutcomeKind = "suggested"
	// OutcomeUnassigned свободных нет и время неизвестно; бронирование в PENDING_ASSIGNMENT
	OutcomeUnassigned OutcomeKind = "unassigned"
)

// Config параметры протокола бронирования
type Config struct {
	MaxClaimAttempts int
	StepTimeout      time.Duration
	// Location часовой пояс, в котором заданы дата и время окна
	Location *time.Location
}

// Request модель запроса на бронирование
type Request struct {
	ClientIDNumber string           // Номер документа клиента
	ServiceName    string           // Название услуги в каталоге
	Date           string           // Дата (YYYY-MM-DD)
	StartTime      types.TimeString // Время начала (HH:MM)
	EndTime        types.TimeString // Время окончания; если пусто, берется длительность услуги
	Address        domain.Address   // Адрес оказания услуги
	PaymentMethod  string           // Способ оплаты
}

// Outcome результат бронирования
type Outcome struct {
	Kind OutcomeKind

	// ReservationID пуст для OutcomeSuggested
	ReservationID string
	Reservation   *domain.Reservation

	// Suggestion заполнено только для OutcomeSuggested
	Suggestion *domain.Availability

	// ClaimAttempts количество попыток захвата исполнителя
	ClaimAttempts int
}
