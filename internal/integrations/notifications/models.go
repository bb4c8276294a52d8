package notifications

// Routing keys сообщений
const (
	KeyOTPRequested  = "otp.requested"
	KeyBookingPrefix = "booking."
)

// OTPMessage запрос на доставку одноразового кода на устройство
type OTPMessage struct {
	DeviceID    string `json:"device_id"`
	Destination string `json:"destination,omitempty"`
	Code        string `json:"code"`
	IssuedAt    int64  `json:"issued_at"`
}

// BookingOutcomeMessage итог попытки бронирования
type BookingOutcomeMessage struct {
	ReservationID string `json:"reservation_id,omitempty"`
	ClientID      string `json:"client_id"`
	Outcome       string `json:"outcome"`
	OccurredAt    int64  `json:"occurred_at"`
}
