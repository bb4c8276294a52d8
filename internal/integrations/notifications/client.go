package notifications

import (
	"context"
	"fmt"
	"time"
)

// Client доставляет уведомления через RabbitMQ.
// Без издателя (RabbitMQ выключен в конфигурации) сообщения только логируются.
type Client struct {
	publisher MQPublisher
	log       Logger
	now       func() time.Time
}

// NewClient создает клиента уведомлений; publisher может быть nil
func NewClient(publisher MQPublisher, log Logger) *Client {
	return &Client{
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// SendOTP отправляет одноразовый код на устройство
func (c *Client) SendOTP(ctx context.Context, deviceID, destination, code string) error {
	msg := OTPMessage{
		DeviceID:    deviceID,
		Destination: destination,
		Code:        code,
		IssuedAt:    c.now().Unix(),
	}

	if c.publisher == nil {
		c.log.Warn("SendOTP: delivery disabled, code for device=%s dropped", deviceID)
		return nil
	}

	if err := c.publisher.PublishJSON(ctx, KeyOTPRequested, msg); err != nil {
		return fmt.Errorf("publish otp for device %s: %w", deviceID, err)
	}
	return nil
}

// PublishBookingOutcome публикует итог бронирования с ключом booking.<outcome>
func (c *Client) PublishBookingOutcome(ctx context.Context, reservationID, clientID, outcome string) error {
	if c.publisher == nil {
		return nil
	}

	msg := BookingOutcomeMessage{
		ReservationID: reservationID,
		ClientID:      clientID,
		Outcome:       outcome,
		OccurredAt:    c.now().Unix(),
	}

	if err := c.publisher.PublishJSON(ctx, KeyBookingPrefix+outcome, msg); err != nil {
		return fmt.Errorf("publish booking outcome %s: %w", outcome, err)
	}

	c.log.Info("PublishBookingOutcome: client=%s outcome=%s", clientID, outcome)
	return nil
}
