package notify

import "github.com/m04kA/Mucamas-BookingService/pkg/broker"

// EventPublisher шина, в которую пересылаются уведомления базы
type EventPublisher interface {
	Publish(event broker.Event)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
