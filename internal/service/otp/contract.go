package otp

import "context"

// Notifier доставляет одноразовый код на устройство
type Notifier interface {
	SendOTP(ctx context.Context, deviceID, destination, code string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
