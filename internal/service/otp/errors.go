package otp

import "errors"

var (
	// ErrRateLimited возвращается, когда устройство запрашивает коды слишком часто
	ErrRateLimited = errors.New("otp: too many codes requested for device")

	// ErrInvalidInput возвращается при пустом идентификаторе устройства
	ErrInvalidInput = errors.New("otp: device id is required")

	// ErrGenerate возвращается, если не удалось получить случайные данные
	ErrGenerate = errors.New("otp: failed to generate code")
)
