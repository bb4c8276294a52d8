package config

import "errors"

var (
	// ErrDecode ошибка разбора файла конфигурации
	ErrDecode = errors.New("config: failed to decode file")

	// ErrEnv ошибка разбора переменных окружения
	ErrEnv = errors.New("config: failed to process environment")

	// ErrInvalidConfig конфигурация не прошла проверку
	ErrInvalidConfig = errors.New("config: invalid configuration")
)
