package accountservice

import "errors"

var (
	// ErrAccountNotFound возвращается, когда аккаунт с таким номером документа не найден
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountExists возвращается при попытке сохранить аккаунт с занятым номером документа
	ErrAccountExists = errors.New("account already exists")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("accountservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("accountservice client: invalid response")
)
