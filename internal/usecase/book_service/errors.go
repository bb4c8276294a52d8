package book_service

import (
	"errors"
	"fmt"

	"github.com/m04kA/Mucamas-BookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_service: invalid input data")

	// ErrInvalidDate возвращается, когда дата бронирования уже прошла
	ErrInvalidDate = fmt.Errorf("%w: booking date is in the past", ErrInvalidInput)

	// ErrWindowStarted возвращается, когда окно услуги уже началось
	ErrWindowStarted = fmt.Errorf("%w: service window has already started", ErrInvalidInput)

	// ErrClientNotFound возвращается, когда аккаунт клиента не найден
	ErrClientNotFound = fmt.Errorf("book_service: client account %w", domain.ErrNotFound)

	// ErrNotClient возвращается, когда аккаунт не имеет роли CLIENT
	ErrNotClient = errors.New("book_service: account is not a client")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = fmt.Errorf("book_service: service %w", domain.ErrNotFound)

	// ErrServiceInactive возвращается, когда услуга снята с продажи
	ErrServiceInactive = errors.New("book_service: service is not active")

	// ErrBookingFailed возвращается, когда протокол бронирования прерван сбоем хранилища.
	// К моменту возврата захват исполнителя уже откатан.
	ErrBookingFailed = fmt.Errorf("book_service: booking failed, try again: %w", domain.ErrStoreUnavailable)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_service: internal error")
)
