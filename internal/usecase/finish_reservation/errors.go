package finish_reservation

import (
	"errors"
	"fmt"

	"github.com/m04kA/Mucamas-BookingService/internal/domain"
)

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = fmt.Errorf("finish_reservation: reservation %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда у пользователя нет прав на изменение статуса
	ErrAccessDenied = errors.New("finish_reservation: access denied")

	// ErrInvalidTransition возвращается, когда переход статуса запрещен
	ErrInvalidTransition = fmt.Errorf("finish_reservation: %w", domain.ErrInvalidTransition)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("finish_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("finish_reservation: internal error")
)
