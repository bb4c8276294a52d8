package ledger

import (
	"errors"
	"fmt"

	"github.com/m04kA/Mucamas-BookingService/internal/domain"
)

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = fmt.Errorf("ledger: reservation %w", domain.ErrNotFound)

	// ErrInvalidTransition возвращается, когда переход статуса запрещен
	// или текущий статус изменился конкурентно
	ErrInvalidTransition = fmt.Errorf("ledger: %w", domain.ErrInvalidTransition)

	// ErrInvalidInput возвращается при некорректном черновике бронирования
	ErrInvalidInput = errors.New("ledger: invalid reservation data")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = fmt.Errorf("ledger: %w", domain.ErrStoreUnavailable)
)
