package directory

import (
	"fmt"

	"github.com/m04kA/Mucamas-BookingService/internal/domain"
)

var (
	// ErrCollaboratorNotFound возвращается, когда исполнитель не зарегистрирован
	ErrCollaboratorNotFound = fmt.Errorf("directory: collaborator %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при пустом ID исполнителя или бронирования
	ErrInvalidInput = fmt.Errorf("directory: invalid input")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = fmt.Errorf("directory: %w", domain.ErrStoreUnavailable)
)
