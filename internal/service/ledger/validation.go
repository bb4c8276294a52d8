package ledger

import (
	"fmt"
	"strings"

	"github.com/m04kA/Mucamas-BookingService/internal/domain"
)

// validateDraft проверяет черновик бронирования перед вставкой
func validateDraft(draft *domain.ReservationDraft) error {
	if draft == nil {
		return fmt.Errorf("%w: draft is required", ErrInvalidInput)
	}

	if strings.TrimSpace(draft.ClientID) == "" {
		return fmt.Errorf("%w: clientID is required", ErrInvalidInput)
	}

	if strings.TrimSpace(draft.ServiceID) == "" {
		return fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}

	if len(draft.ServiceName) > domain.MaxServiceNameLength {
		return fmt.Errorf("%w: service name exceeds %d characters", ErrInvalidInput, domain.MaxServiceNameLength)
	}

	if draft.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	if err := draft.Window().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if len(draft.Address.Notes) > domain.MaxAddressNotesLength {
		return fmt.Errorf("%w: address notes exceed %d characters", ErrInvalidInput, domain.MaxAddressNotesLength)
	}

	if draft.CollaboratorID != nil && *draft.CollaboratorID == "" {
		return fmt.Errorf("%w: collaboratorID must not be empty when set", ErrInvalidInput)
	}

	return nil
}
