package matcher

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/Mucamas-BookingService/internal/domain"
)

// Service подбирает исполнителя под окно. Только читает данные.
type Service struct {
	directory Directory
	ledger    Ledger
	logger    Logger
}

// NewService создает новый экземпляр подбора исполнителей
func NewService(directory Directory, ledger Ledger, logger Logger) *Service {
	return &Service{
		directory: directory,
		ledger:    ledger,
		logger:    logger,
	}
}

// FindCandidate возвращает доступного исполнителя без активных бронирований,
// пересекающихся с окном. Из нескольких кандидатов выбирается наименьший ID.
// Исполнители из exclude не рассматриваются.
func (s *Service) FindCandidate(ctx context.Context, window domain.TimeWindow, exclude map[string]struct{}) (string, bool, error) {
	if err := window.Validate(); err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrInvalidWindow, err)
	}

	available, err := s.directory.ListAvailable(ctx)
	if err != nil {
		return "", false, fmt.Errorf("FindCandidate - list available: %w", err)
	}
	if len(available) == 0 {
		s.logger.Info("FindCandidate: no available collaborators for %s %s-%s", window.Date, window.Start, window.End)
		return "", false, nil
	}

	active, err := s.ledger.ListActiveByDate(ctx, window.Date)
	if err != nil {
		return "", false, fmt.Errorf("FindCandidate - list active reservations: %w", err)
	}

	busy := make(map[string]struct{})
	for _, res := range active {
		if res.CollaboratorID == nil {
			continue
		}
		if res.Window().Overlaps(window) {
			busy[*res.CollaboratorID] = struct{}{}
		}
	}

	candidates := make([]string, 0, len(available))
	for _, id := range available {
		if _, skip := exclude[id]; skip {
			continue
		}
		if _, skip := busy[id]; skip {
			continue
		}
		candidates = append(candidates, id)
	}

	if len(candidates) == 0 {
		s.logger.Info("FindCandidate: %d available, none free for %s %s-%s", len(available), window.Date, window.Start, window.End)
		return "", false, nil
	}

	sort.Strings(candidates)
	return candidates[0], true, nil
}

// FindNextAvailability возвращает ближайшее известное освобождение исполнителя после after
func (s *Service) FindNextAvailability(ctx context.Context, after time.Time) (*domain.Availability, bool, error) {
	availability, ok, err := s.directory.NextAvailable(ctx, after)
	if err != nil {
		return nil, false, fmt.Errorf("FindNextAvailability: %w", err)
	}
	return availability, ok, nil
}
