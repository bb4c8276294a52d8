package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/Mucamas-BookingService/internal/domain"
	collaboratorRepo "github.com/m04kA/Mucamas-BookingService/internal/infra/storage/collaborator"
)

// CollaboratorStore хранилище состояний исполнителей в памяти.
// Повторяет семантику collaborator.Repository, включая условный TryClaim.
type CollaboratorStore struct {
	mu    sync.Mutex
	items map[string]*domain.CollaboratorStatus
	now   func() time.Time
}

// NewCollaboratorStore создает пустое хранилище
func NewCollaboratorStore() *CollaboratorStore {
	return &CollaboratorStore{
		items: make(map[string]*domain.CollaboratorStatus),
		now:   time.Now,
	}
}

// Put записывает состояние как есть (для подготовки данных в тестах)
func (s *CollaboratorStore) Put(status domain.CollaboratorStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := status
	s.items[status.CollaboratorID] = &cp
}

func (s *CollaboratorStore) Upsert(_ context.Context, collaboratorID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[collaboratorID]; ok {
		return false, nil
	}
	s.items[collaboratorID] = &domain.CollaboratorStatus{
		CollaboratorID: collaboratorID,
		IsAvailable:    true,
		LastUpdatedAt:  s.now(),
	}
	return true, nil
}

func (s *CollaboratorStore) GetByID(_ context.Context, collaboratorID string) (*domain.CollaboratorStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status, ok := s.items[collaboratorID]
	if !ok {
		return nil, collaboratorRepo.ErrCollaboratorNotFound
	}
	cp := *status
	return &cp, nil
}

func (s *CollaboratorStore) ListAvailableIDs(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0)
	for id, status := range s.items {
		if status.IsAvailable {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *CollaboratorStore) TryClaim(_ context.Context, collaboratorID, reservationID string, availableAt *time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status, ok := s.items[collaboratorID]
	if !ok || !status.IsAvailable {
		return false, nil
	}

	rid := reservationID
	status.IsAvailable = false
	status.CurrentReservationID = &rid
	status.AvailableAt = nil
	if availableAt != nil {
		at := *availableAt
		status.AvailableAt = &at
	}
	status.LastUpdatedAt = s.now()
	return true, nil
}

func (s *CollaboratorStore) Release(_ context.Context, collaboratorID string, freedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	status, ok := s.items[collaboratorID]
	if !ok {
		return collaboratorRepo.ErrCollaboratorNotFound
	}
	s.release(status, freedAt)
	return nil
}

func (s *CollaboratorStore) ReleaseReservation(_ context.Context, collaboratorID, reservationID string, freedAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status, ok := s.items[collaboratorID]
	if !ok || status.CurrentReservationID == nil || *status.CurrentReservationID != reservationID {
		return false, nil
	}
	s.release(status, freedAt)
	return true, nil
}

func (s *CollaboratorStore) release(status *domain.CollaboratorStatus, freedAt time.Time) {
	at := freedAt
	status.IsAvailable = true
	status.CurrentReservationID = nil
	status.AvailableAt = &at
	status.LastUpdatedAt = s.now()
}

func (s *CollaboratorStore) NextAvailable(_ context.Context, after time.Time) (*domain.Availability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var best *domain.Availability
	for id, status := range s.items {
		if status.IsAvailable || status.AvailableAt == nil || !status.AvailableAt.After(after) {
			continue
		}
		at := *status.AvailableAt
		if best == nil ||
			at.Before(best.EstimatedAvailableAt) ||
			(at.Equal(best.EstimatedAvailableAt) && id < best.CollaboratorID) {
			best = &domain.Availability{CollaboratorID: id, EstimatedAvailableAt: at}
		}
	}

	if best == nil {
		return nil, collaboratorRepo.ErrNoFutureAvailability
	}
	return best, nil
}
