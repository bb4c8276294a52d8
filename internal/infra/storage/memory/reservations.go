package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/Mucamas-BookingService/internal/domain"
	reservationRepo "github.com/m04kA/Mucamas-BookingService/internal/infra/storage/reservation"
)

// ReservationStore хранилище бронирований в памяти.
// Условные обновления выполняются под мьютексом и возвращают те же ошибки, что и reservation.Repository.
type ReservationStore struct {
	mu    sync.Mutex
	items map[string]*domain.Reservation
	now   func() time.Time
}

// NewReservationStore создает пустое хранилище
func NewReservationStore() *ReservationStore {
	return &ReservationStore{
		items: make(map[string]*domain.Reservation),
		now:   time.Now,
	}
}

func (s *ReservationStore) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[res.ID]; ok {
		return nil, reservationRepo.ErrDuplicateID
	}

	now := s.now()
	res.CreatedAt = now
	res.UpdatedAt = now
	s.items[res.ID] = clone(res)
	return res, nil
}

func (s *ReservationStore) GetByID(_ context.Context, id string) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.items[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return clone(res), nil
}

func (s *ReservationStore) GetByClientID(_ context.Context, clientID string) ([]*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*domain.Reservation, 0)
	for _, res := range s.items {
		if res.ClientID == clientID {
			result = append(result, clone(res))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (s *ReservationStore) GetAssignedByDate(_ context.Context, date string, statuses []domain.ReservationStatus) ([]*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wanted := make(map[domain.ReservationStatus]struct{}, len(statuses))
	for _, st := range statuses {
		wanted[st] = struct{}{}
	}

	result := make([]*domain.Reservation, 0)
	for _, res := range s.items {
		if res.Date != date || res.CollaboratorID == nil {
			continue
		}
		if _, ok := wanted[res.Status]; !ok {
			continue
		}
		result = append(result, clone(res))
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].StartTime != result[j].StartTime {
			return result[i].StartTime < result[j].StartTime
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (s *ReservationStore) BindCollaborator(_ context.Context, id, collaboratorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.items[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	if res.Status != domain.StatusPendingAssignment {
		return reservationRepo.ErrStatusMismatch
	}

	cid := collaboratorID
	res.CollaboratorID = &cid
	res.Status = domain.StatusPendingPayment
	res.UpdatedAt = s.now()
	return nil
}

func (s *ReservationStore) UpdateStatus(_ context.Context, id string, from, to domain.ReservationStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.items[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	if res.Status != from {
		return reservationRepo.ErrStatusMismatch
	}

	res.Status = to
	res.UpdatedAt = s.now()
	return nil
}

// Len количество сохраненных бронирований
func (s *ReservationStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func clone(res *domain.Reservation) *domain.Reservation {
	cp := *res
	if res.CollaboratorID != nil {
		cid := *res.CollaboratorID
		cp.CollaboratorID = &cid
	}
	return &cp
}
