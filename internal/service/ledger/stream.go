package ledger

import (
	"context"

	"github.com/m04kA/Mucamas-BookingService/internal/domain"
	"github.com/m04kA/Mucamas-BookingService/pkg/broker"
)

// Subscription живая подписка на бронирования клиента.
// В C приходит полный снимок: сначала текущий, затем после каждого изменения.
// Снимки доставляются последовательно одной горутиной. Канал закрывается после Cancel
// или завершения контекста.
type Subscription struct {
	C <-chan []*domain.Reservation

	cancel context.CancelFunc
	done   chan struct{}
}

// Cancel останавливает подписку и ждет завершения доставки. Повторный вызов безопасен
func (s *Subscription) Cancel() {
	s.cancel()
	<-s.done
}

// StreamByClient подписывается на изменения бронирований клиента
func (s *Service) StreamByClient(ctx context.Context, clientID string) (*Subscription, error) {
	// Подписываемся до чтения снимка, чтобы не пропустить изменение между ними
	events := s.bus.Subscribe(clientID)

	initial, err := s.ListByClient(ctx, clientID)
	if err != nil {
		s.bus.Unsubscribe(clientID, events)
		return nil, err
	}

	streamCtx, cancel := context.WithCancel(ctx)
	out := make(chan []*domain.Reservation, 1)
	sub := &Subscription{
		C:      out,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	out <- initial

	go s.deliver(streamCtx, clientID, events, out, sub.done)

	s.logger.Info("StreamByClient: client=%s subscribed", clientID)
	return sub, nil
}

func (s *Service) deliver(ctx context.Context, clientID string, events chan broker.Event, out chan []*domain.Reservation, done chan struct{}) {
	defer close(done)
	defer close(out)
	defer s.bus.Unsubscribe(clientID, events)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("StreamByClient: client=%s unsubscribed", clientID)
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			drain(events)

			snapshot, err := s.ListByClient(ctx, clientID)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				s.logger.Warn("StreamByClient: snapshot for client=%s skipped: %v", clientID, err)
				continue
			}

			select {
			case out <- snapshot:
			case <-ctx.Done():
				return
			}
		}
	}
}

// drain схлопывает накопившиеся события: снимок после них один и тот же
func drain(events chan broker.Event) {
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}
