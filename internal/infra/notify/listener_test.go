package notify

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Mucamas-BookingService/pkg/broker"
	"github.com/m04kA/Mucamas-BookingService/pkg/logger"
)

type recordingBus struct {
	mu     sync.Mutex
	events []broker.Event
}

func (b *recordingBus) Publish(event broker.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBus) keys() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	keys := make([]string, 0, len(b.events))
	for _, e := range b.events {
		keys = append(keys, e.Key)
	}
	return keys
}

func TestListener_ForwardsPayloadAsClientEvent(t *testing.T) {
	bus := &recordingBus{}
	l := &Listener{channel: DefaultChannel, bus: bus, logger: logger.NewWithWriter(io.Discard, logger.LevelError)}

	notifications := make(chan *pq.Notification, 4)
	notifications <- &pq.Notification{Channel: DefaultChannel, Extra: "client-1"}
	notifications <- nil
	notifications <- &pq.Notification{Channel: DefaultChannel, Extra: "  "}
	notifications <- &pq.Notification{Channel: DefaultChannel, Extra: "client-2\n"}
	close(notifications)

	l.consume(context.Background(), notifications, time.Hour)

	assert.Equal(t, []string{"client-1", "client-2"}, bus.keys())
	bus.mu.Lock()
	assert.Equal(t, EventType, bus.events[0].Type)
	bus.mu.Unlock()
}

func TestListener_StopsOnContextCancel(t *testing.T) {
	l := &Listener{channel: DefaultChannel, bus: &recordingBus{}, logger: logger.NewWithWriter(io.Discard, logger.LevelError)}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		l.consume(ctx, make(chan *pq.Notification), time.Hour)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		require.FailNow(t, "consume did not stop")
	}
}

func TestListener_BrokerSubscribersReceiveNotifications(t *testing.T) {
	bus := broker.New()
	l := &Listener{channel: DefaultChannel, bus: bus, logger: logger.NewWithWriter(io.Discard, logger.LevelError)}

	ch := bus.Subscribe("client-1")
	defer bus.Unsubscribe("client-1", ch)

	l.handle(&pq.Notification{Channel: DefaultChannel, Extra: "client-1"})

	select {
	case ev := <-ch:
		assert.Equal(t, "client-1", ev.Key)
	case <-time.After(time.Second):
		require.FailNow(t, "event not delivered")
	}
}
