package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/Mucamas-BookingService/pkg/broker"
)

const (
	// DefaultChannel канал, в который триггер reservations пишет client_id
	DefaultChannel = "reservation_changes"

	// EventType тип события, под которым изменения из базы попадают в шину
	EventType = "reservation.changed"

	minReconnectInterval = time.Second
	maxReconnectInterval = time.Minute
	pingInterval         = 90 * time.Second
)

// Listener пересылает NOTIFY из PostgreSQL в шину событий.
// Так подписчики узнают и об изменениях, сделанных другими экземплярами сервиса.
type Listener struct {
	listener *pq.Listener
	channel  string
	bus      EventPublisher
	logger   Logger
}

// NewListener создает слушателя канала. Соединение открывается в Run
func NewListener(dsn, channel string, bus EventPublisher, logger Logger) *Listener {
	if channel == "" {
		channel = DefaultChannel
	}

	l := &Listener{
		channel: channel,
		bus:     bus,
		logger:  logger,
	}
	l.listener = pq.NewListener(dsn, minReconnectInterval, maxReconnectInterval, l.onEvent)
	return l
}

// Run подписывается на канал и пересылает уведомления до отмены контекста
func (l *Listener) Run(ctx context.Context) error {
	if err := l.listener.Listen(l.channel); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrListen, l.channel, err)
	}
	l.logger.Info("Listener: listening channel %s", l.channel)

	l.consume(ctx, l.listener.Notify, pingInterval)
	return nil
}

// Close закрывает соединение слушателя
func (l *Listener) Close() error {
	return l.listener.Close()
}

func (l *Listener) consume(ctx context.Context, notifications <-chan *pq.Notification, ping time.Duration) {
	ticker := time.NewTicker(ping)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Listener: stopped")
			return
		case n, ok := <-notifications:
			if !ok {
				return
			}
			l.handle(n)
		case <-ticker.C:
			if l.listener == nil {
				continue
			}
			go func() {
				if err := l.listener.Ping(); err != nil {
					l.logger.Warn("Listener: ping failed: %v", err)
				}
			}()
		}
	}
}

func (l *Listener) handle(n *pq.Notification) {
	// nil приходит после переподключения: уведомления за время разрыва потеряны
	if n == nil {
		l.logger.Warn("Listener: connection re-established, notifications may have been missed")
		return
	}

	clientID := strings.TrimSpace(n.Extra)
	if clientID == "" {
		l.logger.Warn("Listener: empty payload on channel %s", n.Channel)
		return
	}
	l.bus.Publish(broker.NewEvent(EventType, clientID))
}

func (l *Listener) onEvent(ev pq.ListenerEventType, err error) {
	switch ev {
	case pq.ListenerEventConnectionAttemptFailed:
		l.logger.Error("Listener: connection attempt failed: %v", err)
	case pq.ListenerEventDisconnected:
		l.logger.Warn("Listener: disconnected: %v", err)
	case pq.ListenerEventReconnected:
		l.logger.Info("Listener: reconnected")
	}
}
