package broker

import (
	"sync"
	"time"
)

// Event сигнал об изменении данных по ключу (например, client_id)
type Event struct {
	Type      string `json:"type"`
	Key       string `json:"key"`
	Timestamp int64  `json:"timestamp"`
}

// NewEvent создает событие с текущей меткой времени
func NewEvent(eventType, key string) Event {
	return Event{Type: eventType, Key: key, Timestamp: time.Now().UnixMilli()}
}

// Broker раздает события подписчикам, сгруппированным по ключу.
// Публикация не блокируется: если буфер подписчика заполнен, событие для него
// пропускается. Подписчик получает только сигнал "что-то изменилось" и сам
// перечитывает актуальный снимок, поэтому пропуск не теряет данные.
type Broker struct {
	subscribers map[string]map[chan Event]struct{}
	bufferSize  int
	mutex       sync.RWMutex
}

// DefaultBufferSize размер буфера канала подписчика
const DefaultBufferSize = 16

// New создает брокер
func New() *Broker {
	return NewWithBuffer(DefaultBufferSize)
}

// NewWithBuffer создает брокер с заданным размером буфера подписчика
func NewWithBuffer(size int) *Broker {
	if size <= 0 {
		size = 1
	}
	return &Broker{
		subscribers: make(map[string]map[chan Event]struct{}),
		bufferSize:  size,
	}
}

// Subscribe регистрирует подписчика на ключ
func (b *Broker) Subscribe(key string) chan Event {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	ch := make(chan Event, b.bufferSize)
	if _, ok := b.subscribers[key]; !ok {
		b.subscribers[key] = make(map[chan Event]struct{})
	}
	b.subscribers[key][ch] = struct{}{}
	return ch
}

// Unsubscribe удаляет подписчика и закрывает его канал. Повторный вызов безопасен
func (b *Broker) Unsubscribe(key string, ch chan Event) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	clients, ok := b.subscribers[key]
	if !ok {
		return
	}
	if _, ok := clients[ch]; !ok {
		return
	}
	delete(clients, ch)
	close(ch)
	if len(clients) == 0 {
		delete(b.subscribers, key)
	}
}

// Publish отправляет событие всем подписчикам ключа
func (b *Broker) Publish(event Event) {
	b.mutex.RLock()
	defer b.mutex.RUnlock()

	for ch := range b.subscribers[event.Key] {
		select {
		case ch <- event:
		default:
			// Подписчик не успевает, снимок он всё равно перечитает на следующем событии
		}
	}
}

// SubscriberCount количество подписчиков на ключ
func (b *Broker) SubscriberCount(key string) int {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	return len(b.subscribers[key])
}
