package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/starfederation/datastar-go/datastar"
)

// ErrStreamingUnsupported writer не поддерживает потоковую отдачу
var ErrStreamingUnsupported = errors.New("streaming unsupported")

const eventPing = "ping"

// NewSSE открывает поток text/event-stream. Дедлайн записи сервера снимается:
// поток живет, пока клиент не отключится.
func NewSSE(w http.ResponseWriter, r *http.Request) (*datastar.ServerSentEventGenerator, error) {
	// datastar паникует, если writer не умеет Flush
	if !canFlush(w) {
		return nil, ErrStreamingUnsupported
	}

	// ошибка означает, что writer не поддерживает дедлайны, поток работает и без этого
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	w.Header().Set("X-Accel-Buffering", "no")
	return datastar.NewSSE(w, r), nil
}

// SendJSON пишет событие event с JSON данными в одной строке data
func SendJSON(sse *datastar.ServerSentEventGenerator, event string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return sse.Send(datastar.EventType(event), []string{string(payload)})
}

// Ping пишет пустое событие, чтобы прокси не закрывали простаивающее соединение
func Ping(sse *datastar.ServerSentEventGenerator) error {
	return sse.Send(datastar.EventType(eventPing), []string{"{}"})
}

// canFlush ищет http.Flusher по цепочке Unwrap, как это делает http.ResponseController
func canFlush(w http.ResponseWriter) bool {
	for {
		if _, ok := w.(http.Flusher); ok {
			return true
		}
		u, ok := w.(interface{ Unwrap() http.ResponseWriter })
		if !ok {
			return false
		}
		w = u.Unwrap()
	}
}
