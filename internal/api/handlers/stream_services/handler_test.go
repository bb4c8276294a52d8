package stream_services

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Mucamas-BookingService/internal/api/handlers"
	"github.com/m04kA/Mucamas-BookingService/internal/domain"
	"github.com/m04kA/Mucamas-BookingService/pkg/logger"
)

// fakeWatcher отдает снимки, которые тест кладет в updates
type fakeWatcher struct {
	updates  chan []domain.ServiceDescriptor
	interval chan time.Duration
}

func newFakeWatcher() *fakeWatcher {
	return &fakeWatcher{
		updates:  make(chan []domain.ServiceDescriptor, 2),
		interval: make(chan time.Duration, 1),
	}
}

func (f *fakeWatcher) WatchActiveServices(_ context.Context, interval time.Duration) <-chan []domain.ServiceDescriptor {
	f.interval <- interval
	return f.updates
}

func nextEvent(t *testing.T, reader *bufio.Reader) (string, []handlers.ServiceResponse) {
	t.Helper()
	var event, data string
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")

		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		case line == "" && event == "ping":
			event, data = "", ""
		case line == "" && data != "":
			var list []handlers.ServiceResponse
			require.NoError(t, json.Unmarshal([]byte(data), &list))
			return event, list
		}
	}
}

func TestHandler_StreamsCatalogSnapshots(t *testing.T) {
	watcher := newFakeWatcher()
	h := NewHandler(watcher, 30*time.Second, logger.NewWithWriter(io.Discard, logger.LevelError))

	srv := httptest.NewServer(http.HandlerFunc(h.Handle))
	t.Cleanup(srv.Close)

	watcher.updates <- []domain.ServiceDescriptor{
		{ID: "svc-1", Name: "Limpieza", Price: 80, DurationMinutes: 120, Active: true},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/services/stream", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	assert.Equal(t, 30*time.Second, <-watcher.interval)

	reader := bufio.NewReader(resp.Body)

	event, list := nextEvent(t, reader)
	assert.Equal(t, eventServices, event)
	require.Len(t, list, 1)
	assert.Equal(t, "Limpieza", list[0].Name)

	watcher.updates <- []domain.ServiceDescriptor{}
	_, list = nextEvent(t, reader)
	assert.Empty(t, list)

	// закрытие последовательности завершает поток
	close(watcher.updates)
	_, err = io.ReadAll(reader)
	assert.NoError(t, err)
}

func TestHandler_RejectsWriterWithoutFlush(t *testing.T) {
	watcher := newFakeWatcher()
	h := NewHandler(watcher, time.Second, logger.NewWithWriter(io.Discard, logger.LevelError))

	rec := &plainWriter{header: http.Header{}}
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/services/stream", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.status)
}

// plainWriter ResponseWriter без поддержки Flush
type plainWriter struct {
	header http.Header
	status int
}

func (w *plainWriter) Header() http.Header         { return w.header }
func (w *plainWriter) Write(b []byte) (int, error) { return len(b), nil }
func (w *plainWriter) WriteHeader(status int)      { w.status = status }
