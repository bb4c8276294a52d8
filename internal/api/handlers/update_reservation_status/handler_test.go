package update_reservation_status

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Mucamas-BookingService/internal/api/middleware"
	"github.com/m04kA/Mucamas-BookingService/internal/domain"
	"github.com/m04kA/Mucamas-BookingService/internal/infra/storage/memory"
	"github.com/m04kA/Mucamas-BookingService/internal/service/directory"
	"github.com/m04kA/Mucamas-BookingService/internal/service/ledger"
	finishReservation "github.com/m04kA/Mucamas-BookingService/internal/usecase/finish_reservation"
	"github.com/m04kA/Mucamas-BookingService/pkg/auth"
	"github.com/m04kA/Mucamas-BookingService/pkg/broker"
	"github.com/m04kA/Mucamas-BookingService/pkg/logger"
	"github.com/m04kA/Mucamas-BookingService/pkg/ptr"
)

type fixture struct {
	handler   *Handler
	ledger    *ledger.Service
	directory *directory.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.NewWithWriter(io.Discard, logger.LevelError)
	dir := directory.NewService(memory.NewCollaboratorStore(), log)
	led := ledger.NewService(memory.NewReservationStore(), broker.New(), log)
	return &fixture{
		handler:   NewHandler(finishReservation.NewUseCase(led, dir, memory.TxManager{}, log), log),
		ledger:    led,
		directory: dir,
	}
}

func (f *fixture) assigned(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	_, err := f.directory.Register(ctx, "c1")
	require.NoError(t, err)
	id := f.ledger.NewID()
	claimed, err := f.directory.TryClaim(ctx, "c1", id, nil)
	require.NoError(t, err)
	require.True(t, claimed)

	_, err = f.ledger.Create(ctx, &domain.ReservationDraft{
		ID:             id,
		ClientID:       "client-1",
		ServiceID:      "svc-1",
		Date:           "2024-03-01",
		StartTime:      "10:00",
		EndTime:        "12:00",
		CollaboratorID: ptr.Ptr("c1"),
	})
	require.NoError(t, err)
	return id
}

func (f *fixture) patch(t *testing.T, id, body, subject string, role domain.Role) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/reservations/"+id+"/status", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"reservationId": id})
	claims := &auth.Claims{Role: string(role)}
	claims.Subject = subject
	req = req.WithContext(middleware.WithClaims(req.Context(), claims))

	rec := httptest.NewRecorder()
	f.handler.Handle(rec, req)
	return rec
}

func TestHandler_ClientCancelReleasesCollaborator(t *testing.T) {
	f := newFixture(t)
	id := f.assigned(t)

	rec := f.patch(t, id, `{"status":"CANCELLED"}`, "client-1", domain.RoleClient)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp UpdateStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "CANCELLED", resp.Reservation.Status)
	assert.True(t, resp.CollaboratorReleased)

	status, err := f.directory.Get(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, status.IsAvailable)
}

func TestHandler_ErrorMapping(t *testing.T) {
	f := newFixture(t)
	id := f.assigned(t)

	// чужой клиент
	assert.Equal(t, http.StatusForbidden, f.patch(t, id, `{"status":"CANCELLED"}`, "client-2", domain.RoleClient).Code)

	// PENDING_PAYMENT -> IN_PROGRESS не разрешен
	assert.Equal(t, http.StatusConflict, f.patch(t, id, `{"status":"IN_PROGRESS"}`, "admin", domain.RoleAdmin).Code)

	assert.Equal(t, http.StatusBadRequest, f.patch(t, id, `{"status":"DONE"}`, "admin", domain.RoleAdmin).Code)
	assert.Equal(t, http.StatusBadRequest, f.patch(t, id, `{`, "admin", domain.RoleAdmin).Code)
	assert.Equal(t, http.StatusNotFound, f.patch(t, "missing", `{"status":"CANCELLED"}`, "admin", domain.RoleAdmin).Code)
}
