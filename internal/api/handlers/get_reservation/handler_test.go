package get_reservation

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Mucamas-BookingService/internal/api/handlers"
	"github.com/m04kA/Mucamas-BookingService/internal/api/middleware"
	"github.com/m04kA/Mucamas-BookingService/internal/domain"
	"github.com/m04kA/Mucamas-BookingService/internal/service/ledger"
	"github.com/m04kA/Mucamas-BookingService/pkg/auth"
	"github.com/m04kA/Mucamas-BookingService/pkg/logger"
	"github.com/m04kA/Mucamas-BookingService/pkg/ptr"
)

type fakeLedger map[string]*domain.Reservation

func (f fakeLedger) Get(_ context.Context, id string) (*domain.Reservation, error) {
	res, ok := f[id]
	if !ok {
		return nil, ledger.ErrReservationNotFound
	}
	return res, nil
}

func claimsFor(subject string, role domain.Role) *auth.Claims {
	c := &auth.Claims{Role: string(role)}
	c.Subject = subject
	return c
}

func get(t *testing.T, id string, claims *auth.Claims) *httptest.ResponseRecorder {
	t.Helper()
	led := fakeLedger{
		"r-1": {
			ID:             "r-1",
			ClientID:       "client-1",
			CollaboratorID: ptr.Ptr("c1"),
			Date:           "2024-03-01",
			StartTime:      "10:00",
			EndTime:        "12:00",
			Status:         domain.StatusConfirmed,
		},
	}
	h := NewHandler(led, logger.NewWithWriter(io.Discard, logger.LevelError))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reservations/"+id, nil)
	req = mux.SetURLVars(req, map[string]string{"reservationId": id})
	req = req.WithContext(middleware.WithClaims(req.Context(), claims))

	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_AccessRules(t *testing.T) {
	tests := []struct {
		name   string
		claims *auth.Claims
		status int
	}{
		{"owner client", claimsFor("client-1", domain.RoleClient), http.StatusOK},
		{"other client", claimsFor("client-2", domain.RoleClient), http.StatusForbidden},
		{"assigned collaborator", claimsFor("c1", domain.RoleCollaborator), http.StatusOK},
		{"other collaborator", claimsFor("c2", domain.RoleCollaborator), http.StatusForbidden},
		{"admin", claimsFor("admin-1", domain.RoleAdmin), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, get(t, "r-1", tt.claims).Code)
		})
	}
}

func TestHandler_ReturnsReservation(t *testing.T) {
	rec := get(t, "r-1", claimsFor("client-1", domain.RoleClient))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handlers.ReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "r-1", resp.ID)
	assert.Equal(t, "CONFIRMED", resp.Status)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "c1", ptr.Value(resp.CollaboratorID))
}

func TestHandler_NotFound(t *testing.T) {
	rec := get(t, "missing", claimsFor("admin-1", domain.RoleAdmin))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
