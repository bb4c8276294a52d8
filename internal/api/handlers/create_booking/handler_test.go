package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Mucamas-BookingService/internal/api/middleware"
	"github.com/m04kA/Mucamas-BookingService/internal/domain"
	bookService "github.com/m04kA/Mucamas-BookingService/internal/usecase/book_service"
	"github.com/m04kA/Mucamas-BookingService/pkg/auth"
	"github.com/m04kA/Mucamas-BookingService/pkg/logger"
)

type fakeUseCase struct {
	got     *bookService.Request
	outcome *bookService.Outcome
	err     error
}

func (f *fakeUseCase) Execute(_ context.Context, req *bookService.Request) (*bookService.Outcome, error) {
	f.got = req
	return f.outcome, f.err
}

const validBody = `{
	"serviceName": "Deep cleaning",
	"date": "2024-03-01",
	"startTime": "10:00",
	"address": {"city": "Bogota", "street": "Cra 7 #45"},
	"paymentMethod": "CARD"
}`

func serve(t *testing.T, uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(uc, logger.NewWithWriter(io.Discard, logger.LevelError))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	claims := &auth.Claims{IDNumber: "CC-100", Role: string(domain.RoleClient)}
	claims.Subject = "client-1"
	req = req.WithContext(middleware.WithClaims(req.Context(), claims))

	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_AssignedBooking(t *testing.T) {
	uc := &fakeUseCase{outcome: &bookService.Outcome{
		Kind:          bookService.OutcomeAssigned,
		ReservationID: "r-1",
		Reservation: &domain.Reservation{
			ID:       "r-1",
			ClientID: "client-1",
			Status:   domain.StatusPendingPayment,
		},
		ClaimAttempts: 1,
	}}

	rec := serve(t, uc, validBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, uc.got)
	assert.Equal(t, "CC-100", uc.got.ClientIDNumber)
	assert.Equal(t, "10:00", uc.got.StartTime.String())
	assert.True(t, uc.got.EndTime.IsZero())
	assert.Equal(t, "Bogota", uc.got.Address.City)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "assigned", resp.Outcome)
	assert.Equal(t, "r-1", resp.ReservationID)
	require.NotNil(t, resp.Reservation)
	assert.Equal(t, "PENDING_PAYMENT", resp.Reservation.Status)
	assert.Nil(t, resp.Suggestion)
}

func TestHandler_SuggestedBookingIsNotCreated(t *testing.T) {
	uc := &fakeUseCase{outcome: &bookService.Outcome{
		Kind: bookService.OutcomeSuggested,
		Suggestion: &domain.Availability{
			CollaboratorID:       "c1",
			EstimatedAvailableAt: time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC),
		},
		ClaimAttempts: 1,
	}}

	rec := serve(t, uc, validBody)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "suggested", resp.Outcome)
	assert.Empty(t, resp.ReservationID)
	require.NotNil(t, resp.Suggestion)
	assert.Equal(t, "c1", resp.Suggestion.CollaboratorID)
	assert.Equal(t, "2024-03-01T14:00:00Z", resp.Suggestion.EstimatedAvailableAt)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: date", bookService.ErrInvalidInput), http.StatusBadRequest},
		{bookService.ErrInvalidDate, http.StatusBadRequest},
		{bookService.ErrWindowStarted, http.StatusBadRequest},
		{bookService.ErrClientNotFound, http.StatusNotFound},
		{bookService.ErrNotClient, http.StatusForbidden},
		{bookService.ErrServiceNotFound, http.StatusNotFound},
		{bookService.ErrServiceInactive, http.StatusBadRequest},
		{fmt.Errorf("%w: persist: boom", bookService.ErrBookingFailed), http.StatusServiceUnavailable},
		{fmt.Errorf("%w: boom", bookService.ErrInternal), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := serve(t, &fakeUseCase{err: tt.err}, validBody)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandler_BadRequests(t *testing.T) {
	uc := &fakeUseCase{}

	rec := serve(t, uc, `{"serviceName":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, uc, `{"serviceName":"x","unknown":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, uc, `{"serviceName":"x","date":"2024-03-01","startTime":"25:00"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Nil(t, uc.got)
}

func TestHandler_RequiresClaims(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, logger.NewWithWriter(io.Discard, logger.LevelError))
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(validBody)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
