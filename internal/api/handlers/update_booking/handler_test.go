package update_booking

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TableBooking/internal/api/middleware"
	"github.com/m04kA/SMC-TableBooking/internal/domain"
	updateBooking "github.com/m04kA/SMC-TableBooking/internal/usecase/update_booking"
	"github.com/m04kA/SMC-TableBooking/pkg/logger"
	"github.com/m04kA/SMC-TableBooking/pkg/ptr"
	"github.com/m04kA/SMC-TableBooking/pkg/types"
)

type mockUseCase struct {
	err     error
	lastReq *updateBooking.Request
}

func (m *mockUseCase) Execute(ctx context.Context, req *updateBooking.Request) (*updateBooking.Response, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &updateBooking.Response{Booking: &domain.Booking{
		ID:         req.ID,
		UserID:     req.Actor.UserID,
		TableID:    3,
		GuestCount: 4,
		Start:      types.MustParseDateTime("2025-10-12T18:00:00"),
		End:        types.MustParseDateTime("2025-10-12T20:00:00"),
		Status:     domain.StatusBooked,
		TableName:  ptr.Ptr("Barbord"),
	}}, nil
}

var customer = domain.Actor{UserID: 7, Role: domain.RoleUser}

func serve(h *Handler, bookingID, body string, actor *domain.Actor) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/api/bookings/"+bookingID, strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"bookingId": bookingID})
	if actor != nil {
		req = req.WithContext(middleware.WithActor(req.Context(), *actor))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_PartialPayload(t *testing.T) {
	uc := &mockUseCase{}
	h := NewHandler(uc, logger.NewNop())

	rec := serve(h, "12", `{"guestCount":4}`, &customer)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":12,"userId":7,"tableId":3,"guestCount":4,"start":"2025-10-12T18:00:00",
		"endTime":"2025-10-12T20:00:00","status":"booked","note":"","tableName":"Barbord"}`, rec.Body.String())

	require.NotNil(t, uc.lastReq)
	assert.Equal(t, int64(12), uc.lastReq.ID)
	assert.Equal(t, customer, uc.lastReq.Actor)
	require.NotNil(t, uc.lastReq.GuestCount)
	assert.Equal(t, 4, *uc.lastReq.GuestCount)
	assert.Nil(t, uc.lastReq.TableID)
	assert.Nil(t, uc.lastReq.Start)
	assert.Nil(t, uc.lastReq.End)
	assert.Nil(t, uc.lastReq.Status)
}

func TestHandle_PassesTimesAndBlankStatus(t *testing.T) {
	uc := &mockUseCase{}
	h := NewHandler(uc, logger.NewNop())

	rec := serve(h, "12", `{"start":"2025-10-12T19:00","endTime":"2025-10-12T21:00:00","status":""}`, &customer)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.lastReq.Start)
	assert.Equal(t, "2025-10-12T19:00:00", uc.lastReq.Start.String())
	require.NotNil(t, uc.lastReq.Status)
	assert.Equal(t, "", *uc.lastReq.Status)
}

func TestHandle_RequestErrors(t *testing.T) {
	tests := []struct {
		name       string
		bookingID  string
		body       string
		actor      *domain.Actor
		wantStatus int
	}{
		{name: "bad id", bookingID: "x1", body: `{}`, actor: &customer, wantStatus: http.StatusBadRequest},
		{name: "no actor", bookingID: "12", body: `{}`, wantStatus: http.StatusUnauthorized},
		{name: "bad json", bookingID: "12", body: `{"guestCount":`, actor: &customer, wantStatus: http.StatusBadRequest},
		{name: "unknown field", bookingID: "12", body: `{"seats":2}`, actor: &customer, wantStatus: http.StatusBadRequest},
		{name: "bad start", bookingID: "12", body: `{"start":"tonight"}`, actor: &customer, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			h := NewHandler(uc, logger.NewNop())

			rec := serve(h, tt.bookingID, tt.body, tt.actor)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Nil(t, uc.lastReq)
		})
	}
}

func TestHandle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", updateBooking.ErrBookingNotFound, http.StatusNotFound},
		{"foreign booking", updateBooking.ErrAccessDenied, http.StatusForbidden},
		{"invalid input", updateBooking.ErrInvalidInput, http.StatusBadRequest},
		{"invalid range", updateBooking.ErrInvalidTimeRange, http.StatusBadRequest},
		{"table not found", updateBooking.ErrTableNotFound, http.StatusNotFound},
		{"capacity", updateBooking.ErrGuestCountExceedsCapacity, http.StatusBadRequest},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&mockUseCase{err: tt.err}, logger.NewNop())

			rec := serve(h, "12", `{"guestCount":3}`, &customer)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
