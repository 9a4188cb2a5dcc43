package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OmarShama/eventorove-booking/internal/api/middleware"
	createBooking "github.com/OmarShama/eventorove-booking/internal/usecase/create_booking"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeUseCase struct {
	resp *createBooking.Response
	err  error

	gotReq *createBooking.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func newRouter(useCase CreateBookingUseCase) *mux.Router {
	handler := NewHandler(useCase, nopLogger{})
	r := mux.NewRouter()
	protected := r.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.Auth)
	protected.HandleFunc("/bookings", handler.Handle).Methods(http.MethodPost)
	return r
}

func doRequest(t *testing.T, router *mux.Router, body string, userID string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(middleware.HeaderUserID, userID)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const validBody = `{
	"venueId": 1,
	"startsAt": "2026-09-07T10:00:00Z",
	"durationMinutes": 60,
	"guestCount": 4
}`

func TestHandler_Created(t *testing.T) {
	starts := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)
	useCase := &fakeUseCase{
		resp: &createBooking.Response{
			ID:              42,
			UserID:          2,
			VenueID:         1,
			StartsAt:        starts,
			EndsAt:          starts.Add(time.Hour),
			DurationMinutes: 60,
			GuestCount:      4,
			TotalPrice:      100,
			Status:          "confirmed",
			VenueName:       "Loft on Main",
			CreatedAt:       starts,
			UpdatedAt:       starts,
		},
	}

	rec := doRequest(t, newRouter(useCase), validBody, "2")

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, useCase.gotReq)
	assert.Equal(t, int64(2), useCase.gotReq.UserID)
	assert.Equal(t, starts, useCase.gotReq.StartsAt)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "2026-09-07T10:00:00Z", resp.StartsAt)
	assert.Equal(t, "2026-09-07T11:00:00Z", resp.EndsAt)
	assert.InDelta(t, 100.0, resp.TotalPrice, 0.001)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestHandler_Auth(t *testing.T) {
	useCase := &fakeUseCase{}

	t.Run("missing user header", func(t *testing.T) {
		rec := doRequest(t, newRouter(useCase), validBody, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("non-numeric user header", func(t *testing.T) {
		rec := doRequest(t, newRouter(useCase), validBody, "abc")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	assert.Nil(t, useCase.gotReq)
}

func TestHandler_BadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"venueId": `},
		{name: "unknown field", body: `{"venueId": 1, "startsAt": "2026-09-07T10:00:00Z", "durationMinutes": 60, "guestCount": 4, "extra": true}`},
		{name: "missing venue id", body: `{"startsAt": "2026-09-07T10:00:00Z", "durationMinutes": 60, "guestCount": 4}`},
		{name: "zero duration", body: `{"venueId": 1, "startsAt": "2026-09-07T10:00:00Z", "durationMinutes": 0, "guestCount": 4}`},
		{name: "bad timestamp", body: `{"venueId": 1, "startsAt": "tomorrow", "durationMinutes": 60, "guestCount": 4}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useCase := &fakeUseCase{}
			rec := doRequest(t, newRouter(useCase), tt.body, "2")

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, useCase.gotReq)
		})
	}
}

func TestHandler_UseCaseErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
	}{
		{
			name:       "slot unavailable carries resolver reason",
			err:        fmt.Errorf("%w: conflicts with an existing booking", createBooking.ErrSlotUnavailable),
			wantStatus: http.StatusConflict,
			wantReason: "conflicts with an existing booking",
		},
		{
			name:       "venue not found",
			err:        createBooking.ErrVenueNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "venue not bookable",
			err:        createBooking.ErrVenueNotBookable,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "duration too short",
			err:        createBooking.ErrDurationTooShort,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "capacity exceeded",
			err:        createBooking.ErrCapacityExceeded,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "admission race",
			err:        createBooking.ErrAdmissionRace,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "unexpected error",
			err:        fmt.Errorf("%w: boom", createBooking.ErrInternal),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, newRouter(&fakeUseCase{err: tt.err}), validBody, "2")

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantReason != "" {
				var resp struct {
					Error string `json:"error"`
				}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, tt.wantReason, resp.Error)
			}
		})
	}
}
