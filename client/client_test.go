// File: /client/client_test.go
package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventhub-api/models"
	"eventhub-api/utils"
)

func TestCreateBookingMapsConflictKinds(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		message string
		kind    error
	}{
		{"already booked", http.StatusConflict, "You have already booked this event", ErrAlreadyBooked},
		{"event full", http.StatusConflict, "Only 2 spots available", ErrEventFull},
		{"unauthenticated", http.StatusUnauthorized, "Authentication required", ErrUnauthenticated},
		{"not found", http.StatusNotFound, "Event not found", ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeError(w, tt.status, tt.message)
			}))
			defer srv.Close()

			api := New(srv.URL)
			_, err := api.CreateBooking(context.Background(), "event-1", 1, "")

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.message, apiErr.Message)
		})
	}
}

func TestValidateCouponMapsBadRequestToInvalidCoupon(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusBadRequest, "Invalid or expired coupon code")
	}))
	defer srv.Close()

	api := New(srv.URL)
	_, err := api.ValidateCoupon(context.Background(), "NOPE", "event-1", 1)

	assert.ErrorIs(t, err, ErrInvalidCoupon)
}

func TestRequestsCarryBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeData(w, http.StatusOK, models.Event{ID: "event-1"})
	}))
	defer srv.Close()

	api := New(srv.URL)
	api.Token = "token-123"
	_, err := api.GetEvent(context.Background(), "event-1")

	require.NoError(t, err)
	assert.Equal(t, "Bearer token-123", gotAuth)
}

func TestGetEventDecodesDataEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeData(w, http.StatusOK, models.Event{
			ID:              "event-1",
			Name:            "Jazz Night",
			JoiningFee:      500,
			MaxParticipants: 40,
			BookedCount:     38,
		})
	}))
	defer srv.Close()

	api := New(srv.URL)
	event, err := api.GetEvent(context.Background(), "event-1")

	require.NoError(t, err)
	assert.Equal(t, "Jazz Night", event.Name)
	assert.Equal(t, 2, event.SpotsLeft())
}

func TestMyBookingsDecodesPagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(utils.PaginatedResponse{
			Data: []models.Booking{
				{ID: "b1", Status: models.BookingStatusConfirmed},
				{ID: "b2", Status: models.BookingStatusPending},
			},
			Pagination: utils.Pagination{Page: 1, Limit: 10, Total: 2, TotalPages: 1},
		})
	}))
	defer srv.Close()

	api := New(srv.URL)
	page, err := api.MyBookings(context.Background(), 1, 10)

	require.NoError(t, err)
	assert.Len(t, page.Bookings, 2)
	assert.Equal(t, int64(2), page.Pagination.Total)
	assert.Equal(t, 1, page.Pagination.TotalPages)
}

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeData(w, http.StatusOK, authResponse{
			Token: "fresh-token",
			User:  models.User{ID: "u1", Email: "user@eventhub.com"},
		})
	}))
	defer srv.Close()

	api := New(srv.URL)
	user, err := api.Login(context.Background(), "user@eventhub.com", "Password1!")

	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "fresh-token", api.Token)
}
