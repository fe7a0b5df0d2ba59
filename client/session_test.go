// File: /client/session_test.go
package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventhub-api/models"
	"eventhub-api/utils"
)

// fakeBackend is a minimal EventHub API used by session tests. It counts
// requests so idempotency guarantees can be asserted.
type fakeBackend struct {
	mu                sync.Mutex
	createIntentCalls int
	confirmCalls      int
	couponCalls       int
	bookingCalls      int

	demoIntents bool
	alreadyPaid bool
	freeEvent   bool
	intentSeq   int

	// one intent per booking: repeat creates return the same intent
	currentIntentID     string
	currentIntentSecret string
}

func (f *fakeBackend) server(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/coupons/validate", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.couponCalls++
		f.mu.Unlock()

		var req struct {
			Code     string `json:"code"`
			EventID  string `json:"event_id"`
			Quantity int    `json:"quantity"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)

		if req.Code != "SAVE10" {
			writeError(w, http.StatusBadRequest, "Invalid or expired coupon code")
			return
		}

		subtotal := 500 * float64(req.Quantity)
		writeData(w, http.StatusOK, models.CouponValidationResult{
			Coupon:      models.CouponInfo{Code: "SAVE10", Type: models.CouponTypeFixed, Discount: 100},
			Subtotal:    subtotal,
			Discount:    100,
			FinalAmount: subtotal - 100,
		})
	})

	mux.HandleFunc("/api/v1/bookings/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.bookingCalls++
		free := f.freeEvent
		f.mu.Unlock()

		if free {
			writeData(w, http.StatusCreated, models.CreateBookingResult{
				BookingID:       "booking-1",
				Status:          models.BookingStatusConfirmed,
				Amount:          0,
				RequiresPayment: false,
			})
			return
		}

		writeData(w, http.StatusCreated, models.CreateBookingResult{
			BookingID:       "booking-1",
			Status:          models.BookingStatusPending,
			Amount:          900,
			RequiresPayment: true,
		})
	})

	mux.HandleFunc("/api/v1/payments/create-intent", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.createIntentCalls++

		if f.alreadyPaid {
			writeError(w, http.StatusConflict, "Booking has already been paid")
			return
		}

		// A pending intent already exists: hand it back instead of
		// minting a duplicate
		if f.currentIntentID != "" {
			writeData(w, http.StatusOK, models.PaymentIntentResult{
				ID:           f.currentIntentID,
				ClientSecret: f.currentIntentSecret,
				Amount:       900,
			})
			return
		}

		f.intentSeq++
		if f.demoIntents {
			f.currentIntentID = "demo_intent_" + itoa(f.intentSeq)
		} else {
			f.currentIntentID = "pi_intent_" + itoa(f.intentSeq)
			f.currentIntentSecret = "secret_" + itoa(f.intentSeq)
		}
		writeData(w, http.StatusCreated, models.PaymentIntentResult{
			ID:           f.currentIntentID,
			ClientSecret: f.currentIntentSecret,
			Amount:       900,
		})
	})

	mux.HandleFunc("/api/v1/payments/confirm", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.confirmCalls++
		f.mu.Unlock()

		var req struct {
			PaymentIntentID string `json:"payment_intent_id"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.PaymentIntentID == "" {
			writeError(w, http.StatusBadRequest, "payment intent id is required")
			return
		}

		writeData(w, http.StatusOK, models.Booking{
			ID:     "booking-1",
			Status: models.BookingStatusConfirmed,
			Amount: 900,
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeData(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(utils.DataResponse{Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(utils.ErrorResponse{
		Error: utils.ErrorBody{Message: message, Code: status},
	})
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func testEvent(fee float64, max, booked int) models.Event {
	return models.Event{
		ID:              "event-1",
		Name:            "Test Event",
		JoiningFee:      fee,
		MaxParticipants: max,
		BookedCount:     booked,
		Status:          models.EventStatusOpen,
		EventDate:       time.Now().Add(48 * time.Hour),
	}
}

func TestIncrementQuantityStopsAtSpotsLeft(t *testing.T) {
	api := New("http://unused.invalid")
	session := NewBookingSession(api, testEvent(500, 10, 7)) // 3 spots left

	assert.Nil(t, session.IncrementQuantity())
	assert.Nil(t, session.IncrementQuantity())
	assert.Equal(t, 3, session.Quantity())

	notice := session.IncrementQuantity()
	require.NotNil(t, notice)
	assert.Equal(t, NoticeSpotsLimit, notice.Kind)
	assert.Equal(t, "Only 3 spots available", notice.Message)
	assert.Equal(t, 3, session.Quantity(), "quantity must not change past the bound")
}

func TestDecrementQuantityStopsAtOne(t *testing.T) {
	api := New("http://unused.invalid")
	session := NewBookingSession(api, testEvent(500, 10, 0))

	assert.Nil(t, session.DecrementQuantity())
	assert.Equal(t, 1, session.Quantity())
}

func TestQuantityChangeClearsAppliedCoupon(t *testing.T) {
	backend := &fakeBackend{}
	srv := backend.server(t)
	api := New(srv.URL)

	session := NewBookingSession(api, testEvent(500, 10, 0))
	require.NoError(t, session.ApplyCoupon(context.Background(), "SAVE10"))
	require.NotNil(t, session.AppliedCoupon())

	notice := session.IncrementQuantity()
	require.NotNil(t, notice)
	assert.Equal(t, NoticeCouponCleared, notice.Kind)
	assert.Nil(t, session.AppliedCoupon())
	assert.Empty(t, session.CouponInput())
}

func TestApplyCouponIsIdempotentPerCodeAndQuantity(t *testing.T) {
	backend := &fakeBackend{}
	srv := backend.server(t)
	api := New(srv.URL)

	session := NewBookingSession(api, testEvent(500, 10, 0))
	require.NoError(t, session.ApplyCoupon(context.Background(), "SAVE10"))
	require.NoError(t, session.ApplyCoupon(context.Background(), "SAVE10"))

	assert.Equal(t, 1, backend.couponCalls)
}

func TestApplyInvalidCouponSurfacesInlineError(t *testing.T) {
	backend := &fakeBackend{}
	srv := backend.server(t)
	api := New(srv.URL)

	session := NewBookingSession(api, testEvent(500, 10, 0))
	err := session.ApplyCoupon(context.Background(), "BOGUS")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCoupon)
	assert.Nil(t, session.AppliedCoupon())
}

func TestRemoveCouponClearsResultAndInput(t *testing.T) {
	backend := &fakeBackend{}
	srv := backend.server(t)
	api := New(srv.URL)

	session := NewBookingSession(api, testEvent(500, 10, 0))
	require.NoError(t, session.ApplyCoupon(context.Background(), "SAVE10"))

	session.RemoveCoupon()

	assert.Nil(t, session.AppliedCoupon())
	assert.Empty(t, session.CouponInput())
	quote := session.Quote()
	assert.Equal(t, quote.Subtotal, quote.FinalAmount)
}

func TestPaymentSessionOpenIsIdempotent(t *testing.T) {
	backend := &fakeBackend{}
	srv := backend.server(t)
	api := New(srv.URL)

	session := NewPaymentSession(api, "booking-1")
	require.NoError(t, session.Open(context.Background()))
	require.NoError(t, session.Open(context.Background()))

	assert.Equal(t, 1, backend.createIntentCalls, "reopening must not issue a second create-intent")
	assert.Equal(t, StateLiveReady, session.State())
	assert.NotEmpty(t, session.ClientSecret())
	assert.False(t, session.IsDemo())
}

func TestPaymentSessionDemoIntent(t *testing.T) {
	backend := &fakeBackend{demoIntents: true}
	srv := backend.server(t)
	api := New(srv.URL)

	session := NewPaymentSession(api, "booking-1")
	require.NoError(t, session.Open(context.Background()))

	assert.Equal(t, StateDemoReady, session.State())
	assert.True(t, session.IsDemo())
	assert.Empty(t, session.ClientSecret())

	booking, err := session.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, StateSucceeded, session.State())
}

func TestPaymentSessionCloseResetsAndReopensFresh(t *testing.T) {
	backend := &fakeBackend{}
	srv := backend.server(t)
	api := New(srv.URL)

	session := NewPaymentSession(api, "booking-1")
	require.NoError(t, session.Open(context.Background()))
	firstIntent := session.IntentID()
	require.NotEmpty(t, firstIntent)

	session.Close()
	assert.Equal(t, StateIdle, session.State())
	assert.Empty(t, session.IntentID())
	assert.Empty(t, session.ClientSecret())
	assert.False(t, session.IsDemo())

	// A fresh open issues a fresh request; the backend hands the
	// booking's pending intent back
	require.NoError(t, session.Open(context.Background()))
	assert.Equal(t, 2, backend.createIntentCalls)
	assert.Equal(t, firstIntent, session.IntentID())
	assert.Equal(t, StateLiveReady, session.State())
}

// A user who closes the payment dialog after the intent was created must
// still be able to pay: reopening recovers the pending intent and the
// confirm goes through.
func TestReopenedDialogCanStillPay(t *testing.T) {
	backend := &fakeBackend{demoIntents: true}
	srv := backend.server(t)
	api := New(srv.URL)

	session := NewPaymentSession(api, "booking-1")
	require.NoError(t, session.Open(context.Background()))
	session.Close()

	require.NoError(t, session.Open(context.Background()))
	require.NotEmpty(t, session.IntentID())

	booking, err := session.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, StateSucceeded, session.State())
	assert.Equal(t, 1, backend.confirmCalls)
}

func TestPaymentSessionConflictKeepsDialogOpen(t *testing.T) {
	backend := &fakeBackend{alreadyPaid: true}
	srv := backend.server(t)
	api := New(srv.URL)

	session := NewPaymentSession(api, "booking-1")
	err := session.Open(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, StateFailed, session.State(), "conflict must not reset the session")
	assert.Error(t, session.LastError())
}

func TestConfirmWithEmptyIntentIDMakesNoNetworkCall(t *testing.T) {
	backend := &fakeBackend{}
	srv := backend.server(t)
	api := New(srv.URL)

	_, err := api.ConfirmPayment(context.Background(), "")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyIntentID)
	assert.Equal(t, 0, backend.confirmCalls)
}

func TestConfirmBeforeOpenIsRejected(t *testing.T) {
	api := New("http://unused.invalid")
	session := NewPaymentSession(api, "booking-1")

	_, err := session.Confirm(context.Background())
	assert.ErrorIs(t, err, ErrSessionNotReady)
}

// Booking a free event never opens the payment dialog: the booking
// comes back confirmed with no payment required.
func TestFreeEventBookingConfirmsWithoutPayment(t *testing.T) {
	backend := &fakeBackend{freeEvent: true}
	srv := backend.server(t)
	api := New(srv.URL)

	session := NewBookingSession(api, testEvent(0, 10, 0))
	quote := session.Quote()
	assert.True(t, quote.IsFree())
	assert.Equal(t, 0.0, quote.FinalAmount)

	result, err := session.Submit(context.Background())
	require.NoError(t, err)
	assert.False(t, result.RequiresPayment)
	assert.Equal(t, models.BookingStatusConfirmed, result.Status)
	assert.Equal(t, 0.0, result.Amount)

	assert.Equal(t, 0, backend.createIntentCalls, "no intent request for a free booking")
}

// End-to-end booking flow: pick quantity 2 of a 500-fee event with 3
// spots left, apply SAVE10, submit, pay via a live intent, confirm.
func TestBookingFlowEndToEnd(t *testing.T) {
	backend := &fakeBackend{}
	srv := backend.server(t)
	api := New(srv.URL)

	session := NewBookingSession(api, testEvent(500, 10, 7))
	require.Nil(t, session.IncrementQuantity())
	require.Equal(t, 2, session.Quantity())

	require.NoError(t, session.ApplyCoupon(context.Background(), "SAVE10"))
	quote := session.Quote()
	assert.Equal(t, 1000.0, quote.Subtotal)
	assert.Equal(t, 100.0, quote.Discount)
	assert.Equal(t, 900.0, quote.FinalAmount)

	result, err := session.Submit(context.Background())
	require.NoError(t, err)
	assert.True(t, result.RequiresPayment)
	assert.Equal(t, models.BookingStatusPending, result.Status)

	payment := NewPaymentSession(api, result.BookingID)
	require.NoError(t, payment.Open(context.Background()))
	require.Equal(t, StateLiveReady, payment.State())

	booking, err := payment.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, 900.0, booking.Amount)

	payment.Close()
	assert.Equal(t, StateIdle, payment.State())
}
