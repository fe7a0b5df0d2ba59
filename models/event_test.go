// File: /models/event_test.go
package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventSpotsLeft(t *testing.T) {
	event := Event{MaxParticipants: 10, BookedCount: 7}
	assert.Equal(t, 3, event.SpotsLeft())

	event.BookedCount = 10
	assert.Equal(t, 0, event.SpotsLeft())

	// Over-booked data never yields a negative count
	event.BookedCount = 12
	assert.Equal(t, 0, event.SpotsLeft())
}

func TestEventBookable(t *testing.T) {
	event := Event{
		Status:    EventStatusOpen,
		EventDate: time.Now().Add(24 * time.Hour),
	}
	assert.True(t, event.Bookable())

	event.Status = EventStatusFull
	assert.False(t, event.Bookable())

	event.Status = EventStatusOpen
	event.EventDate = time.Now().Add(-time.Hour)
	assert.False(t, event.Bookable())
}

func TestEventClaim(t *testing.T) {
	event := Event{Status: EventStatusOpen, MaxParticipants: 10, BookedCount: 7}

	assert.NoError(t, event.Claim(2))
	assert.Equal(t, 9, event.BookedCount)
	assert.Equal(t, EventStatusOpen, event.Status)

	assert.NoError(t, event.Claim(1))
	assert.Equal(t, 10, event.BookedCount)
	assert.Equal(t, EventStatusFull, event.Status)
}

func TestEventClaimRejectsOversell(t *testing.T) {
	event := Event{Status: EventStatusOpen, MaxParticipants: 10, BookedCount: 9}

	// Two pending bookings race for the last seat: the first claim wins,
	// the second must fail instead of pushing past capacity.
	assert.NoError(t, event.Claim(1))
	err := event.Claim(1)
	assert.ErrorIs(t, err, ErrEventFull)
	assert.Equal(t, 10, event.BookedCount)

	big := Event{Status: EventStatusOpen, MaxParticipants: 10, BookedCount: 8}
	assert.ErrorIs(t, big.Claim(3), ErrEventFull)
	assert.Equal(t, 8, big.BookedCount, "a failed claim must not move the counter")
}

func TestEventIsFree(t *testing.T) {
	assert.True(t, (&Event{JoiningFee: 0}).IsFree())
	assert.False(t, (&Event{JoiningFee: 500}).IsFree())
}

func TestBookingCancellable(t *testing.T) {
	future := time.Now().Add(24 * time.Hour)
	past := time.Now().Add(-24 * time.Hour)

	assert.True(t, (&Booking{Status: BookingStatusPending}).Cancellable(future))
	assert.True(t, (&Booking{Status: BookingStatusConfirmed}).Cancellable(future))
	assert.False(t, (&Booking{Status: BookingStatusConfirmed}).Cancellable(past))
	assert.False(t, (&Booking{Status: BookingStatusCancelled}).Cancellable(future))
	assert.False(t, (&Booking{Status: BookingStatusCompleted}).Cancellable(future))
}

func TestBookingAwaitingPayment(t *testing.T) {
	assert.True(t, (&Booking{Status: BookingStatusPending}).AwaitingPayment())
	assert.False(t, (&Booking{Status: BookingStatusCancelled}).AwaitingPayment())
	assert.False(t, (&Booking{Status: BookingStatusConfirmed}).AwaitingPayment())
	assert.False(t, (&Booking{Status: BookingStatusCompleted}).AwaitingPayment())
}

func TestIsDemoIntentID(t *testing.T) {
	assert.True(t, IsDemoIntentID("demo_abc123"))
	assert.False(t, IsDemoIntentID("pi_abc123"))
	assert.False(t, IsDemoIntentID(""))
}
