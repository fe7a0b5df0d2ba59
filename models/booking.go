// File: /models/booking.go
package models

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
)

type Booking struct {
	ID         string           `json:"id" gorm:"primaryKey;size:191"`
	UserID     string           `json:"user_id" gorm:"not null;size:191;index"`
	EventID    string           `json:"event_id" gorm:"not null;size:191;index"`
	Status     BookingStatus    `json:"status" gorm:"not null;size:20;default:'PENDING'"`
	Quantity   int              `json:"quantity" gorm:"not null;default:1"`
	Amount     float64          `json:"amount" gorm:"not null"` // final charged amount
	CouponCode *string          `json:"coupon_code,omitempty" gorm:"size:50"`
	Payment    *PaymentSnapshot `json:"payment,omitempty" gorm:"type:json"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`

	User  User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Event Event `json:"event,omitempty" gorm:"foreignKey:EventID"`
}

// Active reports whether the booking still claims a seat (anything not
// cancelled blocks a re-booking of the same event by the same user).
func (b *Booking) Active() bool {
	return b.Status != BookingStatusCancelled
}

// AwaitingPayment reports whether a payment may still confirm the
// booking. A cancelled booking stays cancelled even if its intent is
// later paid.
func (b *Booking) AwaitingPayment() bool {
	return b.Status == BookingStatusPending
}

// Cancellable reports whether the owner may still cancel.
func (b *Booking) Cancellable(eventDate time.Time) bool {
	if b.Status != BookingStatusPending && b.Status != BookingStatusConfirmed {
		return false
	}
	return eventDate.After(time.Now())
}

// CreateBookingResult is the response body of POST /bookings.
type CreateBookingResult struct {
	BookingID       string        `json:"booking_id"`
	Status          BookingStatus `json:"status"`
	Amount          float64       `json:"amount"`
	RequiresPayment bool          `json:"requires_payment"`
}
