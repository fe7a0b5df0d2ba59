// File: /models/payment.go
package models

import (
	"strings"
	"time"
)

// DemoIntentPrefix marks placeholder payment intents that never touch
// the processor. Clients detect demo mode from this prefix.
const DemoIntentPrefix = "demo_"

type PaymentIntentStatus string

const (
	IntentStatusPending   PaymentIntentStatus = "PENDING"
	IntentStatusSucceeded PaymentIntentStatus = "SUCCEEDED"
	IntentStatusExpired   PaymentIntentStatus = "EXPIRED"
)

type PaymentIntent struct {
	ID           string              `json:"id" gorm:"primaryKey;size:191"`
	BookingID    string              `json:"booking_id" gorm:"uniqueIndex;not null;size:191"`
	Amount       float64             `json:"amount" gorm:"not null"`
	ClientSecret string              `json:"-" gorm:"size:255"` // empty for demo intents
	Status       PaymentIntentStatus `json:"status" gorm:"not null;size:20;default:'PENDING'"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`

	Booking Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
}

// IsDemo reports whether the intent is a placeholder with no processor
// charge behind it.
func (pi *PaymentIntent) IsDemo() bool {
	return IsDemoIntentID(pi.ID)
}

func IsDemoIntentID(id string) bool {
	return strings.HasPrefix(id, DemoIntentPrefix)
}

// PaymentIntentResult is the response body of POST /payments/create-intent.
// ClientSecret is present only for live intents.
type PaymentIntentResult struct {
	ID           string  `json:"id"`
	ClientSecret string  `json:"client_secret,omitempty"`
	Amount       float64 `json:"amount"`
}
