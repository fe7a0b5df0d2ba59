// File: /models/event.go
package models

import (
	"errors"
	"time"
)

// ErrEventFull is returned by Claim when fewer seats remain than
// requested.
var ErrEventFull = errors.New("not enough spots left")

type EventStatus string

const (
	EventStatusOpen      EventStatus = "OPEN"
	EventStatusFull      EventStatus = "FULL"
	EventStatusCancelled EventStatus = "CANCELLED"
	EventStatusCompleted EventStatus = "COMPLETED"
)

type Event struct {
	ID              string      `json:"id" gorm:"primaryKey;size:191"`
	Name            string      `json:"name" gorm:"not null;size:255"`
	Category        string      `json:"category" gorm:"not null;size:100;index"`
	Description     string      `json:"description" gorm:"not null;type:text"`
	EventDate       time.Time   `json:"event_date" gorm:"not null;index"`
	Location        string      `json:"location" gorm:"not null;size:500"`
	MinParticipants int         `json:"min_participants" gorm:"default:1"`
	MaxParticipants int         `json:"max_participants" gorm:"not null"`
	JoiningFee      float64     `json:"joining_fee" gorm:"not null;default:0"`
	ImageURL        string      `json:"image_url" gorm:"size:500"`
	Status          EventStatus `json:"status" gorm:"not null;size:20;default:'OPEN'"`
	HostID          string      `json:"host_id" gorm:"not null;size:191;index"`
	BookedCount     int         `json:"booked_count" gorm:"default:0"` // confirmed seats
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`

	Host     User      `json:"host" gorm:"foreignKey:HostID"`
	Bookings []Booking `json:"bookings,omitempty" gorm:"foreignKey:EventID"`
	Reviews  []Review  `json:"reviews,omitempty" gorm:"foreignKey:EventID"`
}

// SpotsLeft is the number of seats still bookable: capacity minus
// confirmed seats. Never negative.
func (e *Event) SpotsLeft() int {
	left := e.MaxParticipants - e.BookedCount
	if left < 0 {
		return 0
	}
	return left
}

// IsFree reports whether the event has no joining fee, in which case
// bookings skip the payment phase entirely.
func (e *Event) IsFree() bool {
	return e.JoiningFee == 0
}

// Bookable reports whether new bookings may be taken for the event.
func (e *Event) Bookable() bool {
	return e.Status == EventStatusOpen && e.EventDate.After(time.Now())
}

// Claim records quantity newly confirmed seats, flipping the event to
// FULL at capacity. Fails with ErrEventFull when fewer seats remain, so
// bookedCount can never exceed maxParticipants. Callers persist the
// mutated BookedCount and Status in the same transaction that loaded
// the event.
func (e *Event) Claim(quantity int) error {
	if quantity > e.SpotsLeft() {
		return ErrEventFull
	}
	e.BookedCount += quantity
	if e.BookedCount >= e.MaxParticipants {
		e.Status = EventStatusFull
	}
	return nil
}
