// File: /repositories/booking_repository.go
package repositories

import (
	"time"

	"gorm.io/gorm"

	"eventhub-api/models"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// ConfirmedSeats returns the number of confirmed seats for an event,
// counting booking quantities rather than booking rows.
func (r *BookingRepository) ConfirmedSeats(eventID string) (int, error) {
	var total int64
	err := r.db.Model(&models.Booking{}).
		Where("event_id = ? AND status = ?", eventID, models.BookingStatusConfirmed).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	return int(total), err
}

// CompletePastBookings moves confirmed bookings of past events to
// COMPLETED. Returns the number of bookings updated.
func (r *BookingRepository) CompletePastBookings(now time.Time) (int64, error) {
	result := r.db.Model(&models.Booking{}).
		Where("status = ? AND event_id IN (?)",
			models.BookingStatusConfirmed,
			r.db.Model(&models.Event{}).Select("id").Where("event_date < ?", now),
		).
		Update("status", models.BookingStatusCompleted)
	return result.RowsAffected, result.Error
}

// CompletePastEvents marks open or full events whose date has passed as
// COMPLETED. Returns the number of events updated.
func (r *BookingRepository) CompletePastEvents(now time.Time) (int64, error) {
	result := r.db.Model(&models.Event{}).
		Where("event_date < ? AND status IN ?", now,
			[]models.EventStatus{models.EventStatusOpen, models.EventStatusFull}).
		Update("status", models.EventStatusCompleted)
	return result.RowsAffected, result.Error
}

// ReconcileSeatCounts realigns booked_count with the confirmed-seat sum
// for every open or full event, repairing any drift between the counter
// and the bookings table. Returns the number of events corrected.
func (r *BookingRepository) ReconcileSeatCounts() (int, error) {
	var events []models.Event
	if err := r.db.Where("status IN ?",
		[]models.EventStatus{models.EventStatusOpen, models.EventStatusFull}).
		Find(&events).Error; err != nil {
		return 0, err
	}

	corrected := 0
	for i := range events {
		seats, err := r.ConfirmedSeats(events[i].ID)
		if err != nil {
			return corrected, err
		}
		if seats == events[i].BookedCount {
			continue
		}

		status := models.EventStatusOpen
		if seats >= events[i].MaxParticipants {
			status = models.EventStatusFull
		}
		err = r.db.Model(&models.Event{}).Where("id = ?", events[i].ID).
			Updates(map[string]interface{}{
				"booked_count": seats,
				"status":       status,
			}).Error
		if err != nil {
			return corrected, err
		}
		corrected++
	}
	return corrected, nil
}

// ExpireStaleIntents marks pending payment intents older than the TTL as
// EXPIRED so their bookings can be paid again with a fresh intent.
func (r *BookingRepository) ExpireStaleIntents(ttl time.Duration, now time.Time) (int64, error) {
	result := r.db.Model(&models.PaymentIntent{}).
		Where("status = ? AND created_at < ?", models.IntentStatusPending, now.Add(-ttl)).
		Update("status", models.IntentStatusExpired)
	return result.RowsAffected, result.Error
}
