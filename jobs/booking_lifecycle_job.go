// File: /jobs/booking_lifecycle_job.go
package jobs

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"eventhub-api/repositories"
)

// BookingLifecycleJob periodically moves confirmed bookings and events
// past their date to COMPLETED, expires abandoned payment intents and
// reconciles event seat counters against the bookings table.
type BookingLifecycleJob struct {
	bookings  *repositories.BookingRepository
	intentTTL time.Duration
	ticker    *time.Ticker
	done      chan bool
}

// NewBookingLifecycleJob creates a new lifecycle job
func NewBookingLifecycleJob(db *gorm.DB, interval, intentTTL time.Duration) *BookingLifecycleJob {
	return &BookingLifecycleJob{
		bookings:  repositories.NewBookingRepository(db),
		intentTTL: intentTTL,
		ticker:    time.NewTicker(interval),
		done:      make(chan bool),
	}
}

// Start begins the lifecycle job
func (j *BookingLifecycleJob) Start() {
	logrus.Info("Booking lifecycle job started")

	go func() {
		// Run immediately on start
		j.run()

		for {
			select {
			case <-j.ticker.C:
				j.run()
			case <-j.done:
				logrus.Info("Booking lifecycle job stopped")
				return
			}
		}
	}()
}

// Stop stops the lifecycle job
func (j *BookingLifecycleJob) Stop() {
	j.ticker.Stop()
	j.done <- true
}

func (j *BookingLifecycleJob) run() {
	now := time.Now()

	if n, err := j.bookings.CompletePastBookings(now); err != nil {
		logrus.WithError(err).Error("Failed to complete past bookings")
	} else if n > 0 {
		logrus.WithField("count", n).Info("Completed past bookings")
	}

	if n, err := j.bookings.CompletePastEvents(now); err != nil {
		logrus.WithError(err).Error("Failed to complete past events")
	} else if n > 0 {
		logrus.WithField("count", n).Info("Completed past events")
	}

	if n, err := j.bookings.ExpireStaleIntents(j.intentTTL, now); err != nil {
		logrus.WithError(err).Error("Failed to expire stale payment intents")
	} else if n > 0 {
		logrus.WithField("count", n).Info("Expired stale payment intents")
	}

	if n, err := j.bookings.ReconcileSeatCounts(); err != nil {
		logrus.WithError(err).Error("Failed to reconcile event seat counts")
	} else if n > 0 {
		logrus.WithField("count", n).Warn("Corrected drifted event seat counts")
	}
}
