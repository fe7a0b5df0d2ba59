// File: /controllers/payment_controller.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"eventhub-api/models"
	"eventhub-api/services"
	"eventhub-api/utils"
)

type PaymentController struct {
	db       *gorm.DB
	provider services.PaymentProvider
	cache    *services.CacheService
	email    *services.EmailService
}

func NewPaymentController(db *gorm.DB, provider services.PaymentProvider, cache *services.CacheService, email *services.EmailService) *PaymentController {
	return &PaymentController{db: db, provider: provider, cache: cache, email: email}
}

var errBookingNotPending = errors.New("booking is not awaiting payment")

type CreateIntentRequest struct {
	BookingID string `json:"booking_id" binding:"required"`
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"payment_intent_id" binding:"required"`
}

// CreateIntent opens a payment for a pending booking. A booking holds
// at most one usable intent; a second create while one is pending
// returns that intent again, so a reopened payment dialog recovers the
// intent it already created instead of being locked out until it
// expires.
func (pc *PaymentController) CreateIntent(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	var booking models.Booking
	if err := pc.db.First(&booking, "id = ? AND user_id = ?", req.BookingID, userID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Booking not found")
		return
	}

	if !booking.AwaitingPayment() {
		utils.SendError(c, http.StatusConflict, "Booking is not awaiting payment")
		return
	}
	if booking.Amount <= 0 {
		utils.SendError(c, http.StatusConflict, "Booking does not require payment")
		return
	}

	var existing models.PaymentIntent
	err := pc.db.Where("booking_id = ?", booking.ID).First(&existing).Error
	if err == nil {
		switch existing.Status {
		case models.IntentStatusPending:
			utils.SendData(c, models.PaymentIntentResult{
				ID:           existing.ID,
				ClientSecret: existing.ClientSecret,
				Amount:       existing.Amount,
			})
			return
		case models.IntentStatusSucceeded:
			utils.SendError(c, http.StatusConflict, "Booking has already been paid")
			return
		}
	}

	processorIntent, err := pc.provider.CreateIntent(booking.Amount, booking.ID)
	if err != nil {
		logrus.WithError(err).Error("Failed to create payment intent")
		utils.SendError(c, http.StatusBadGateway, "Payment processor unavailable")
		return
	}

	intent := models.PaymentIntent{
		ID:           processorIntent.ID,
		BookingID:    booking.ID,
		Amount:       booking.Amount,
		ClientSecret: processorIntent.ClientSecret,
		Status:       models.IntentStatusPending,
	}

	if existing.ID != "" {
		// Replace an expired intent in place to keep the one-per-booking
		// constraint
		err = pc.db.Model(&models.PaymentIntent{}).Where("booking_id = ?", booking.ID).
			Updates(map[string]interface{}{
				"id":            intent.ID,
				"amount":        intent.Amount,
				"client_secret": intent.ClientSecret,
				"status":        models.IntentStatusPending,
			}).Error
	} else {
		err = pc.db.Create(&intent).Error
	}
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to record payment intent")
		return
	}

	utils.SendCreated(c, models.PaymentIntentResult{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       intent.Amount,
	})
}

// ConfirmPayment finalizes an intent: for live intents the processor
// must already report success; demo intents confirm directly. On success
// the booking becomes CONFIRMED and event seats are claimed.
func (pc *PaymentController) ConfirmPayment(c *gin.Context) {
	userID := c.GetString("user_id")

	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	var intent models.PaymentIntent
	if err := pc.db.Preload("Booking").First(&intent, "id = ?", req.PaymentIntentID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Payment intent not found")
		return
	}

	if intent.Booking.UserID != userID {
		utils.SendError(c, http.StatusForbidden, "Permission denied")
		return
	}

	if intent.Status == models.IntentStatusSucceeded {
		// Confirm is idempotent once succeeded
		utils.SendData(c, intent.Booking)
		return
	}
	if intent.Status == models.IntentStatusExpired {
		utils.SendError(c, http.StatusConflict, "Payment intent has expired, please start a new payment")
		return
	}
	if !intent.Booking.AwaitingPayment() {
		utils.SendError(c, http.StatusConflict, "Booking is no longer awaiting payment")
		return
	}

	processorIntent, err := pc.provider.RetrieveIntent(intent.ID)
	if err != nil {
		logrus.WithError(err).Error("Failed to retrieve payment intent")
		utils.SendError(c, http.StatusBadGateway, "Payment processor unavailable")
		return
	}
	if !processorIntent.Succeeded {
		utils.SendError(c, http.StatusConflict, "Payment has not completed yet")
		return
	}

	var event models.Event
	if err := pc.db.First(&event, "id = ?", intent.Booking.EventID).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to load event")
		return
	}

	booking := intent.Booking
	snapshot := models.PaymentSnapshot{
		IntentID:    intent.ID,
		Amount:      intent.Amount,
		Demo:        intent.IsDemo(),
		ConfirmedAt: time.Now(),
	}

	err = pc.db.Transaction(func(tx *gorm.DB) error {
		// Seats are claimed under the event row lock; a full event or a
		// booking cancelled since the pre-checks aborts the whole confirm.
		if err := confirmSeats(tx, booking.EventID, booking.Quantity); err != nil {
			return err
		}
		if err := tx.Model(&models.PaymentIntent{}).Where("id = ?", intent.ID).
			Update("status", models.IntentStatusSucceeded).Error; err != nil {
			return err
		}
		res := tx.Model(&models.Booking{}).
			Where("id = ? AND status = ?", booking.ID, models.BookingStatusPending).
			Updates(map[string]interface{}{
				"status":  models.BookingStatusConfirmed,
				"payment": snapshot,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errBookingNotPending
		}
		return nil
	})
	if errors.Is(err, models.ErrEventFull) {
		utils.SendError(c, http.StatusConflict, "Event is sold out")
		return
	}
	if errors.Is(err, errBookingNotPending) {
		utils.SendError(c, http.StatusConflict, "Booking is no longer awaiting payment")
		return
	}
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to confirm payment")
		return
	}

	pc.cache.InvalidateEvent(c.Request.Context(), event.ID)

	var user models.User
	if err := pc.db.First(&user, "id = ?", booking.UserID).Error; err == nil {
		confirmed := booking
		confirmed.Status = models.BookingStatusConfirmed
		confirmed.Amount = booking.Amount
		go pc.email.SendBookingConfirmation(&user, &confirmed, &event)
	}

	booking.Status = models.BookingStatusConfirmed
	booking.Payment = &snapshot
	utils.SendData(c, booking)
}
