// File: /controllers/booking_controller.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"eventhub-api/models"
	"eventhub-api/services"
	"eventhub-api/utils"
)

type BookingController struct {
	db      *gorm.DB
	cache   *services.CacheService
	email   *services.EmailService
	tickets *services.TicketService
}

func NewBookingController(db *gorm.DB, cache *services.CacheService, email *services.EmailService, tickets *services.TicketService) *BookingController {
	return &BookingController{db: db, cache: cache, email: email, tickets: tickets}
}

type CreateBookingRequest struct {
	EventID    string `json:"event_id" binding:"required"`
	Quantity   int    `json:"quantity" binding:"omitempty,min=1"`
	CouponCode string `json:"coupon_code"`
}

func (bc *BookingController) CreateBooking(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if !utils.IsValidQuantity(quantity) {
		utils.SendValidationError(c, "Quantity must be at least 1")
		return
	}

	var event models.Event
	if err := bc.db.First(&event, "id = ?", req.EventID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Event not found")
		return
	}

	if !event.Bookable() {
		utils.SendError(c, http.StatusConflict, "Event is not open for booking")
		return
	}

	// A non-cancelled booking blocks a second booking of the same event
	var existing models.Booking
	if err := bc.db.Where("user_id = ? AND event_id = ? AND status <> ?",
		userID, req.EventID, models.BookingStatusCancelled).First(&existing).Error; err == nil {
		utils.SendError(c, http.StatusConflict, "You have already booked this event")
		return
	}

	if quantity > event.SpotsLeft() {
		utils.SendError(c, http.StatusConflict,
			fmt.Sprintf("Only %d spots available", event.SpotsLeft()))
		return
	}

	subtotal := event.JoiningFee * float64(quantity)
	amount := subtotal
	var couponCode *string

	// The coupon is re-validated against this exact quantity; the charged
	// amount is always the server-computed final amount.
	if req.CouponCode != "" {
		if event.IsFree() {
			utils.SendValidationError(c, "Coupons cannot be applied to free events")
			return
		}
		var coupon models.Coupon
		if err := bc.db.Where("code = ?", req.CouponCode).First(&coupon).Error; err != nil {
			utils.SendValidationError(c, "Invalid or expired coupon code")
			return
		}
		if !coupon.Usable(event.ID, time.Now()) {
			utils.SendValidationError(c, "Invalid or expired coupon code")
			return
		}
		_, amount = coupon.Apply(subtotal)
		couponCode = &coupon.Code
	}

	booking := models.Booking{
		ID:         uuid.New().String(),
		UserID:     userID,
		EventID:    event.ID,
		Quantity:   quantity,
		Amount:     amount,
		CouponCode: couponCode,
		Status:     models.BookingStatusPending,
	}

	requiresPayment := amount > 0

	if !requiresPayment {
		// Free (or fully discounted) bookings confirm immediately
		booking.Status = models.BookingStatusConfirmed
		err := bc.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&booking).Error; err != nil {
				return err
			}
			return confirmSeats(tx, event.ID, quantity)
		})
		if errors.Is(err, models.ErrEventFull) {
			utils.SendError(c, http.StatusConflict, "Event is sold out")
			return
		}
		if err != nil {
			utils.SendError(c, http.StatusInternalServerError, "Failed to create booking")
			return
		}

		bc.cache.InvalidateEvent(c.Request.Context(), event.ID)

		var user models.User
		if err := bc.db.First(&user, "id = ?", userID).Error; err == nil {
			go bc.email.SendBookingConfirmation(&user, &booking, &event)
		}
	} else {
		if err := bc.db.Create(&booking).Error; err != nil {
			utils.SendError(c, http.StatusInternalServerError, "Failed to create booking")
			return
		}
	}

	utils.SendCreated(c, models.CreateBookingResult{
		BookingID:       booking.ID,
		Status:          booking.Status,
		Amount:          booking.Amount,
		RequiresPayment: requiresPayment,
	})
}

// confirmSeats claims seats on the event, flipping it to FULL at
// capacity. Must run inside the caller's transaction: the event row is
// locked and re-read so concurrent confirms cannot push bookedCount
// past maxParticipants. Returns models.ErrEventFull when the seats are
// gone.
func confirmSeats(tx *gorm.DB, eventID string, quantity int) error {
	var event models.Event
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&event, "id = ?", eventID).Error; err != nil {
		return err
	}
	if err := event.Claim(quantity); err != nil {
		return err
	}
	return tx.Model(&models.Event{}).Where("id = ?", event.ID).
		Updates(map[string]interface{}{
			"booked_count": event.BookedCount,
			"status":       event.Status,
		}).Error
}

func (bc *BookingController) CancelBooking(c *gin.Context) {
	userID := c.GetString("user_id")
	bookingID := c.Param("id")

	var booking models.Booking
	if err := bc.db.Preload("Event").First(&booking, "id = ? AND user_id = ?", bookingID, userID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Booking not found")
		return
	}

	if !booking.Cancellable(booking.Event.EventDate) {
		utils.SendError(c, http.StatusConflict, "Booking can no longer be cancelled")
		return
	}

	wasConfirmed := booking.Status == models.BookingStatusConfirmed

	err := bc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&booking).Update("status", models.BookingStatusCancelled).Error; err != nil {
			return err
		}
		// A cancelled booking's intent must not remain confirmable
		if err := tx.Model(&models.PaymentIntent{}).
			Where("booking_id = ? AND status = ?", booking.ID, models.IntentStatusPending).
			Update("status", models.IntentStatusExpired).Error; err != nil {
			return err
		}
		if !wasConfirmed {
			return nil
		}
		newCount := booking.Event.BookedCount - booking.Quantity
		if newCount < 0 {
			newCount = 0
		}
		updates := map[string]interface{}{
			"booked_count": newCount,
		}
		if booking.Event.Status == models.EventStatusFull {
			updates["status"] = models.EventStatusOpen
		}
		return tx.Model(&models.Event{}).Where("id = ?", booking.EventID).Updates(updates).Error
	})
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to cancel booking")
		return
	}

	bc.cache.InvalidateEvent(c.Request.Context(), booking.EventID)
	utils.SendData(c, gin.H{"message": "Booking cancelled successfully"})
}

func (bc *BookingController) GetMyBookings(c *gin.Context) {
	userID := c.GetString("user_id")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	offset := (page - 1) * limit

	query := bc.db.Model(&models.Booking{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}

	var bookings []models.Booking
	if err := query.Preload("Event").Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&bookings).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}

	utils.SendPaginated(c, bookings, page, limit, total)
}

func (bc *BookingController) GetBooking(c *gin.Context) {
	userID := c.GetString("user_id")
	role := models.UserRole(c.GetString("role"))
	bookingID := c.Param("id")

	var booking models.Booking
	query := bc.db.Preload("Event").Where("id = ?", bookingID)
	if role != models.RoleAdmin {
		query = query.Where("user_id = ?", userID)
	}
	if err := query.First(&booking).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Booking not found")
		return
	}

	utils.SendData(c, booking)
}

// GetTicket renders the PDF ticket for a confirmed booking.
func (bc *BookingController) GetTicket(c *gin.Context) {
	userID := c.GetString("user_id")
	bookingID := c.Param("id")

	var booking models.Booking
	if err := bc.db.Preload("Event").Preload("User").
		First(&booking, "id = ? AND user_id = ?", bookingID, userID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Booking not found")
		return
	}

	if booking.Status != models.BookingStatusConfirmed && booking.Status != models.BookingStatusCompleted {
		utils.SendError(c, http.StatusConflict, "Ticket is only available for confirmed bookings")
		return
	}

	pdf, err := bc.tickets.RenderTicket(&booking, &booking.Event, &booking.User)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to render ticket")
		return
	}

	c.Header("Content-Disposition", "attachment; filename=ticket-"+booking.ID+".pdf")
	c.Data(http.StatusOK, "application/pdf", pdf)
}
