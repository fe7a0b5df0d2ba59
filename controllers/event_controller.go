// File: /controllers/event_controller.go
package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventhub-api/models"
	"eventhub-api/services"
	"eventhub-api/utils"
)

type EventController struct {
	db    *gorm.DB
	cache *services.CacheService
}

func NewEventController(db *gorm.DB, cache *services.CacheService) *EventController {
	return &EventController{db: db, cache: cache}
}

type CreateEventRequest struct {
	Name            string    `json:"name" binding:"required"`
	Category        string    `json:"category" binding:"required"`
	Description     string    `json:"description" binding:"required"`
	EventDate       time.Time `json:"event_date" binding:"required"`
	Location        string    `json:"location" binding:"required"`
	MinParticipants int       `json:"min_participants" binding:"omitempty,min=1"`
	MaxParticipants int       `json:"max_participants" binding:"required,min=1"`
	JoiningFee      float64   `json:"joining_fee" binding:"omitempty,gte=0"`
	ImageURL        string    `json:"image_url"`
}

func (ec *EventController) GetEvents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	offset := (page - 1) * limit

	search := c.Query("search")
	category := c.Query("category")
	status := c.Query("status")

	filterKey := fmt.Sprintf("p%d:l%d:s%s:c%s:st%s", page, limit, search, category, status)
	if payload, ok := ec.cache.GetEventList(c.Request.Context(), filterKey); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
		return
	}

	query := ec.db.Model(&models.Event{}).Preload("Host")

	if search != "" {
		query = query.Where("name LIKE ? OR description LIKE ? OR location LIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if status != "" {
		query = query.Where("status = ?", strings.ToUpper(status))
	} else {
		query = query.Where("status IN ?", []models.EventStatus{models.EventStatusOpen, models.EventStatusFull})
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch events")
		return
	}

	var events []models.Event
	if err := query.Order("event_date ASC").Offset(offset).Limit(limit).Find(&events).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch events")
		return
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	response := utils.PaginatedResponse{
		Data: events,
		Pagination: utils.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}

	if payload, err := json.Marshal(response); err == nil {
		ec.cache.SetEventList(c.Request.Context(), filterKey, payload)
	}

	c.JSON(http.StatusOK, response)
}

func (ec *EventController) GetEvent(c *gin.Context) {
	eventID := c.Param("id")

	if payload, ok := ec.cache.GetEvent(c.Request.Context(), eventID); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
		return
	}

	var event models.Event
	if err := ec.db.Preload("Host").First(&event, "id = ?", eventID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Event not found")
		return
	}

	response := utils.DataResponse{Data: event}
	if payload, err := json.Marshal(response); err == nil {
		ec.cache.SetEvent(c.Request.Context(), eventID, payload)
	}

	c.JSON(http.StatusOK, response)
}

// GetSuggestions returns up to 8 event names matching the query prefix,
// for the search box dropdown.
func (ec *EventController) GetSuggestions(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		utils.SendData(c, []string{})
		return
	}

	var names []string
	if err := ec.db.Model(&models.Event{}).
		Where("name LIKE ? AND status IN ?", q+"%",
			[]models.EventStatus{models.EventStatusOpen, models.EventStatusFull}).
		Order("event_date ASC").Limit(8).
		Pluck("name", &names).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch suggestions")
		return
	}

	utils.SendData(c, names)
}

func (ec *EventController) CreateEvent(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if req.EventDate.Before(time.Now()) {
		utils.SendValidationError(c, "Event date must be in the future")
		return
	}

	minParticipants := req.MinParticipants
	if minParticipants == 0 {
		minParticipants = 1
	}
	if minParticipants > req.MaxParticipants {
		utils.SendValidationError(c, "Minimum participants cannot exceed maximum participants")
		return
	}

	event := models.Event{
		ID:              uuid.New().String(),
		Name:            req.Name,
		Category:        req.Category,
		Description:     req.Description,
		EventDate:       req.EventDate,
		Location:        req.Location,
		MinParticipants: minParticipants,
		MaxParticipants: req.MaxParticipants,
		JoiningFee:      req.JoiningFee,
		ImageURL:        req.ImageURL,
		Status:          models.EventStatusOpen,
		HostID:          userID,
	}

	if err := ec.db.Create(&event).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to create event")
		return
	}

	ec.cache.InvalidateEventLists(c.Request.Context())
	utils.SendCreated(c, event)
}

func (ec *EventController) UpdateEvent(c *gin.Context) {
	userID := c.GetString("user_id")
	role := models.UserRole(c.GetString("role"))
	eventID := c.Param("id")

	var event models.Event
	query := ec.db.Where("id = ?", eventID)
	if role != models.RoleAdmin {
		query = query.Where("host_id = ?", userID)
	}
	if err := query.First(&event).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Event not found or access denied")
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if req.EventDate.Before(time.Now()) {
		utils.SendValidationError(c, "Event date must be in the future")
		return
	}

	if req.MaxParticipants < event.BookedCount {
		utils.SendValidationError(c, "Cannot reduce max participants below confirmed bookings")
		return
	}

	minParticipants := req.MinParticipants
	if minParticipants == 0 {
		minParticipants = 1
	}

	status := event.Status
	if status == models.EventStatusOpen || status == models.EventStatusFull {
		if req.MaxParticipants <= event.BookedCount {
			status = models.EventStatusFull
		} else {
			status = models.EventStatusOpen
		}
	}

	updates := map[string]interface{}{
		"name":             req.Name,
		"category":         req.Category,
		"description":      req.Description,
		"event_date":       req.EventDate,
		"location":         req.Location,
		"min_participants": minParticipants,
		"max_participants": req.MaxParticipants,
		"joining_fee":      req.JoiningFee,
		"image_url":        req.ImageURL,
		"status":           status,
	}

	if err := ec.db.Model(&event).Updates(updates).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to update event")
		return
	}

	ec.cache.InvalidateEvent(c.Request.Context(), eventID)
	utils.SendData(c, gin.H{"message": "Event updated successfully"})
}

// DeleteEvent cancels an event. Bookings against it are cancelled too;
// refund handling is the host's responsibility outside the system.
func (ec *EventController) DeleteEvent(c *gin.Context) {
	userID := c.GetString("user_id")
	role := models.UserRole(c.GetString("role"))
	eventID := c.Param("id")

	var event models.Event
	query := ec.db.Where("id = ?", eventID)
	if role != models.RoleAdmin {
		query = query.Where("host_id = ?", userID)
	}
	if err := query.First(&event).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Event not found or access denied")
		return
	}

	err := ec.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Booking{}).
			Where("event_id = ? AND status IN ?", eventID,
				[]models.BookingStatus{models.BookingStatusPending, models.BookingStatusConfirmed}).
			Update("status", models.BookingStatusCancelled).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.PaymentIntent{}).
			Where("status = ? AND booking_id IN (?)", models.IntentStatusPending,
				tx.Model(&models.Booking{}).Select("id").Where("event_id = ?", eventID)).
			Update("status", models.IntentStatusExpired).Error; err != nil {
			return err
		}
		return tx.Model(&event).Update("status", models.EventStatusCancelled).Error
	})
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to cancel event")
		return
	}

	ec.cache.InvalidateEvent(c.Request.Context(), eventID)
	utils.SendData(c, gin.H{"message": "Event cancelled successfully"})
}

func (ec *EventController) GetMyEvents(c *gin.Context) {
	userID := c.GetString("user_id")

	var events []models.Event
	if err := ec.db.Where("host_id = ?", userID).Order("event_date ASC").Find(&events).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch hosted events")
		return
	}

	utils.SendData(c, events)
}
