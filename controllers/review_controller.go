// File: /controllers/review_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventhub-api/models"
	"eventhub-api/utils"
)

type ReviewController struct {
	db *gorm.DB
}

func NewReviewController(db *gorm.DB) *ReviewController {
	return &ReviewController{db: db}
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// CreateReview lets attendees review an event. Only users holding a
// confirmed or completed booking may review, once per event.
func (rc *ReviewController) CreateReview(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if !utils.IsValidRating(req.Rating) {
		utils.SendValidationError(c, "Rating must be between 1 and 5")
		return
	}

	var event models.Event
	if err := rc.db.First(&event, "id = ?", eventID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Event not found")
		return
	}

	var booking models.Booking
	if err := rc.db.Where("user_id = ? AND event_id = ? AND status IN ?",
		userID, eventID,
		[]models.BookingStatus{models.BookingStatusConfirmed, models.BookingStatusCompleted}).
		First(&booking).Error; err != nil {
		utils.SendError(c, http.StatusForbidden, "Only attendees can review this event")
		return
	}

	var existing models.Review
	if err := rc.db.Where("user_id = ? AND event_id = ?", userID, eventID).First(&existing).Error; err == nil {
		utils.SendError(c, http.StatusConflict, "You have already reviewed this event")
		return
	}

	review := models.Review{
		ID:      uuid.New().String(),
		UserID:  userID,
		EventID: eventID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}

	if err := rc.db.Create(&review).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to create review")
		return
	}

	utils.SendCreated(c, review)
}

func (rc *ReviewController) GetEventReviews(c *gin.Context) {
	eventID := c.Param("id")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	offset := (page - 1) * limit

	query := rc.db.Model(&models.Review{}).Where("event_id = ?", eventID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch reviews")
		return
	}

	var reviews []models.Review
	if err := query.Preload("User").Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&reviews).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch reviews")
		return
	}

	// Strip password hashes from preloaded users
	for i := range reviews {
		reviews[i].User.Password = ""
	}

	utils.SendPaginated(c, reviews, page, limit, total)
}

func (rc *ReviewController) DeleteReview(c *gin.Context) {
	userID := c.GetString("user_id")
	role := models.UserRole(c.GetString("role"))
	reviewID := c.Param("id")

	var review models.Review
	query := rc.db.Where("id = ?", reviewID)
	if role != models.RoleAdmin {
		query = query.Where("user_id = ?", userID)
	}
	if err := query.First(&review).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Review not found or access denied")
		return
	}

	if err := rc.db.Delete(&review).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to delete review")
		return
	}

	utils.SendData(c, gin.H{"message": "Review deleted successfully"})
}
