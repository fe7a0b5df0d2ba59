// File: /controllers/user_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventhub-api/models"
	"eventhub-api/utils"
)

type UserController struct {
	db *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{db: db}
}

func (uc *UserController) GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var user models.User
	if err := uc.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}

	utils.SendData(c, user)
}

type UpdateProfileRequest struct {
	Name   string  `json:"name" binding:"required"`
	Avatar *string `json:"avatar"`
}

func (uc *UserController) UpdateProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	var user models.User
	if err := uc.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}

	updates := map[string]interface{}{
		"name":   req.Name,
		"avatar": req.Avatar,
	}
	if err := uc.db.Model(&user).Updates(updates).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	utils.SendData(c, gin.H{"message": "Profile updated successfully"})
}

type CreateHostRequestRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// CreateHostRequest submits an application to become an event host.
func (uc *UserController) CreateHostRequest(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateHostRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	var user models.User
	if err := uc.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}
	if user.Role != models.RoleUser {
		utils.SendError(c, http.StatusConflict, "You are already a host")
		return
	}

	var pending models.HostRequest
	if err := uc.db.Where("user_id = ? AND status = ?", userID, models.HostRequestPending).
		First(&pending).Error; err == nil {
		utils.SendError(c, http.StatusConflict, "You already have a pending host request")
		return
	}

	request := models.HostRequest{
		ID:     uuid.New().String(),
		UserID: userID,
		Status: models.HostRequestPending,
		Reason: req.Reason,
	}

	if err := uc.db.Create(&request).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to submit host request")
		return
	}

	utils.SendCreated(c, request)
}
