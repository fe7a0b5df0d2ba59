// File: /controllers/admin_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"eventhub-api/models"
	"eventhub-api/services"
	"eventhub-api/utils"
)

type AdminController struct {
	db    *gorm.DB
	email *services.EmailService
}

func NewAdminController(db *gorm.DB, email *services.EmailService) *AdminController {
	return &AdminController{db: db, email: email}
}

func (ad *AdminController) GetHostRequests(c *gin.Context) {
	status := c.DefaultQuery("status", string(models.HostRequestPending))

	var requests []models.HostRequest
	if err := ad.db.Preload("User").Where("status = ?", status).
		Order("created_at ASC").Find(&requests).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch host requests")
		return
	}

	for i := range requests {
		requests[i].User.Password = ""
	}

	utils.SendData(c, requests)
}

type DecideHostRequestRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note"`
}

// DecideHostRequest approves or rejects a pending host request. Approval
// promotes the user to HOST; either way the user is emailed the outcome.
func (ad *AdminController) DecideHostRequest(c *gin.Context) {
	requestID := c.Param("id")

	var req DecideHostRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	var request models.HostRequest
	if err := ad.db.Preload("User").First(&request, "id = ?", requestID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Host request not found")
		return
	}

	if request.Status != models.HostRequestPending {
		utils.SendError(c, http.StatusConflict, "Host request has already been decided")
		return
	}

	status := models.HostRequestRejected
	if req.Approve {
		status = models.HostRequestApproved
	}

	err := ad.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&request).Updates(map[string]interface{}{
			"status": status,
			"note":   req.Note,
		}).Error; err != nil {
			return err
		}
		if !req.Approve {
			return nil
		}
		return tx.Model(&models.User{}).Where("id = ?", request.UserID).
			Update("role", models.RoleHost).Error
	})
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to decide host request")
		return
	}

	request.Status = status
	request.Note = req.Note
	go ad.email.SendHostRequestDecision(&request.User, &request)

	utils.SendData(c, request)
}

func (ad *AdminController) GetUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := ad.db.Model(&models.User{})
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ? OR email LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	var users []models.User
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	utils.SendPaginated(c, users, page, limit, total)
}

type UpdateUserStatusRequest struct {
	Status models.UserStatus `json:"status" binding:"required,oneof=ACTIVE SUSPENDED"`
}

func (ad *AdminController) UpdateUserStatus(c *gin.Context) {
	adminID := c.GetString("user_id")
	userID := c.Param("id")

	if adminID == userID {
		utils.SendValidationError(c, "You cannot change your own account status")
		return
	}

	var req UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	var user models.User
	if err := ad.db.First(&user, "id = ?", userID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "User not found")
		return
	}

	if err := ad.db.Model(&user).Update("status", req.Status).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to update user status")
		return
	}

	utils.SendData(c, gin.H{"message": "User status updated successfully"})
}
