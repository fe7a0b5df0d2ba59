// File: /controllers/coupon_controller.go
package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventhub-api/models"
	"eventhub-api/utils"
)

type CouponController struct {
	db *gorm.DB
}

func NewCouponController(db *gorm.DB) *CouponController {
	return &CouponController{db: db}
}

type ValidateCouponRequest struct {
	Code     string `json:"code" binding:"required"`
	EventID  string `json:"event_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

// ValidateCoupon checks a code against an event and quantity and returns
// the server-computed discount and final amount. The result is only
// valid for the submitted quantity; clients must re-validate after any
// quantity change.
func (cc *CouponController) ValidateCoupon(c *gin.Context) {
	var req ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	var event models.Event
	if err := cc.db.First(&event, "id = ?", req.EventID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Event not found")
		return
	}

	if event.IsFree() {
		utils.SendValidationError(c, "Coupons cannot be applied to free events")
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	var coupon models.Coupon
	if err := cc.db.Where("code = ?", code).First(&coupon).Error; err != nil {
		utils.SendValidationError(c, "Invalid or expired coupon code")
		return
	}
	if !coupon.Usable(event.ID, time.Now()) {
		utils.SendValidationError(c, "Invalid or expired coupon code")
		return
	}

	subtotal := event.JoiningFee * float64(req.Quantity)
	discount, finalAmount := coupon.Apply(subtotal)

	utils.SendData(c, models.CouponValidationResult{
		Coupon: models.CouponInfo{
			Code:     coupon.Code,
			Type:     coupon.Type,
			Discount: coupon.Discount,
		},
		Subtotal:    subtotal,
		Discount:    discount,
		FinalAmount: finalAmount,
	})
}

type CreateCouponRequest struct {
	Code      string            `json:"code" binding:"required"`
	Type      models.CouponType `json:"type" binding:"required,oneof=PERCENTAGE FIXED"`
	Discount  float64           `json:"discount" binding:"required,gt=0"`
	EventID   *string           `json:"event_id"`
	ValidFrom time.Time         `json:"valid_from"`
	ValidTo   time.Time         `json:"valid_to" binding:"required"`
}

func (cc *CouponController) CreateCoupon(c *gin.Context) {
	var req CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if !utils.IsValidCouponCode(code) {
		utils.SendValidationError(c, "Coupon code must be 3-50 uppercase letters or digits")
		return
	}

	if req.Type == models.CouponTypePercentage && req.Discount > 100 {
		utils.SendValidationError(c, "Percentage discount cannot exceed 100")
		return
	}

	var existing models.Coupon
	if err := cc.db.Where("code = ?", code).First(&existing).Error; err == nil {
		utils.SendError(c, http.StatusConflict, "Coupon code already exists")
		return
	}

	validFrom := req.ValidFrom
	if validFrom.IsZero() {
		validFrom = time.Now()
	}

	coupon := models.Coupon{
		ID:        uuid.New().String(),
		Code:      code,
		Type:      req.Type,
		Discount:  req.Discount,
		EventID:   req.EventID,
		ValidFrom: validFrom,
		ValidTo:   req.ValidTo,
		Active:    true,
	}

	if err := cc.db.Create(&coupon).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to create coupon")
		return
	}

	utils.SendCreated(c, coupon)
}

func (cc *CouponController) GetCoupons(c *gin.Context) {
	var coupons []models.Coupon
	if err := cc.db.Order("created_at DESC").Find(&coupons).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to fetch coupons")
		return
	}

	utils.SendData(c, coupons)
}

func (cc *CouponController) DeleteCoupon(c *gin.Context) {
	couponID := c.Param("id")

	var coupon models.Coupon
	if err := cc.db.First(&coupon, "id = ?", couponID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Coupon not found")
		return
	}

	// Deactivate rather than delete so existing bookings keep their code
	if err := cc.db.Model(&coupon).Update("active", false).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to deactivate coupon")
		return
	}

	utils.SendData(c, gin.H{"message": "Coupon deactivated successfully"})
}
