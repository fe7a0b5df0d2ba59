// File: /models/coupon.go
package models

import (
	"time"
)

type CouponType string

const (
	CouponTypePercentage CouponType = "PERCENTAGE"
	CouponTypeFixed      CouponType = "FIXED"
)

type Coupon struct {
	ID        string     `json:"id" gorm:"primaryKey;size:191"`
	Code      string     `json:"code" gorm:"uniqueIndex;not null;size:50"`
	Type      CouponType `json:"type" gorm:"not null;size:20"`
	Discount  float64    `json:"discount" gorm:"not null"` // percent or fixed amount
	EventID   *string    `json:"event_id,omitempty" gorm:"size:191;index"` // nil = any event
	ValidFrom time.Time  `json:"valid_from"`
	ValidTo   time.Time  `json:"valid_to"`
	Active    bool       `json:"active" gorm:"default:true"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Usable reports whether the coupon may be applied to the given event at
// the given time.
func (cp *Coupon) Usable(eventID string, now time.Time) bool {
	if !cp.Active {
		return false
	}
	if now.Before(cp.ValidFrom) || now.After(cp.ValidTo) {
		return false
	}
	if cp.EventID != nil && *cp.EventID != eventID {
		return false
	}
	return true
}

// Apply computes the discount and final amount for a subtotal. The
// discount never exceeds the subtotal, so the final amount is never
// negative.
func (cp *Coupon) Apply(subtotal float64) (discount, finalAmount float64) {
	switch cp.Type {
	case CouponTypePercentage:
		discount = subtotal * cp.Discount / 100
	case CouponTypeFixed:
		discount = cp.Discount
	}
	if discount > subtotal {
		discount = subtotal
	}
	if discount < 0 {
		discount = 0
	}
	return discount, subtotal - discount
}

// CouponInfo is the coupon detail embedded in a validation response.
type CouponInfo struct {
	Code     string     `json:"code"`
	Type     CouponType `json:"type"`
	Discount float64    `json:"discount"`
}

// CouponValidationResult is the response body of POST /coupons/validate.
// Discount and FinalAmount are computed server-side for the exact
// quantity submitted; clients display them verbatim.
type CouponValidationResult struct {
	Coupon      CouponInfo `json:"coupon"`
	Subtotal    float64    `json:"subtotal"`
	Discount    float64    `json:"discount"`
	FinalAmount float64    `json:"final_amount"`
}
