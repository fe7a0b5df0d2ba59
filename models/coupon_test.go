// File: /models/coupon_test.go
package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validCoupon(couponType CouponType, discount float64) Coupon {
	return Coupon{
		Code:      "TEST",
		Type:      couponType,
		Discount:  discount,
		ValidFrom: time.Now().Add(-time.Hour),
		ValidTo:   time.Now().Add(time.Hour),
		Active:    true,
	}
}

func TestCouponApplyPercentage(t *testing.T) {
	coupon := validCoupon(CouponTypePercentage, 20)

	discount, finalAmount := coupon.Apply(1000)

	assert.Equal(t, 200.0, discount)
	assert.Equal(t, 800.0, finalAmount)
}

func TestCouponApplyFixed(t *testing.T) {
	coupon := validCoupon(CouponTypeFixed, 100)

	discount, finalAmount := coupon.Apply(1000)

	assert.Equal(t, 100.0, discount)
	assert.Equal(t, 900.0, finalAmount)
}

func TestCouponApplyFixedNeverExceedsSubtotal(t *testing.T) {
	coupon := validCoupon(CouponTypeFixed, 100)

	discount, finalAmount := coupon.Apply(60)

	assert.Equal(t, 60.0, discount)
	assert.Equal(t, 0.0, finalAmount)
}

func TestCouponApplyFinalAmountNeverNegative(t *testing.T) {
	for _, subtotal := range []float64{0, 50, 99.99, 100, 5000} {
		for _, coupon := range []Coupon{
			validCoupon(CouponTypePercentage, 100),
			validCoupon(CouponTypeFixed, 10000),
		} {
			discount, finalAmount := coupon.Apply(subtotal)
			assert.GreaterOrEqual(t, finalAmount, 0.0)
			assert.LessOrEqual(t, discount, subtotal)
		}
	}
}

func TestCouponUsableWindow(t *testing.T) {
	coupon := validCoupon(CouponTypeFixed, 50)
	now := time.Now()

	assert.True(t, coupon.Usable("any-event", now))
	assert.False(t, coupon.Usable("any-event", now.Add(2*time.Hour)), "expired")
	assert.False(t, coupon.Usable("any-event", now.Add(-2*time.Hour)), "not yet valid")

	coupon.Active = false
	assert.False(t, coupon.Usable("any-event", now), "deactivated")
}

func TestCouponUsableEventScope(t *testing.T) {
	eventID := "event-1"
	coupon := validCoupon(CouponTypeFixed, 50)
	coupon.EventID = &eventID

	assert.True(t, coupon.Usable("event-1", time.Now()))
	assert.False(t, coupon.Usable("event-2", time.Now()))
}
