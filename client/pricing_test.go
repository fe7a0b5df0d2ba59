// File: /client/pricing_test.go
package client

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"eventhub-api/models"
)

func TestComputeQuoteWithoutCoupon(t *testing.T) {
	quote := ComputeQuote(500, 2, nil)

	assert.Equal(t, 1000.0, quote.Subtotal)
	assert.Equal(t, 0.0, quote.Discount)
	assert.Equal(t, 1000.0, quote.FinalAmount)
	assert.False(t, quote.CouponApplied)
	assert.False(t, quote.ShowDiscountLine())
}

func TestComputeQuoteSubtotalIsExact(t *testing.T) {
	for quantity := 1; quantity <= 10; quantity++ {
		quote := ComputeQuote(250, quantity, nil)
		assert.Equal(t, 250*float64(quantity), quote.Subtotal)
		assert.Equal(t, quote.Subtotal, quote.FinalAmount)
	}
}

func TestComputeQuoteDisplaysServerValuesVerbatim(t *testing.T) {
	// WELCOME20: 20% off a 1000 subtotal, as computed by the backend
	coupon := &models.CouponValidationResult{
		Coupon: models.CouponInfo{
			Code:     "WELCOME20",
			Type:     models.CouponTypePercentage,
			Discount: 20,
		},
		Subtotal:    1000,
		Discount:    200,
		FinalAmount: 800,
	}

	quote := ComputeQuote(1000, 1, coupon)

	assert.Equal(t, 1000.0, quote.Subtotal)
	assert.Equal(t, 200.0, quote.Discount)
	assert.Equal(t, 800.0, quote.FinalAmount)
	assert.True(t, quote.ShowDiscountLine())
}

func TestComputeQuoteZeroDiscountCouponHidesDiscountLine(t *testing.T) {
	coupon := &models.CouponValidationResult{
		Coupon:      models.CouponInfo{Code: "NOOP", Type: models.CouponTypeFixed, Discount: 0},
		Subtotal:    500,
		Discount:    0,
		FinalAmount: 500,
	}

	quote := ComputeQuote(500, 1, coupon)

	assert.True(t, quote.CouponApplied)
	assert.False(t, quote.ShowDiscountLine())
}

func TestComputeQuoteFreeEvent(t *testing.T) {
	quote := ComputeQuote(0, 3, nil)

	assert.True(t, quote.IsFree())
	assert.Equal(t, 0.0, quote.Subtotal)
	assert.Equal(t, 0.0, quote.FinalAmount)
}
