// File: /client/pricing.go
package client

import (
	"eventhub-api/models"
)

// PriceQuote is the price breakdown shown before a booking is submitted.
// It is computed locally from the unit price and quantity, except that
// discount and final amount come verbatim from a server-validated coupon
// result; the client never recomputes backend discount rules.
type PriceQuote struct {
	UnitPrice     float64
	Quantity      int
	Subtotal      float64
	Discount      float64
	FinalAmount   float64
	CouponApplied bool
}

// ComputeQuote builds a quote. With no coupon, discount is 0 and the
// final amount equals the subtotal. Pure, no side effects.
func ComputeQuote(unitPrice float64, quantity int, coupon *models.CouponValidationResult) PriceQuote {
	subtotal := unitPrice * float64(quantity)

	quote := PriceQuote{
		UnitPrice:   unitPrice,
		Quantity:    quantity,
		Subtotal:    subtotal,
		FinalAmount: subtotal,
	}

	if coupon != nil {
		quote.Discount = coupon.Discount
		quote.FinalAmount = coupon.FinalAmount
		quote.CouponApplied = true
	}

	return quote
}

// IsFree reports whether the quote requires no payment; free events skip
// the quantity selector, coupon input and payment dialog entirely.
func (q PriceQuote) IsFree() bool {
	return q.UnitPrice == 0
}

// ShowDiscountLine reports whether a discount line should be rendered.
func (q PriceQuote) ShowDiscountLine() bool {
	return q.CouponApplied && q.Discount > 0
}
