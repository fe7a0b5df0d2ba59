// File: /utils/validators_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("user@eventhub.com"))
	assert.True(t, IsValidEmail("first.last+tag@sub.domain.org"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("missing@tld"))
	assert.False(t, IsValidEmail(""))
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("Abcdef1"))
	assert.True(t, IsValidPassword("abcdef1!"))
	assert.False(t, IsValidPassword("abc1"), "too short")
	assert.False(t, IsValidPassword("abcdefgh"), "only one character type")
}

func TestIsValidCouponCode(t *testing.T) {
	assert.True(t, IsValidCouponCode("WELCOME20"))
	assert.True(t, IsValidCouponCode("SAVE10"))
	assert.False(t, IsValidCouponCode("welcome20"), "lowercase")
	assert.False(t, IsValidCouponCode("AB"), "too short")
	assert.False(t, IsValidCouponCode("HAS SPACE"))
}

func TestIsValidRating(t *testing.T) {
	for rating := 1; rating <= 5; rating++ {
		assert.True(t, IsValidRating(rating))
	}
	assert.False(t, IsValidRating(0))
	assert.False(t, IsValidRating(6))
}

func TestIsValidQuantity(t *testing.T) {
	assert.True(t, IsValidQuantity(1))
	assert.True(t, IsValidQuantity(10))
	assert.False(t, IsValidQuantity(0))
	assert.False(t, IsValidQuantity(-2))
}
