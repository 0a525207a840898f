package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductCategories(t *testing.T) {
	assert.True(t, ValidProductCategory("Chair"))
	assert.True(t, ValidProductCategory("Other"))
	assert.False(t, ValidProductCategory(""))
	assert.False(t, ValidProductCategory("chair"))
	assert.False(t, ValidProductCategory("Spaceship"))
}

func TestGalleryCategoryAllowsEmpty(t *testing.T) {
	assert.True(t, ValidGalleryCategory(""))
	assert.True(t, ValidGalleryCategory("Wardrobe"))
	assert.False(t, ValidGalleryCategory("Chairs"))
}

func TestValidRating(t *testing.T) {
	assert.False(t, ValidRating(0))
	assert.True(t, ValidRating(1))
	assert.True(t, ValidRating(5))
	assert.False(t, ValidRating(6))
	assert.False(t, ValidRating(-1))
}

func TestPaymentMethodOptional(t *testing.T) {
	assert.True(t, ValidPaymentMethod(""))
	assert.True(t, ValidPaymentMethod("Bank Transfer"))
	assert.False(t, ValidPaymentMethod("Barter"))
}

func TestStatusEnums(t *testing.T) {
	assert.True(t, ValidOrderStatus(OrderCancelled))
	assert.False(t, ValidOrderStatus("Lost"))
	assert.True(t, ValidPaymentStatus(PaymentPartial))
	assert.False(t, ValidPaymentStatus("Unpaid"))
	assert.True(t, ValidInvoiceStatus(InvoiceOverdue))
	assert.False(t, ValidInvoiceStatus("Void"))
}
