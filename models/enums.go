package models

import "slices"

// Order statuses
const (
	OrderPending    = "Pending"
	OrderConfirmed  = "Confirmed"
	OrderProcessing = "Processing"
	OrderShipped    = "Shipped"
	OrderDelivered  = "Delivered"
	OrderCancelled  = "Cancelled"
)

// Payment statuses
const (
	PaymentPending  = "Pending"
	PaymentPaid     = "Paid"
	PaymentPartial  = "Partial"
	PaymentRefunded = "Refunded"
)

// Invoice statuses
const (
	InvoiceDraft     = "Draft"
	InvoiceSent      = "Sent"
	InvoicePaid      = "Paid"
	InvoiceOverdue   = "Overdue"
	InvoiceCancelled = "Cancelled"
)

var ProductCategories = []string{"Chair", "Table", "Sofa", "Bed", "Cabinet", "Desk", "Other"}

// Gallery categories allow empty for uncategorized images.
var GalleryCategories = []string{"", "Sofa", "Bed", "Chair", "Table", "Cabinet", "Desk", "Wardrobe", "Other"}

var OrderStatuses = []string{OrderPending, OrderConfirmed, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled}

var PaymentStatuses = []string{PaymentPending, PaymentPaid, PaymentPartial, PaymentRefunded}

var InvoiceStatuses = []string{InvoiceDraft, InvoiceSent, InvoicePaid, InvoiceOverdue, InvoiceCancelled}

var PaymentMethods = []string{"Cash", "Card", "Bank Transfer", "UPI", "Other"}

func ValidProductCategory(c string) bool {
	return slices.Contains(ProductCategories, c)
}

func ValidGalleryCategory(c string) bool {
	return slices.Contains(GalleryCategories, c)
}

func ValidOrderStatus(s string) bool {
	return slices.Contains(OrderStatuses, s)
}

func ValidPaymentStatus(s string) bool {
	return slices.Contains(PaymentStatuses, s)
}

func ValidInvoiceStatus(s string) bool {
	return slices.Contains(InvoiceStatuses, s)
}

func ValidPaymentMethod(m string) bool {
	return m == "" || slices.Contains(PaymentMethods, m)
}

func ValidRating(r int) bool {
	return r >= 1 && r <= 5
}
