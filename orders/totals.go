package orders

import (
	"context"
	"fmt"

	"furnish/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrProductNotFound aborts order creation; no partial order is written.
type ErrProductNotFound struct {
	ProductID string
}

func (e ErrProductNotFound) Error() string {
	return fmt.Sprintf("Product %s not found", e.ProductID)
}

type productLookup func(ctx context.Context, id primitive.ObjectID) (*models.Product, error)

// resolveItems snapshots each product's current price into the order line.
// Any missing product fails the whole set.
func resolveItems(ctx context.Context, requested []models.OrderItem, lookup productLookup) ([]models.OrderItem, float64, error) {
	var subtotal float64
	items := make([]models.OrderItem, 0, len(requested))

	for _, item := range requested {
		if item.Quantity < 1 {
			return nil, 0, fmt.Errorf("Quantity must be at least 1")
		}

		product, err := lookup(ctx, item.Product)
		if err != nil {
			return nil, 0, ErrProductNotFound{ProductID: item.Product.Hex()}
		}

		itemSubtotal := product.Price * float64(item.Quantity)
		subtotal += itemSubtotal

		items = append(items, models.OrderItem{
			Product:  item.Product,
			Quantity: item.Quantity,
			Price:    product.Price,
			Subtotal: itemSubtotal,
		})
	}

	return items, subtotal, nil
}

// computeTotal applies caller-supplied tax and discount to the item subtotal.
func computeTotal(subtotal, tax, discount float64) float64 {
	return subtotal + tax - discount
}

// derivePaymentStatus classifies the advance payment against the total:
// fully covered is Paid, anything in between is Partial, otherwise the
// requested status (default Pending) stands.
func derivePaymentStatus(advancePayment, total float64, requested string) string {
	switch {
	case advancePayment >= total:
		return models.PaymentPaid
	case advancePayment > 0:
		return models.PaymentPartial
	case requested != "":
		return requested
	default:
		return models.PaymentPending
	}
}
