package orders

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"furnish/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func stubLookup(prices map[primitive.ObjectID]float64) productLookup {
	return func(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
		price, ok := prices[id]
		if !ok {
			return nil, fmt.Errorf("not found")
		}
		return &models.Product{ID: id, Name: "Teak Chair", Price: price}, nil
	}
}

func TestResolveItemsSnapshotsPrices(t *testing.T) {
	chair := primitive.NewObjectID()
	table := primitive.NewObjectID()
	lookup := stubLookup(map[primitive.ObjectID]float64{chair: 1000, table: 500})

	items, subtotal, err := resolveItems(context.Background(), []models.OrderItem{
		{Product: chair, Quantity: 3},
		{Product: table, Quantity: 1},
	}, lookup)

	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, float64(3500), subtotal)
	assert.Equal(t, float64(1000), items[0].Price)
	assert.Equal(t, float64(3000), items[0].Subtotal)
	assert.Equal(t, float64(500), items[1].Subtotal)
}

func TestResolveItemsMissingProductAbortsAll(t *testing.T) {
	chair := primitive.NewObjectID()
	missing := primitive.NewObjectID()
	lookup := stubLookup(map[primitive.ObjectID]float64{chair: 1000})

	items, subtotal, err := resolveItems(context.Background(), []models.OrderItem{
		{Product: chair, Quantity: 1},
		{Product: missing, Quantity: 2},
	}, lookup)

	assert.Nil(t, items)
	assert.Zero(t, subtotal)
	var notFound ErrProductNotFound
	assert.ErrorAs(t, err, &notFound)
	assert.Contains(t, err.Error(), missing.Hex())
}

func TestResolveItemsRejectsZeroQuantity(t *testing.T) {
	chair := primitive.NewObjectID()
	lookup := stubLookup(map[primitive.ObjectID]float64{chair: 1000})

	_, _, err := resolveItems(context.Background(), []models.OrderItem{
		{Product: chair, Quantity: 0},
	}, lookup)

	assert.Error(t, err)
}

func TestComputeTotal(t *testing.T) {
	assert.Equal(t, float64(3050), computeTotal(3000, 100, 50))
	assert.Equal(t, float64(3000), computeTotal(3000, 0, 0))
	assert.Equal(t, float64(2950), computeTotal(3000, 0, 50))
}

func TestDerivePaymentStatus(t *testing.T) {
	tests := []struct {
		name      string
		advance   float64
		total     float64
		requested string
		want      string
	}{
		{"full advance is paid", 3050, 3050, "", models.PaymentPaid},
		{"overpayment is paid", 4000, 3050, "", models.PaymentPaid},
		{"partial advance", 1000, 3050, "", models.PaymentPartial},
		{"no advance defaults pending", 0, 3050, "", models.PaymentPending},
		{"no advance keeps requested", 0, 3050, models.PaymentRefunded, models.PaymentRefunded},
		{"partial wins over requested", 1, 3050, models.PaymentRefunded, models.PaymentPartial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, derivePaymentStatus(tt.advance, tt.total, tt.requested))
		})
	}
}

func TestNewOrderNumberFormat(t *testing.T) {
	now := time.Now()
	re := regexp.MustCompile(fmt.Sprintf(`^ORD-%d-\d{1,3}$`, now.UnixMilli()))

	for i := 0; i < 50; i++ {
		n := NewOrderNumber(now)
		assert.Regexp(t, re, n)
	}
}

func TestSanitizeUpdateKeepsOrderNumberImmutable(t *testing.T) {
	fields := bson.M{
		"_id":         "anything",
		"orderNumber": "ORD-1-99",
		"status":      models.OrderShipped,
	}

	assert.Empty(t, sanitizeUpdate(fields))
	assert.NotContains(t, fields, "orderNumber")
	assert.NotContains(t, fields, "_id")
	assert.Equal(t, models.OrderShipped, fields["status"])

	assert.Equal(t, "Invalid order status", sanitizeUpdate(bson.M{"status": "Lost"}))
	assert.Equal(t, "Invalid payment status", sanitizeUpdate(bson.M{"paymentStatus": "Maybe"}))
}
