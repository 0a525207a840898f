package invoices

import (
	"context"
	"fmt"
	rndm "math/rand"
	"time"

	"furnish/db"

	"go.mongodb.org/mongo-driver/bson"
)

type invoiceCounter func(ctx context.Context) (int64, error)

// countInvoices is the production counter; swapped in tests.
var countInvoices invoiceCounter = func(ctx context.Context) (int64, error) {
	return db.InvoicesCollection.CountDocuments(ctx, bson.M{})
}

// NewInvoiceNumber forms "INV-<millis>-<count+1>" from the current invoice
// count. When the count query fails it falls back to a random suffix instead
// of failing the write; the unique index on invoiceNumber is the backstop.
func NewInvoiceNumber(ctx context.Context, count invoiceCounter, now time.Time) string {
	n, err := count(ctx)
	if err != nil {
		return fallbackInvoiceNumber(now)
	}
	return fmt.Sprintf("INV-%d-%d", now.UnixMilli(), n+1)
}

func fallbackInvoiceNumber(now time.Time) string {
	return fmt.Sprintf("INV-%d-%d", now.UnixMilli(), rndm.Intn(1000))
}
