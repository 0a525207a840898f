package invoices

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"furnish/db"
	"furnish/models"
	"furnish/mq"
	"furnish/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store accessors behind function vars so the invoice lifecycle is testable
// without a live connection, same shape as middleware.ReadyFunc.
var (
	findOrder = func(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
		var order models.Order
		if err := db.OrdersCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
			return nil, err
		}
		return &order, nil
	}
	findInvoiceForOrder = func(ctx context.Context, orderID primitive.ObjectID) (*models.Invoice, error) {
		var invoice models.Invoice
		if err := db.InvoicesCollection.FindOne(ctx, bson.M{"order": orderID}).Decode(&invoice); err != nil {
			return nil, err
		}
		return &invoice, nil
	}
	insertInvoice = func(ctx context.Context, invoice *models.Invoice) error {
		_, err := db.InvoicesCollection.InsertOne(ctx, invoice)
		return err
	}
	lookupProduct = func(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
		var product models.Product
		if err := db.ProductsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
			return nil, err
		}
		return &product, nil
	}
)

type createInvoiceRequest struct {
	OrderID       primitive.ObjectID `json:"orderId"`
	Tax           float64            `json:"tax"`
	Discount      float64            `json:"discount"`
	DueDate       *time.Time         `json:"dueDate"`
	PaymentMethod string             `json:"paymentMethod"`
}

// GET /api/invoices
func GetInvoices(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if s := r.URL.Query().Get("status"); s != "" {
		filter["status"] = s
	}
	if c := r.URL.Query().Get("customerId"); c != "" {
		customerID, err := primitive.ObjectIDFromHex(c)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid customer id")
			return
		}
		filter["customer"] = customerID
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	invoices, err := utils.FindAndDecode[models.Invoice](ctx, db.InvoicesCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, invoices)
}

// GET /api/invoices/:id
func GetInvoice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid invoice id")
		return
	}

	var invoice models.Invoice
	if err := db.InvoicesCollection.FindOne(r.Context(), bson.M{"_id": id}).Decode(&invoice); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Invoice not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, invoice)
}

// POST /api/invoices
//
// Materializes an invoice from an existing order. The "one invoice per
// order" rule is a check-then-insert; the unique index on the order field
// turns the race into a write error rather than a duplicate.
func CreateInvoice(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req createInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid invoice data")
		return
	}
	if req.OrderID.IsZero() {
		utils.RespondWithError(w, http.StatusBadRequest, "orderId is required")
		return
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payment method")
		return
	}

	ctx := r.Context()

	order, err := findOrder(ctx, req.OrderID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	if _, err := findInvoiceForOrder(ctx, req.OrderID); err == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invoice already exists for this order")
		return
	} else if err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	items, err := snapshotItems(ctx, order)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	now := time.Now()
	invoice := models.Invoice{
		ID:            primitive.NewObjectID(),
		InvoiceNumber: NewInvoiceNumber(ctx, countInvoices, now),
		Order:         order.ID,
		Customer:      order.Customer,
		Items:         items,
		Subtotal:      order.Subtotal,
		Tax:           req.Tax,
		Discount:      req.Discount,
		Total:         deriveTotal(order.Subtotal, req.Tax, req.Discount),
		Status:        models.InvoiceDraft,
		DueDate:       req.DueDate,
		PaymentMethod: req.PaymentMethod,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := insertInvoice(ctx, &invoice); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	go mq.Emit(ctx, "invoice-created", mq.Index{EntityType: "invoice", EntityId: invoice.ID.Hex(), Method: "POST", ItemType: "order", ItemId: order.ID.Hex()})

	utils.RespondWithJSON(w, http.StatusCreated, invoice)
}

// PUT /api/invoices/:id
//
// When the update lands on status Paid with a paid date, the referenced
// order's paymentStatus is set to Paid in a second, independent write.
func UpdateInvoice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid invoice id")
		return
	}

	var fields bson.M
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid update data")
		return
	}
	if msg := sanitizeUpdate(fields); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}
	fields["updatedAt"] = time.Now()

	var invoice models.Invoice
	err = db.InvoicesCollection.FindOneAndUpdate(
		r.Context(),
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&invoice)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Invoice not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if invoice.Status == models.InvoicePaid && invoice.PaidDate != nil {
		_, err := db.OrdersCollection.UpdateOne(
			r.Context(),
			bson.M{"_id": invoice.Order},
			bson.M{"$set": bson.M{"paymentStatus": models.PaymentPaid, "updatedAt": time.Now()}},
		)
		if err != nil {
			log.Printf("Failed to mark order %s paid for invoice %s: %v", invoice.Order.Hex(), invoice.ID.Hex(), err)
		}
	}

	go mq.Emit(r.Context(), "invoice-updated", mq.Index{EntityType: "invoice", EntityId: invoice.ID.Hex(), Method: "PUT"})

	utils.RespondWithJSON(w, http.StatusOK, invoice)
}

// DELETE /api/invoices/:id
func DeleteInvoice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid invoice id")
		return
	}

	res, err := db.InvoicesCollection.DeleteOne(r.Context(), bson.M{"_id": id})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Invoice not found")
		return
	}

	go mq.Emit(r.Context(), "invoice-deleted", mq.Index{EntityType: "invoice", EntityId: id.Hex(), Method: "DELETE"})

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Invoice deleted successfully"})
}

// sanitizeUpdate strips immutable fields in place and validates the enum
// fields, returning an error message when a value is out of range. The
// invoice number is assigned once at creation and never regenerated.
func sanitizeUpdate(fields bson.M) string {
	delete(fields, "_id")
	delete(fields, "invoiceNumber")
	if s, ok := fields["status"].(string); ok && !models.ValidInvoiceStatus(s) {
		return "Invalid invoice status"
	}
	if m, ok := fields["paymentMethod"].(string); ok && !models.ValidPaymentMethod(m) {
		return "Invalid payment method"
	}
	return ""
}

// deriveTotal: the invoice carries its own tax and discount, independent of
// whatever the order stored.
func deriveTotal(orderSubtotal, tax, discount float64) float64 {
	return orderSubtotal + tax - discount
}

// snapshotItems copies the order's resolved lines, resolving product names
// at invoice-creation time. Deleted products keep the line with a generic
// name; the financial figures come from the order, never recomputed.
func snapshotItems(ctx context.Context, order *models.Order) ([]models.InvoiceItem, error) {
	items := make([]models.InvoiceItem, 0, len(order.Items))
	for _, line := range order.Items {
		name := "Custom furniture"
		description := "Custom size / material"

		product, err := lookupProduct(ctx, line.Product)
		if err == nil {
			name = product.Name
			if product.Description != "" {
				description = product.Description
			}
		} else if err != mongo.ErrNoDocuments {
			return nil, err
		}

		items = append(items, models.InvoiceItem{
			ProductName: name,
			Description: description,
			Quantity:    line.Quantity,
			Price:       line.Price,
			Subtotal:    line.Subtotal,
		})
	}
	return items, nil
}
