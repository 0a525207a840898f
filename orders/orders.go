package orders

import (
	"context"
	"encoding/json"
	"errors"
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

type createOrderRequest struct {
	Customer        primitive.ObjectID `json:"customer"`
	Items           []models.OrderItem `json:"items"`
	Tax             float64            `json:"tax"`
	Discount        float64            `json:"discount"`
	AdvancePayment  float64            `json:"advancePayment"`
	PaymentStatus   string             `json:"paymentStatus"`
	DeliveryAddress *models.Address    `json:"deliveryAddress"`
	Notes           string             `json:"notes"`
}

// GET /api/orders
func GetOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
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

	skip, limit := utils.ParsePagination(r, 100, 500)
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetSkip(skip).SetLimit(limit)
	orders, err := utils.FindAndDecode[models.Order](ctx, db.OrdersCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, orders)
}

// GET /api/orders/:id
func GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	var order models.Order
	if err := db.OrdersCollection.FindOne(r.Context(), bson.M{"_id": id}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, order)
}

// POST /api/orders
//
// Resolves every product before anything is written; the order document is
// only inserted once all line items priced out. Stock is never checked or
// decremented.
func CreateOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order data")
		return
	}
	if req.Customer.IsZero() {
		utils.RespondWithError(w, http.StatusBadRequest, "Customer is required")
		return
	}
	if len(req.Items) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "At least one item is required")
		return
	}
	if req.PaymentStatus != "" && !models.ValidPaymentStatus(req.PaymentStatus) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payment status")
		return
	}

	ctx := r.Context()
	items, subtotal, err := resolveItems(ctx, req.Items, lookupProduct)
	if err != nil {
		var notFound ErrProductNotFound
		if errors.As(err, &notFound) {
			utils.RespondWithError(w, http.StatusNotFound, notFound.Error())
			return
		}
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now()
	total := computeTotal(subtotal, req.Tax, req.Discount)

	order := models.Order{
		ID:              primitive.NewObjectID(),
		OrderNumber:     NewOrderNumber(now),
		Customer:        req.Customer,
		Items:           items,
		Subtotal:        subtotal,
		Tax:             req.Tax,
		Discount:        req.Discount,
		Total:           total,
		Status:          models.OrderPending,
		PaymentStatus:   derivePaymentStatus(req.AdvancePayment, total, req.PaymentStatus),
		AdvancePayment:  req.AdvancePayment,
		DeliveryAddress: req.DeliveryAddress,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := db.OrdersCollection.InsertOne(ctx, order); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	go mq.Emit(ctx, "order-created", mq.Index{EntityType: "order", EntityId: order.ID.Hex(), Method: "POST"})

	utils.RespondWithJSON(w, http.StatusCreated, order)
}

// PUT /api/orders/:id
//
// Direct field replacement. Totals are not re-validated and the order number
// is never regenerated.
func UpdateOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order id")
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

	var order models.Order
	err = db.OrdersCollection.FindOneAndUpdate(
		r.Context(),
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&order)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	go mq.Emit(r.Context(), "order-updated", mq.Index{EntityType: "order", EntityId: order.ID.Hex(), Method: "PUT"})

	utils.RespondWithJSON(w, http.StatusOK, order)
}

// DELETE /api/orders/:id
func DeleteOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	res, err := db.OrdersCollection.DeleteOne(r.Context(), bson.M{"_id": id})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	go mq.Emit(r.Context(), "order-deleted", mq.Index{EntityType: "order", EntityId: id.Hex(), Method: "DELETE"})

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Order deleted successfully"})
}

// sanitizeUpdate strips immutable fields in place and validates the status
// enums, returning an error message when a value is out of range. The order
// number is assigned once at creation and never regenerated.
func sanitizeUpdate(fields bson.M) string {
	delete(fields, "_id")
	delete(fields, "orderNumber")
	if s, ok := fields["status"].(string); ok && !models.ValidOrderStatus(s) {
		return "Invalid order status"
	}
	if s, ok := fields["paymentStatus"].(string); ok && !models.ValidPaymentStatus(s) {
		return "Invalid payment status"
	}
	return ""
}

func lookupProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	if err := db.ProductsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		return nil, err
	}
	return &product, nil
}
