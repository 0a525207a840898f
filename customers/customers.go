package customers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"furnish/db"
	"furnish/models"
	"furnish/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GET /api/customers
func GetCustomers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if s := r.URL.Query().Get("search"); s != "" {
		filter["$or"] = []bson.M{
			utils.RegexFilter("name", s),
			utils.RegexFilter("phone", s),
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	customers, err := utils.FindAndDecode[models.Customer](ctx, db.CustomersCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, customers)
}

// GET /api/customers/:id
func GetCustomer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid customer id")
		return
	}

	var customer models.Customer
	if err := db.CustomersCollection.FindOne(r.Context(), bson.M{"_id": id}).Decode(&customer); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Customer not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, customer)
}

// POST /api/customers
func CreateCustomer(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var customer models.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid customer data")
		return
	}
	if customer.Name == "" || customer.Phone == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name and phone are required")
		return
	}

	customer.ID = primitive.NewObjectID()
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = customer.CreatedAt

	if _, err := db.CustomersCollection.InsertOne(r.Context(), customer); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, customer)
}

// PUT /api/customers/:id
func UpdateCustomer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid customer id")
		return
	}

	var fields bson.M
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid update data")
		return
	}
	delete(fields, "_id")
	if name, ok := fields["name"].(string); ok && name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name cannot be empty")
		return
	}
	if phone, ok := fields["phone"].(string); ok && phone == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Phone cannot be empty")
		return
	}
	fields["updatedAt"] = time.Now()

	var customer models.Customer
	err = db.CustomersCollection.FindOneAndUpdate(
		r.Context(),
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&customer)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Customer not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, customer)
}

// DELETE /api/customers/:id
func DeleteCustomer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid customer id")
		return
	}

	res, err := db.CustomersCollection.DeleteOne(r.Context(), bson.M{"_id": id})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Customer not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Customer deleted successfully"})
}
