package products

import (
	"context"
	"encoding/json"
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

// GET /api/products
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if c := r.URL.Query().Get("category"); c != "" {
		filter["category"] = c
	}
	if s := r.URL.Query().Get("search"); s != "" {
		filter["name"] = utils.RegexFilter("name", s)["name"]
	}

	sort := utils.ParseSort(r.URL.Query().Get("sort"), bson.D{{Key: "createdAt", Value: -1}}, map[string]bson.D{
		"price_asc":  {{Key: "price", Value: 1}},
		"price_desc": {{Key: "price", Value: -1}},
		"name_asc":   {{Key: "name", Value: 1}},
		"name_desc":  {{Key: "name", Value: -1}},
	})
	skip, limit := utils.ParsePagination(r, 100, 500)
	opts := options.Find().SetSort(sort).SetSkip(skip).SetLimit(limit)

	products, err := utils.FindAndDecode[models.Product](ctx, db.ProductsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, products)
}

// GET /api/products/:id
func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	var product models.Product
	if err := db.ProductsCollection.FindOne(r.Context(), bson.M{"_id": id}).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, product)
}

// POST /api/products
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid product data")
		return
	}

	if msg := validate(&product); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	product.ID = primitive.NewObjectID()
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt

	if _, err := db.ProductsCollection.InsertOne(r.Context(), product); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	go mq.Emit(r.Context(), "product-created", mq.Index{EntityType: "product", EntityId: product.ID.Hex(), Method: "POST"})

	utils.RespondWithJSON(w, http.StatusCreated, product)
}

// PUT /api/products/:id
func UpdateProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	var fields bson.M
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid update data")
		return
	}
	delete(fields, "_id")
	if c, ok := fields["category"].(string); ok && !models.ValidProductCategory(c) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid product category")
		return
	}
	if p, ok := fields["price"].(float64); ok && p < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Price must be non-negative")
		return
	}
	fields["updatedAt"] = time.Now()

	var product models.Product
	err = db.ProductsCollection.FindOneAndUpdate(
		r.Context(),
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&product)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	go mq.Emit(r.Context(), "product-updated", mq.Index{EntityType: "product", EntityId: product.ID.Hex(), Method: "PUT"})

	utils.RespondWithJSON(w, http.StatusOK, product)
}

// DELETE /api/products/:id
func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	res, err := db.ProductsCollection.DeleteOne(r.Context(), bson.M{"_id": id})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	go mq.Emit(r.Context(), "product-deleted", mq.Index{EntityType: "product", EntityId: id.Hex(), Method: "DELETE"})

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

func validate(p *models.Product) string {
	if p.Name == "" {
		return "Product name is required"
	}
	if !models.ValidProductCategory(p.Category) {
		return "Invalid product category"
	}
	if p.Price < 0 {
		return "Price must be non-negative"
	}
	if p.Stock < 0 {
		return "Stock must be non-negative"
	}
	return ""
}
