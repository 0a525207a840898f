package faqs

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

// Swappable for tests.
var insertFAQ = func(ctx context.Context, faq *models.FAQ) error {
	_, err := db.FAQsCollection.InsertOne(ctx, faq)
	return err
}

// GET /api/faqs — active only unless ?all=true (admin view).
func GetFAQs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{"isActive": true}
	if r.URL.Query().Get("all") == "true" {
		filter = bson.M{}
	}

	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "createdAt", Value: -1}})
	faqs, err := utils.FindAndDecode[models.FAQ](ctx, db.FAQsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondWithData(w, http.StatusOK, faqs)
}

// GET /api/faqs/:id
func GetFAQ(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid FAQ id")
		return
	}

	var faq models.FAQ
	if err := db.FAQsCollection.FindOne(r.Context(), bson.M{"_id": id}).Decode(&faq); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "FAQ not found")
		return
	}

	utils.RespondWithData(w, http.StatusOK, faq)
}

// POST /api/faqs (admin)
func CreateFAQ(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	// Active by default; an explicit isActive:false in the body wins.
	faq := models.FAQ{IsActive: true}
	if err := json.NewDecoder(r.Body).Decode(&faq); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid FAQ data")
		return
	}
	if faq.Question == "" || faq.Answer == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Question and answer are required")
		return
	}

	faq.ID = primitive.NewObjectID()
	faq.CreatedAt = time.Now()
	faq.UpdatedAt = faq.CreatedAt

	if err := insertFAQ(r.Context(), &faq); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondWithData(w, http.StatusCreated, faq)
}

// PUT /api/faqs/:id (admin)
func UpdateFAQ(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid FAQ id")
		return
	}

	var fields bson.M
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid update data")
		return
	}
	delete(fields, "_id")
	fields["updatedAt"] = time.Now()

	var faq models.FAQ
	err = db.FAQsCollection.FindOneAndUpdate(
		r.Context(),
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&faq)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "FAQ not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondWithData(w, http.StatusOK, faq)
}

// DELETE /api/faqs/:id (admin)
func DeleteFAQ(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid FAQ id")
		return
	}

	res, err := db.FAQsCollection.DeleteOne(r.Context(), bson.M{"_id": id})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "FAQ not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "FAQ deleted successfully"})
}
