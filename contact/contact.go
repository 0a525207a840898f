package contact

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
var insertMessage = func(ctx context.Context, msg *models.ContactMessage) error {
	_, err := db.ContactCollection.InsertOne(ctx, msg)
	return err
}

// GET /api/contact (admin, latest first)
func GetMessages(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	messages, err := utils.FindAndDecode[models.ContactMessage](ctx, db.ContactCollection, bson.M{}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondWithData(w, http.StatusOK, messages)
}

// POST /api/contact
func CreateMessage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var msg models.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid message data")
		return
	}
	if msg.Name == "" || msg.Message == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name and message are required")
		return
	}

	// isRead defaults to false only because the zero value is false; an
	// explicit value in the body is kept as sent.
	msg.ID = primitive.NewObjectID()
	msg.CreatedAt = time.Now()
	msg.UpdatedAt = msg.CreatedAt

	if err := insertMessage(r.Context(), &msg); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondWithData(w, http.StatusCreated, msg)
}

// PATCH /api/contact/:id/read
//
// Sets isRead from the body; repeating the same call is a no-op.
func MarkRead(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid message id")
		return
	}

	var body struct {
		IsRead bool `json:"isRead"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	var msg models.ContactMessage
	err = db.ContactCollection.FindOneAndUpdate(
		r.Context(),
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isRead": body.IsRead, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&msg)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Message not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondWithData(w, http.StatusOK, msg)
}
