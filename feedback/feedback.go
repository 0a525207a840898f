package feedback

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
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

// Store accessors behind function vars so tests can exercise the handlers
// without a live connection, same shape as middleware.ReadyFunc.
var (
	findFeedback = func(ctx context.Context, id primitive.ObjectID) (*models.Feedback, error) {
		var fb models.Feedback
		if err := db.FeedbackCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&fb); err != nil {
			return nil, err
		}
		return &fb, nil
	}
	insertFeedback = func(ctx context.Context, fb *models.Feedback) error {
		_, err := db.FeedbackCollection.InsertOne(ctx, fb)
		return err
	}
	setVisibility = func(ctx context.Context, id primitive.ObjectID, visible bool, at time.Time) error {
		_, err := db.FeedbackCollection.UpdateOne(
			ctx,
			bson.M{"_id": id},
			bson.M{"$set": bson.M{"isVisible": visible, "updatedAt": at}},
		)
		return err
	}
)

// GET /api/feedback (admin)
func GetFeedback(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	feedbacks, err := utils.FindAndDecode[models.Feedback](ctx, db.FeedbackCollection, bson.M{}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondWithData(w, http.StatusOK, feedbacks)
}

// GET /api/feedback/photos
//
// Visible entries with an image, newest first, capped at 20. Feeds the
// storefront's customer-photos strip.
func GetCustomerPhotos(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"isVisible": true,
		"imageUrl":  bson.M{"$exists": true, "$ne": ""},
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(20)

	feedbacks, err := utils.FindAndDecode[models.Feedback](ctx, db.FeedbackCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondWithData(w, http.StatusOK, feedbacks)
}

// POST /api/feedback
func CreateFeedback(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		CreateFeedbackWithImage(w, r, ps)
		return
	}

	// Visible by default; an explicit isVisible:false in the body wins.
	fb := models.Feedback{IsVisible: true}
	if err := json.NewDecoder(r.Body).Decode(&fb); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid feedback data")
		return
	}

	if msg := validate(&fb); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	insert(w, r, &fb)
}

// POST /api/feedback-with-image (multipart)
func CreateFeedbackWithImage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(5 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Unable to parse form: "+err.Error())
		return
	}

	rating, err := strconv.Atoi(r.FormValue("rating"))
	if err != nil {
		rating = 5
	}

	fb := models.Feedback{
		Name:        r.FormValue("name"),
		ProductName: r.FormValue("productName"),
		Email:       r.FormValue("email"),
		Phone:       r.FormValue("phone"),
		Rating:      rating,
		Feedback:    r.FormValue("feedback"),
		IsVisible:   true,
	}
	if msg := validate(&fb); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil && err != http.ErrMissingFile {
		utils.RespondWithError(w, http.StatusBadRequest, "Error retrieving image: "+err.Error())
		return
	}
	if file != nil {
		defer file.Close()

		// Validated before anything touches disk.
		if !utils.IsImageUpload(header) {
			utils.RespondWithError(w, http.StatusBadRequest, "Only image files (JPEG, PNG, GIF, WebP) are allowed.")
			return
		}
		if header.Size > 5<<20 {
			utils.RespondWithError(w, http.StatusBadRequest, "File too large (max 5MB)")
			return
		}

		filename, err := utils.SaveFile(file, header, utils.UploadDir("feedback"), "feedback-"+utils.GetUUID())
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Error saving image: "+err.Error())
			return
		}
		fb.ImageURL = utils.PublicUploadURL(r, "feedback", filename)
	}

	insert(w, r, &fb)
}

// PUT /api/feedback/:id
func UpdateFeedback(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid feedback id")
		return
	}

	var fields bson.M
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid update data")
		return
	}
	delete(fields, "_id")
	if rating, ok := fields["rating"].(float64); ok && !models.ValidRating(int(rating)) {
		utils.RespondWithError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}
	fields["updatedAt"] = time.Now()

	var fb models.Feedback
	err = db.FeedbackCollection.FindOneAndUpdate(
		r.Context(),
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&fb)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Feedback not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondWithData(w, http.StatusOK, fb)
}

// POST /api/feedback/:id/reply
func ReplyToFeedback(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid feedback id")
		return
	}

	var body struct {
		Reply string `json:"reply"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid reply data")
		return
	}

	now := time.Now()
	var fb models.Feedback
	err = db.FeedbackCollection.FindOneAndUpdate(
		r.Context(),
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"adminReply": body.Reply, "repliedAt": now, "updatedAt": now}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&fb)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Feedback not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondWithData(w, http.StatusOK, fb)
}

// PATCH /api/feedback/:id/visibility
//
// Plain flip; any state is reachable from any other, toggling twice lands
// back where it started.
func ToggleVisibility(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid feedback id")
		return
	}

	fb, err := findFeedback(r.Context(), id)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Feedback not found")
		return
	}

	fb.IsVisible = !fb.IsVisible
	fb.UpdatedAt = time.Now()

	if err := setVisibility(r.Context(), id, fb.IsVisible, fb.UpdatedAt); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondWithData(w, http.StatusOK, fb)
}

func insert(w http.ResponseWriter, r *http.Request, fb *models.Feedback) {
	fb.ID = primitive.NewObjectID()
	fb.CreatedAt = time.Now()
	fb.UpdatedAt = fb.CreatedAt

	if err := insertFeedback(r.Context(), fb); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondWithData(w, http.StatusCreated, fb)
}

func validate(fb *models.Feedback) string {
	if fb.Name == "" {
		return "Name is required"
	}
	if !models.ValidRating(fb.Rating) {
		return "Rating must be between 1 and 5"
	}
	if fb.Feedback == "" {
		return "Feedback text is required"
	}
	return ""
}
