package gallery

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
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

// POST /api/gallery/upload (admin, multipart)
//
// Validates size and MIME type before any disk write, then stores the file
// under a name derived from the upload time and returns its public URL.
func UploadImage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(5 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Unable to parse form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	if header.Size > 5<<20 {
		utils.RespondWithError(w, http.StatusBadRequest, "File too large (max 5MB)")
		return
	}
	if !utils.IsImageUpload(header) {
		utils.RespondWithError(w, http.StatusBadRequest, "Only image files (JPEG, PNG, GIF, WebP) are allowed.")
		return
	}

	baseName := fmt.Sprintf("gallery-%d", time.Now().UnixMilli())
	dir := utils.UploadDir("gallery")
	filename, err := utils.SaveFile(file, header, dir, baseName)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error saving file: "+err.Error())
		return
	}

	if err := utils.CreateThumb(baseName, dir, filepath.Ext(filename), 300, 300); err != nil {
		log.Printf("gallery thumbnail for %s: %v", filename, err)
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]string{
		"imageUrl": utils.PublicUploadURL(r, "gallery", filename),
	})
}

// GET /api/gallery
func GetImages(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "createdAt", Value: -1}})
	images, err := utils.FindAndDecode[models.GalleryImage](ctx, db.GalleryCollection, bson.M{}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, images)
}

// POST /api/gallery (admin)
func CreateImage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Title    string `json:"title"`
		ImageURL string `json:"imageUrl"`
		Image    string `json:"image"`
		Category string `json:"category"`
		Order    int    `json:"order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid gallery data")
		return
	}

	url := body.ImageURL
	if url == "" {
		url = body.Image
	}
	if url == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "imageUrl is required")
		return
	}
	if !models.ValidGalleryCategory(body.Category) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid gallery category")
		return
	}

	now := time.Now()
	image := models.GalleryImage{
		ID:        primitive.NewObjectID(),
		Title:     body.Title,
		ImageURL:  url,
		Category:  body.Category,
		Order:     body.Order,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := db.GalleryCollection.InsertOne(r.Context(), image); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, image)
}

// PUT /api/gallery/:id (admin)
func UpdateImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid gallery image id")
		return
	}

	var fields bson.M
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid update data")
		return
	}
	delete(fields, "_id")
	if c, ok := fields["category"].(string); ok && !models.ValidGalleryCategory(c) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid gallery category")
		return
	}
	fields["updatedAt"] = time.Now()

	var image models.GalleryImage
	err = db.GalleryCollection.FindOneAndUpdate(
		r.Context(),
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&image)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Gallery image not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, image)
}

// DELETE /api/gallery/:id (admin)
func DeleteImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid gallery image id")
		return
	}

	res, err := db.GalleryCollection.DeleteOne(r.Context(), bson.M{"_id": id})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Gallery image not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Gallery image deleted successfully"})
}
