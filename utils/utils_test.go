package utils

import (
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "photo.jpg", SanitizeFilename("photo.jpg"))
	assert.Equal(t, "passwd", SanitizeFilename("../../etc/passwd"))
	assert.Equal(t, "my_photo_1_.png", SanitizeFilename("my photo(1).png"))
	assert.Equal(t, "file", SanitizeFilename(""))
}

func TestIsImageUpload(t *testing.T) {
	header := func(mime string) *multipart.FileHeader {
		return &multipart.FileHeader{
			Filename: "upload",
			Header:   textproto.MIMEHeader{"Content-Type": []string{mime}},
		}
	}

	assert.True(t, IsImageUpload(header("image/jpeg")))
	assert.True(t, IsImageUpload(header("image/webp")))
	assert.False(t, IsImageUpload(header("text/plain")))
	assert.False(t, IsImageUpload(header("application/pdf")))
	assert.False(t, IsImageUpload(header("")))
}

func TestImageExtension(t *testing.T) {
	assert.Equal(t, ".png", ImageExtension("image/png"))
	assert.Equal(t, ".webp", ImageExtension("image/webp"))
	assert.Equal(t, ".jpg", ImageExtension("image/jpeg"))
	assert.Equal(t, ".jpg", ImageExtension("unknown/mime"))
}

func TestParsePagination(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/products?page=3&limit=20", nil)
	skip, limit := ParsePagination(r, 10, 100)
	assert.Equal(t, int64(40), skip)
	assert.Equal(t, int64(20), limit)

	r = httptest.NewRequest("GET", "/api/products", nil)
	skip, limit = ParsePagination(r, 10, 100)
	assert.Equal(t, int64(0), skip)
	assert.Equal(t, int64(10), limit)

	r = httptest.NewRequest("GET", "/api/products?limit=5000", nil)
	_, limit = ParsePagination(r, 10, 100)
	assert.Equal(t, int64(100), limit)
}

func TestParseSort(t *testing.T) {
	def := bson.D{{Key: "createdAt", Value: -1}}
	allowed := map[string]bson.D{
		"price_asc": {{Key: "price", Value: 1}},
	}

	assert.Equal(t, allowed["price_asc"], ParseSort("price_asc", def, allowed))
	assert.Equal(t, def, ParseSort("unknown", def, allowed))
	assert.Equal(t, def, ParseSort("", def, allowed))
}
