package gallery

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func multipartUpload(t *testing.T, filename, contentType string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	assert.NoError(t, err)
	_, err = part.Write(content)
	assert.NoError(t, err)
	assert.NoError(t, mw.Close())

	r := httptest.NewRequest("POST", "/api/gallery/upload", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func TestUploadRejectsNonImageBeforePersisting(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("UPLOAD_DIR", dir)

	w := httptest.NewRecorder()
	UploadImage(w, multipartUpload(t, "notes.txt", "text/plain", []byte("not an image")), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "image files")

	entries, err := os.ReadDir(filepath.Join(dir, "gallery"))
	if err == nil {
		assert.Empty(t, entries, "nothing may reach disk for a rejected upload")
	}
}

func TestUploadRejectsMissingFile(t *testing.T) {
	t.Setenv("UPLOAD_DIR", t.TempDir())

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	assert.NoError(t, mw.WriteField("title", "no file here"))
	assert.NoError(t, mw.Close())

	r := httptest.NewRequest("POST", "/api/gallery/upload", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())

	w := httptest.NewRecorder()
	UploadImage(w, r, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No file uploaded")
}

func TestUploadStoresImageAndReturnsURL(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("UPLOAD_DIR", dir)

	var img bytes.Buffer
	assert.NoError(t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 2, 2))))

	w := httptest.NewRecorder()
	UploadImage(w, multipartUpload(t, "showroom.png", "image/png", img.Bytes()), nil)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, strings.Contains(resp["imageUrl"], "/uploads/gallery/gallery-"))
	assert.True(t, strings.HasSuffix(resp["imageUrl"], ".png"))

	entries, err := os.ReadDir(filepath.Join(dir, "gallery"))
	assert.NoError(t, err)

	var files []string
	for _, e := range entries {
		if !e.IsDir() {
			files = append(files, e.Name())
		}
	}
	assert.Len(t, files, 1)
	assert.True(t, strings.HasPrefix(files[0], "gallery-"))
}
