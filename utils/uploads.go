package utils

import (
	"net/http"
	"os"
	"path/filepath"
)

// UploadRoot is the on-disk base for uploaded files, overridable with
// UPLOAD_DIR.
func UploadRoot() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "./uploads"
}

func UploadDir(sub string) string {
	return filepath.Join(UploadRoot(), sub)
}

// PublicUploadURL rebuilds the absolute URL a stored upload is served from.
func PublicUploadURL(r *http.Request, sub, filename string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/uploads/" + sub + "/" + filename
}
