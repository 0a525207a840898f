package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// SaveFile writes a multipart upload under folder with the given base name,
// keeping the original extension. Returns the stored filename.
func SaveFile(file multipart.File, header *multipart.FileHeader, folder, baseName string) (string, error) {
	ext := filepath.Ext(SanitizeFilename(header.Filename))
	if ext == "" {
		ext = ImageExtension(header.Header.Get("Content-Type"))
	}
	filename := fmt.Sprintf("%s%s", baseName, ext)

	if err := EnsureDir(folder); err != nil {
		return "", err
	}

	out, err := os.Create(filepath.Join(folder, filename))
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		return "", err
	}
	return filename, nil
}
