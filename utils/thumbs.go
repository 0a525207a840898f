package utils

import (
	"fmt"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// CreateThumb writes a resized copy of an already-saved image next to the
// original, under a thumb/ subdirectory. Thumbnail failures are non-fatal to
// the upload; callers log and continue.
func CreateThumb(id, dir, ext string, width, height int) error {
	src := filepath.Join(dir, fmt.Sprintf("%s%s", id, ext))
	img, err := imaging.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}

	thumbDir := filepath.Join(dir, "thumb")
	if err := EnsureDir(thumbDir); err != nil {
		return fmt.Errorf("failed to create thumbnail directory: %w", err)
	}

	thumb := imaging.Fit(img, width, height, imaging.Lanczos)
	dst := filepath.Join(thumbDir, fmt.Sprintf("%s%s", id, ext))
	if err := imaging.Save(thumb, dst); err != nil {
		return fmt.Errorf("failed to save thumbnail: %w", err)
	}
	return nil
}
