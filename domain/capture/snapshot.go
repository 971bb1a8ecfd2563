package capture

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
)

// SaveSnapshot writes img as a PNG into dir, named after the capture time,
// and returns the file path. Used to check a region calibration by eye.
func SaveSnapshot(img image.Image, dir string, now time.Time) (string, error) {
	if img == nil {
		return "", errors.New("snapshot: nil image")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}
	path := filepath.Join(dir, "region-"+now.Format("20060102-150405.000")+".png")
	if err := imaging.Save(img, path); err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}
	return path, nil
}
