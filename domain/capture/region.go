package capture

import (
	"fmt"
	"image"

	"github.com/vova616/screenshot"
)

// Default region placement as fractions of the screen: centre x, centre y,
// width, height. Sits over the mini-game bar near the bottom of the screen.
const (
	defaultCenterX = 0.50
	defaultCenterY = 0.84
	defaultWidth   = 0.34
	defaultHeight  = 0.09
)

// Region is a screen rectangle in absolute pixel coordinates. Regions are
// values: recalibration produces a new Region rather than mutating one that a
// running loop holds.
type Region struct {
	X, Y, W, H int
}

// Rect converts the region to an image.Rectangle.
func (r Region) Rect() image.Rectangle { return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H) }

// Empty reports whether the region has no area.
func (r Region) Empty() bool { return r.W <= 0 || r.H <= 0 }

func (r Region) String() string { return fmt.Sprintf("%dx%d+%d+%d", r.W, r.H, r.X, r.Y) }

// Clamp returns r fitted to a screenW x screenH screen: width and height are
// limited to [1, screen size], then the origin is moved so the rectangle lies
// fully on screen. It never fails.
func Clamp(r Region, screenW, screenH int) Region {
	r.W = max(1, min(r.W, screenW))
	r.H = max(1, min(r.H, screenH))
	r.X = max(0, min(r.X, screenW-r.W))
	r.Y = max(0, min(r.Y, screenH-r.H))
	return r
}

// DefaultRegion derives the starting capture box from the screen size.
func DefaultRegion(screenW, screenH int) Region {
	w := int(float64(screenW) * defaultWidth)
	h := int(float64(screenH) * defaultHeight)
	x := int(float64(screenW)*defaultCenterX - float64(w)/2)
	y := int(float64(screenH)*defaultCenterY - float64(h)/2)
	return Clamp(Region{X: x, Y: y, W: w, H: h}, screenW, screenH)
}

// ScreenSize returns the primary display size.
func ScreenSize() (int, int, error) {
	rect, err := screenshot.ScreenRect()
	if err != nil {
		return 0, 0, fmt.Errorf("capture: screen size: %w", err)
	}
	return rect.Dx(), rect.Dy(), nil
}

// Resolve picks the configured region when it has an area, otherwise the
// default one, and clamps it to the screen.
func Resolve(configured Region, screenW, screenH int) Region {
	if configured.Empty() {
		return DefaultRegion(screenW, screenH)
	}
	return Clamp(configured, screenW, screenH)
}
