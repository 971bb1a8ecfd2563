package images

import (
	"image"

	"github.com/soocke/pixel-reel/domain/vision"
)

// Mask colours: matched pixels render saturated, the rest dimmed grey.
var (
	maskGreen = [4]uint8{0, 220, 0, 255}
	maskRed   = [4]uint8{230, 0, 0, 255}
	maskOther = [4]uint8{40, 40, 40, 255}
)

// ClassMask renders which pixels of img fall in the green and red bands, for
// checking a region calibration by eye. The result has img's size with its
// origin at (0,0).
func ClassMask(img *image.RGBA) *image.RGBA {
	if img == nil || img.Rect.Empty() {
		return image.NewRGBA(image.Rectangle{})
	}
	out := image.NewRGBA(image.Rect(0, 0, img.Rect.Dx(), img.Rect.Dy()))
	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
		for x := img.Rect.Min.X; x < img.Rect.Max.X; x++ {
			i := img.PixOffset(x, y)
			hsv := vision.ToHSV(img.Pix[i], img.Pix[i+1], img.Pix[i+2])
			c := maskOther
			switch {
			case vision.GreenBand.Contains(hsv):
				c = maskGreen
			case vision.RedLow.Contains(hsv), vision.RedHigh.Contains(hsv):
				c = maskRed
			}
			o := out.PixOffset(x-img.Rect.Min.X, y-img.Rect.Min.Y)
			copy(out.Pix[o:o+4], c[:])
		}
	}
	return out
}
