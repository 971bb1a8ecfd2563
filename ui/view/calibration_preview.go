package view

import (
	"fmt"
	"image"

	"github.com/soocke/pixel-reel/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// CalibrationPreview shows a captured region next to its band mask, with the
// ratios measured on it.
type CalibrationPreview interface {
	UpdatePreview(img image.Image)
	UpdateMask(img image.Image)
	SetRatios(green, red float64)
}

const (
	// Regions are wide and short; previews are scaled to this width.
	previewW    = 360
	maxPreviewH = 120
)

type calibrationPreview struct {
	frameLabel *LabelWidget
	maskLabel  *LabelWidget
	ratioLabel *LabelWidget
	prevFrame  *Img // last Tk photo for the frame
	prevMask   *Img // last Tk photo for the mask
}

// NewCalibrationPreview creates the preview labels on row and row+1 and
// returns the view.
func NewCalibrationPreview(row int) CalibrationPreview {
	png := images.EncodePNG(placeholder())
	framePhoto := NewPhoto(Data(png))
	maskPhoto := NewPhoto(Data(png))
	v := &calibrationPreview{
		frameLabel: Label(Image(framePhoto), Borderwidth(1), Relief("sunken")),
		maskLabel:  Label(Image(maskPhoto), Borderwidth(1), Relief("sunken")),
		ratioLabel: Label(Txt("Preview: none"), Anchor("w")),
		prevFrame:  framePhoto,
		prevMask:   maskPhoto,
	}
	Grid(v.frameLabel, Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	Grid(v.maskLabel, Row(row), Column(2), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	Grid(v.ratioLabel, Row(row+1), Column(0), Columnspan(5), Sticky("we"), Padx("0.4m"))
	return v
}

func placeholder() image.Image { return image.NewRGBA(image.Rect(0, 0, previewW, 40)) }

func fitPreview(img image.Image) image.Image {
	return images.ScaleToFit(images.ScaleToWidth(img, previewW), previewW, maxPreviewH)
}

func (v *calibrationPreview) UpdatePreview(img image.Image) {
	if v == nil || v.frameLabel == nil || img == nil {
		return
	}
	v.prevFrame = replacePhoto(v.frameLabel, v.prevFrame, fitPreview(img))
}

func (v *calibrationPreview) UpdateMask(img image.Image) {
	if v == nil || v.maskLabel == nil || img == nil {
		return
	}
	v.prevMask = replacePhoto(v.maskLabel, v.prevMask, fitPreview(img))
}

func (v *calibrationPreview) SetRatios(green, red float64) {
	if v == nil || v.ratioLabel == nil {
		return
	}
	v.ratioLabel.Configure(Txt(fmt.Sprintf("Preview: green %s  red %s", percent(green), percent(red))))
}

// replacePhoto swaps lbl's image for img, deleting the previous Tk photo so
// obsolete pixel buffers are not retained.
func replacePhoto(lbl *LabelWidget, prev *Img, img image.Image) *Img {
	if prev != nil {
		prev.Delete()
	}
	photo := NewPhoto(Data(images.EncodePNG(img)))
	lbl.Configure(Image(photo))
	return photo
}

func percent(v float64) string { return fmt.Sprintf("%.1f%%", v*100) }
