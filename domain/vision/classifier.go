package vision

import (
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Band is an inclusive HSV range.
type Band struct {
	HLo, HHi uint8
	SLo, SHi uint8
	VLo, VHi uint8
}

// Contains reports whether c lies inside the band.
func (b Band) Contains(c HSV) bool {
	return c.H >= b.HLo && c.H <= b.HHi &&
		c.S >= b.SLo && c.S <= b.SHi &&
		c.V >= b.VLo && c.V <= b.VHi
}

// Colour bands. Red wraps around hue 0 so it is split in two.
var (
	GreenBand = Band{HLo: 35, HHi: 85, SLo: 70, SHi: 255, VLo: 70, VHi: 255}
	RedLow    = Band{HLo: 0, HHi: 12, SLo: 90, SHi: 255, VLo: 70, VHi: 255}
	RedHigh   = Band{HLo: 160, HHi: 179, SLo: 90, SHi: 255, VLo: 70, VHi: 255}
)

// parallelMinPixels is the frame size above which Classify splits rows
// across goroutines.
const parallelMinPixels = 64 * 1024

// Sample is the share of green and red pixels in a frame, each in [0,1].
type Sample struct {
	Green float64
	Red   float64
}

// Active reports whether either colour reaches minRatio.
func (s Sample) Active(minRatio float64) bool {
	return s.Green >= minRatio || s.Red >= minRatio
}

type counts struct{ green, red int }

// Classify measures the green and red pixel ratios of img. A nil or empty
// frame yields a zero Sample.
func Classify(img *image.RGBA) Sample {
	if img == nil || img.Rect.Empty() {
		return Sample{}
	}
	if img.Rect.Dx()*img.Rect.Dy() >= parallelMinPixels {
		return ClassifyParallel(img, runtime.NumCPU())
	}
	c := countRows(img, img.Rect.Min.Y, img.Rect.Max.Y)
	return ratios(c, img.Rect)
}

// ClassifyParallel is Classify with the rows split into at most workers
// horizontal bands. The result is identical to the serial path.
func ClassifyParallel(img *image.RGBA, workers int) Sample {
	if img == nil || img.Rect.Empty() {
		return Sample{}
	}
	rows := img.Rect.Dy()
	workers = max(1, min(workers, rows))
	step := (rows + workers - 1) / workers
	parts := make([]counts, workers)

	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < workers; i++ {
		y0 := img.Rect.Min.Y + i*step
		y1 := min(y0+step, img.Rect.Max.Y)
		if y0 >= y1 {
			break
		}
		g.Go(func() error {
			parts[i] = countRows(img, y0, y1)
			return nil
		})
	}
	_ = g.Wait()

	var total counts
	for _, p := range parts {
		total.green += p.green
		total.red += p.red
	}
	return ratios(total, img.Rect)
}

func countRows(img *image.RGBA, y0, y1 int) counts {
	var c counts
	x0, x1 := img.Rect.Min.X, img.Rect.Max.X
	for y := y0; y < y1; y++ {
		off := img.PixOffset(x0, y)
		row := img.Pix[off : off+(x1-x0)*4]
		for i := 0; i+3 < len(row); i += 4 {
			hsv := ToHSV(row[i], row[i+1], row[i+2])
			if GreenBand.Contains(hsv) {
				c.green++
			}
			if RedLow.Contains(hsv) || RedHigh.Contains(hsv) {
				c.red++
			}
		}
	}
	return c
}

func ratios(c counts, r image.Rectangle) Sample {
	n := float64(r.Dx() * r.Dy())
	return Sample{Green: float64(c.green) / n, Red: float64(c.red) / n}
}
