package vision

import (
	"image"
	"image/color"
	"math/rand"
	"testing"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestToHSV_Primaries(t *testing.T) {
	cases := []struct {
		r, g, b uint8
		want    HSV
	}{
		{0, 0, 0, HSV{}},
		{255, 255, 255, HSV{0, 0, 255}},
		{255, 0, 0, HSV{0, 255, 255}},
		{0, 255, 0, HSV{60, 255, 255}},
		{0, 0, 255, HSV{120, 255, 255}},
		{255, 0, 128, HSV{165, 255, 255}},
		{212, 255, 0, HSV{35, 255, 255}},
		{218, 255, 0, HSV{34, 255, 255}},
	}
	for _, tc := range cases {
		if got := ToHSV(tc.r, tc.g, tc.b); got != tc.want {
			t.Errorf("ToHSV(%d,%d,%d) = %+v want %+v", tc.r, tc.g, tc.b, got, tc.want)
		}
	}
}

func TestClassify_EmptyAndNil(t *testing.T) {
	if s := Classify(nil); s != (Sample{}) {
		t.Fatalf("nil frame: %+v", s)
	}
	if s := Classify(image.NewRGBA(image.Rectangle{})); s != (Sample{}) {
		t.Fatalf("empty frame: %+v", s)
	}
}

func TestClassify_SolidFrames(t *testing.T) {
	if s := Classify(solid(8, 4, color.RGBA{0, 0, 0, 255})); s.Green != 0 || s.Red != 0 {
		t.Fatalf("black: %+v", s)
	}
	if s := Classify(solid(8, 4, color.RGBA{0, 255, 0, 255})); s.Green != 1 || s.Red != 0 {
		t.Fatalf("green: %+v", s)
	}
	if s := Classify(solid(8, 4, color.RGBA{255, 0, 0, 255})); s.Red != 1 || s.Green != 0 {
		t.Fatalf("red: %+v", s)
	}
	if s := Classify(solid(8, 4, color.RGBA{255, 0, 128, 255})); s.Red != 1 {
		t.Fatalf("wrapped red hue: %+v", s)
	}
}

func TestClassify_HueBoundary(t *testing.T) {
	if s := Classify(solid(2, 2, color.RGBA{212, 255, 0, 255})); s.Green != 1 {
		t.Fatalf("hue 35 should be green: %+v", s)
	}
	if s := Classify(solid(2, 2, color.RGBA{218, 255, 0, 255})); s.Green != 0 {
		t.Fatalf("hue 34 should not be green: %+v", s)
	}
}

func TestClassify_RedNeedsHigherSaturation(t *testing.T) {
	// Both pixels have S=75: inside the green band, below the red floor.
	if s := Classify(solid(2, 2, color.RGBA{255, 180, 180, 255})); s.Red != 0 {
		t.Fatalf("weakly saturated red counted: %+v", s)
	}
	if s := Classify(solid(2, 2, color.RGBA{180, 255, 180, 255})); s.Green != 1 {
		t.Fatalf("weakly saturated green not counted: %+v", s)
	}
}

func TestClassify_MixedRatios(t *testing.T) {
	img := solid(10, 10, color.RGBA{0, 0, 0, 255})
	for x := 0; x < 10; x++ {
		img.SetRGBA(x, 0, color.RGBA{0, 255, 0, 255})
		img.SetRGBA(x, 1, color.RGBA{0, 255, 0, 255})
		img.SetRGBA(x, 2, color.RGBA{255, 0, 0, 255})
	}
	s := Classify(img)
	if s.Green != 0.2 || s.Red != 0.1 {
		t.Fatalf("unexpected ratios %+v", s)
	}
	if !s.Active(0.1) || s.Active(0.25) {
		t.Fatalf("unexpected Active result for %+v", s)
	}
}

func TestClassify_SubImage(t *testing.T) {
	img := solid(10, 10, color.RGBA{0, 0, 0, 255})
	for y := 5; y < 10; y++ {
		for x := 5; x < 10; x++ {
			img.SetRGBA(x, y, color.RGBA{0, 255, 0, 255})
		}
	}
	sub := img.SubImage(image.Rect(5, 5, 10, 10)).(*image.RGBA)
	if s := Classify(sub); s.Green != 1 {
		t.Fatalf("sub image: %+v", s)
	}
}

func TestClassifyParallel_MatchesSerial(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	img := image.NewRGBA(image.Rect(0, 0, 97, 53))
	rng.Read(img.Pix)
	want := ratios(countRows(img, img.Rect.Min.Y, img.Rect.Max.Y), img.Rect)
	for _, workers := range []int{1, 2, 3, 8, 200} {
		if got := ClassifyParallel(img, workers); got != want {
			t.Fatalf("workers=%d: got %+v want %+v", workers, got, want)
		}
	}
}

func BenchmarkClassify_1080pRegion(b *testing.B) {
	img := image.NewRGBA(image.Rect(0, 0, 652, 97))
	rand.New(rand.NewSource(1)).Read(img.Pix)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Classify(img)
	}
}
