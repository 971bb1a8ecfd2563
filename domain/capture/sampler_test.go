package capture

import (
	"errors"
	"image"
	"os"
	"testing"
	"time"
)

func newFakeSampler(grab func(image.Rectangle) (*image.RGBA, error)) *ScreenSampler {
	s := NewScreenSampler(nil)
	s.grab = grab
	s.bounds = func() (image.Rectangle, error) { return image.Rect(0, 0, 800, 600), nil }
	return s
}

func TestScreenSampler_CapturesAndCounts(t *testing.T) {
	var asked image.Rectangle
	s := newFakeSampler(func(r image.Rectangle) (*image.RGBA, error) {
		asked = r
		return image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy())), nil
	})
	img, err := s.Capture(Region{X: 10, Y: 20, W: 30, H: 40})
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if img.Bounds().Dx() != 30 || img.Bounds().Dy() != 40 {
		t.Fatalf("unexpected image size %v", img.Bounds())
	}
	if asked != image.Rect(10, 20, 40, 60) {
		t.Fatalf("grab called with %v", asked)
	}
	st := s.Stats()
	if st.Captures != 1 || st.Failures != 0 || st.LastCapture.IsZero() {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestScreenSampler_WrapsGrabError(t *testing.T) {
	boom := errors.New("display gone")
	s := newFakeSampler(func(image.Rectangle) (*image.RGBA, error) { return nil, boom })
	_, err := s.Capture(Region{W: 10, H: 10})
	var ce *CaptureError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CaptureError, got %T %v", err, err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("cause not preserved: %v", err)
	}
	if ce.Region != (Region{W: 10, H: 10}) {
		t.Fatalf("region not recorded: %v", ce.Region)
	}
	if s.Stats().Failures != 1 {
		t.Fatalf("failure not counted")
	}
}

func TestScreenSampler_RejectsBadRegions(t *testing.T) {
	s := newFakeSampler(func(r image.Rectangle) (*image.RGBA, error) {
		t.Fatalf("grab should not be called for %v", r)
		return nil, nil
	})
	for _, r := range []Region{{}, {X: 790, Y: 0, W: 20, H: 20}} {
		var ce *CaptureError
		if _, err := s.Capture(r); !errors.As(err, &ce) {
			t.Fatalf("region %v: expected CaptureError, got %v", r, err)
		}
	}
}

func TestScreenSampler_ClosedFails(t *testing.T) {
	s := newFakeSampler(func(r image.Rectangle) (*image.RGBA, error) {
		return image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy())), nil
	})
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Capture(Region{W: 5, H: 5}); !errors.Is(err, ErrSamplerClosed) {
		t.Fatalf("expected ErrSamplerClosed, got %v", err)
	}
}

func TestSaveSnapshot_WritesPNG(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	path, err := SaveSnapshot(img, dir, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	fi, err := os.Stat(path)
	if err != nil || fi.Size() == 0 {
		t.Fatalf("snapshot missing: %v", err)
	}
	if _, err := SaveSnapshot(nil, dir, time.Now()); err == nil {
		t.Fatalf("expected error for nil image")
	}
}
