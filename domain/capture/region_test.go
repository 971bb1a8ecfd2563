package capture

import (
	"image"
	"testing"
)

func TestDefaultRegion_1080p(t *testing.T) {
	got := DefaultRegion(1920, 1080)
	want := Region{X: 634, Y: 858, W: 652, H: 97}
	if got != want {
		t.Fatalf("default region: got %v want %v", got, want)
	}
}

func TestClamp_FitsOnScreen(t *testing.T) {
	cases := []struct {
		name string
		in   Region
		sw   int
		sh   int
	}{
		{"inside", Region{10, 10, 100, 50}, 800, 600},
		{"too wide", Region{0, 0, 5000, 50}, 800, 600},
		{"negative origin", Region{-40, -3, 100, 100}, 800, 600},
		{"past right edge", Region{790, 590, 100, 100}, 800, 600},
		{"zero size", Region{10, 10, 0, 0}, 800, 600},
		{"negative size", Region{10, 10, -5, -9}, 800, 600},
		{"tiny screen", Region{3, 3, 10, 10}, 2, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := Clamp(tc.in, tc.sw, tc.sh)
			if r.W < 1 || r.H < 1 {
				t.Fatalf("clamped region has no area: %v", r)
			}
			if r.X < 0 || r.Y < 0 || r.X+r.W > tc.sw || r.Y+r.H > tc.sh {
				t.Fatalf("clamped region %v not within %dx%d", r, tc.sw, tc.sh)
			}
			if again := Clamp(r, tc.sw, tc.sh); again != r {
				t.Fatalf("clamp not idempotent: %v then %v", r, again)
			}
		})
	}
}

func TestClamp_KeepsValidRegion(t *testing.T) {
	r := Region{X: 100, Y: 200, W: 300, H: 40}
	if got := Clamp(r, 1920, 1080); got != r {
		t.Fatalf("valid region changed: %v", got)
	}
}

func TestResolve_EmptyUsesDefault(t *testing.T) {
	if got, want := Resolve(Region{}, 1920, 1080), DefaultRegion(1920, 1080); got != want {
		t.Fatalf("got %v want %v", got, want)
	}
	custom := Region{X: 5, Y: 6, W: 7, H: 8}
	if got := Resolve(custom, 1920, 1080); got != custom {
		t.Fatalf("custom region not kept: %v", got)
	}
}

func TestRegion_Rect(t *testing.T) {
	r := Region{X: 1, Y: 2, W: 3, H: 4}
	if got := r.Rect(); got != image.Rect(1, 2, 4, 6) {
		t.Fatalf("rect: %v", got)
	}
	if r.String() != "3x4+1+2" {
		t.Fatalf("string: %q", r.String())
	}
}
