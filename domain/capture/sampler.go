package capture

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/vova616/screenshot"
)

const captureStatsLogInterval = 5 * time.Second

// ScreenSampler grabs regions of the primary display. The screen bounds are
// read once, on the first capture, and reused for every later bounds check.
// Use NewScreenSampler to construct an instance.
type ScreenSampler struct {
	counters
	grab   func(image.Rectangle) (*image.RGBA, error)
	bounds func() (image.Rectangle, error)
	screen image.Rectangle
	closed atomic.Bool
}

// NewScreenSampler constructs a sampler backed by the screenshot library.
func NewScreenSampler(logger *slog.Logger) *ScreenSampler {
	return &ScreenSampler{counters: counters{logger: logger}, grab: screenshot.CaptureRect, bounds: screenshot.ScreenRect}
}

// NewScreenSamplerFactory returns a SamplerFactory producing ScreenSamplers.
func NewScreenSamplerFactory(logger *slog.Logger) SamplerFactory {
	return func() (Sampler, error) { return NewScreenSampler(logger), nil }
}

// Capture returns a freshly allocated RGBA image of r. Any failure is
// reported as a *CaptureError.
func (s *ScreenSampler) Capture(r Region) (*image.RGBA, error) {
	if s.closed.Load() {
		return nil, s.fail(r, ErrSamplerClosed)
	}
	if r.Empty() {
		return nil, s.fail(r, errors.New("empty region"))
	}
	if s.screen.Empty() {
		screen, err := s.bounds()
		if err != nil {
			return nil, s.fail(r, fmt.Errorf("screen bounds: %w", err))
		}
		s.screen = screen
	}
	rect := r.Rect()
	if !rect.In(s.screen) {
		return nil, s.fail(r, fmt.Errorf("region outside screen %v", s.screen))
	}
	start := time.Now()
	img, err := s.grab(rect)
	if err != nil {
		return nil, s.fail(r, err)
	}
	if img == nil {
		return nil, s.fail(r, errors.New("no image returned"))
	}
	s.record(start)
	return img, nil
}

// Close releases the sampler. Later captures fail with ErrSamplerClosed.
func (s *ScreenSampler) Close() error {
	s.closed.Store(true)
	return nil
}

// counters tracks capture outcomes. Safe to read from other goroutines.
type counters struct {
	logger       *slog.Logger
	captures     atomic.Uint64
	failures     atomic.Uint64
	captureNanos atomic.Uint64
	lastCapture  atomic.Int64 // unix nano
	lastLog      time.Time
}

func (c *counters) record(start time.Time) {
	now := time.Now()
	c.captureNanos.Add(uint64(now.Sub(start).Nanoseconds()))
	c.captures.Add(1)
	c.lastCapture.Store(now.UnixNano())
	if now.Sub(c.lastLog) >= captureStatsLogInterval {
		c.lastLog = now
		c.logStats()
	}
}

func (c *counters) fail(r Region, err error) error {
	c.failures.Add(1)
	return &CaptureError{Region: r, Err: err}
}

// Stats reports capture counters.
func (c *counters) Stats() CaptureStats {
	captures := c.captures.Load()
	total := c.captureNanos.Load()
	var avg time.Duration
	avgMicros := 0.0
	if captures > 0 && total > 0 {
		avg = time.Duration(total / captures)
		avgMicros = float64(avg) / float64(time.Microsecond)
	}
	var last time.Time
	if ns := c.lastCapture.Load(); ns > 0 {
		last = time.Unix(0, ns)
	}
	return CaptureStats{
		Captures:         captures,
		Failures:         c.failures.Load(),
		AvgCapture:       avg,
		AvgCaptureMicros: avgMicros,
		LastCapture:      last,
	}
}

func (c *counters) logStats() {
	if c.logger == nil {
		return
	}
	stats := c.Stats()
	c.logger.Debug("capture.stats",
		"captures", stats.Captures,
		"failures", stats.Failures,
		"avg_capture", stats.AvgCapture,
	)
}

var _ Sampler = (*ScreenSampler)(nil)
