package capture

import (
	"errors"
	"fmt"
	"image"
	"runtime"
	"time"
)

// Sampler captures a screen region on demand. A Sampler belongs to one
// worker goroutine: build it when the worker starts, reuse it every tick and
// Close it when the worker exits. Platform samplers may hold thread-affine
// handles, so the worker holds LockThread around the sampler's lifetime.
type Sampler interface {
	Capture(Region) (*image.RGBA, error)
	Close() error
}

// SamplerFactory builds the per-worker Sampler.
type SamplerFactory func() (Sampler, error)

// LockThread wires the calling goroutine to its OS thread and returns the
// matching unlock.
func LockThread() (unlock func()) {
	runtime.LockOSThread()
	return runtime.UnlockOSThread
}

// ErrSamplerClosed is returned by Capture after Close.
var ErrSamplerClosed = errors.New("sampler closed")

// CaptureError reports that no frame could be obtained for Region. The
// control loop treats it as fatal for the current run.
type CaptureError struct {
	Region Region
	Err    error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("capture %s: %v", e.Region, e.Err)
}

func (e *CaptureError) Unwrap() error { return e.Err }

// CaptureStats summarises sampler behaviour for instrumentation.
type CaptureStats struct {
	Captures         uint64
	Failures         uint64
	AvgCapture       time.Duration
	AvgCaptureMicros float64
	LastCapture      time.Time
}
