//go:build windows

package capture

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync/atomic"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	smCxScreen   = 0
	smCyScreen   = 1
	srccopy      = 0x00CC0020
	dibRGBColors = 0
	biRgb        = 0
)

var (
	user32                 = windows.NewLazySystemDLL("user32.dll")
	gdi32                  = windows.NewLazySystemDLL("gdi32.dll")
	procGetDC              = user32.NewProc("GetDC")
	procReleaseDC          = user32.NewProc("ReleaseDC")
	procGetSystemMetrics   = user32.NewProc("GetSystemMetrics")
	procCreateCompatibleDC = gdi32.NewProc("CreateCompatibleDC")
	procDeleteDC           = gdi32.NewProc("DeleteDC")
	procSelectObject       = gdi32.NewProc("SelectObject")
	procBitBlt             = gdi32.NewProc("BitBlt")
	procCreateDIBSection   = gdi32.NewProc("CreateDIBSection")
	procDeleteObject       = gdi32.NewProc("DeleteObject")
)

type bitmapInfoHeader struct {
	BiSize          uint32
	BiWidth         int32
	BiHeight        int32
	BiPlanes        uint16
	BiBitCount      uint16
	BiCompression   uint32
	BiSizeImage     uint32
	BiXPelsPerMeter int32
	BiYPelsPerMeter int32
	BiClrUsed       uint32
	BiClrImportant  uint32
}

type bitmapInfo struct {
	Header bitmapInfoHeader
	_      [4]byte
}

// gdiSampler keeps the screen DC, a memory DC and a DIB section alive for the
// life of one worker. The DIB is rebuilt only when the region size changes.
// Not safe for concurrent use. Build, use and close it on one locked OS
// thread (see LockThread): ReleaseDC must run on the thread that called GetDC.
type gdiSampler struct {
	counters
	screenDC uintptr
	memDC    uintptr
	bmp      uintptr
	prev     uintptr
	bits     unsafe.Pointer
	w, h     int
	closed   atomic.Bool
}

// NewPlatformSamplerFactory returns the preferred SamplerFactory for this
// platform: a GDI sampler that holds its device contexts across captures.
func NewPlatformSamplerFactory(logger *slog.Logger) SamplerFactory {
	return func() (Sampler, error) { return newGDISampler(logger) }
}

func newGDISampler(logger *slog.Logger) (*gdiSampler, error) {
	screenDC, _, err := procGetDC.Call(0)
	if screenDC == 0 {
		return nil, fmt.Errorf("capture: GetDC: %w", err)
	}
	memDC, _, err := procCreateCompatibleDC.Call(screenDC)
	if memDC == 0 {
		procReleaseDC.Call(0, screenDC)
		return nil, fmt.Errorf("capture: CreateCompatibleDC: %w", err)
	}
	return &gdiSampler{counters: counters{logger: logger}, screenDC: screenDC, memDC: memDC}, nil
}

func (s *gdiSampler) Capture(r Region) (*image.RGBA, error) {
	if s.closed.Load() {
		return nil, s.fail(r, ErrSamplerClosed)
	}
	if r.Empty() {
		return nil, s.fail(r, errors.New("empty region"))
	}
	sw := int(getSystemMetric(smCxScreen))
	sh := int(getSystemMetric(smCyScreen))
	if !r.Rect().In(image.Rect(0, 0, sw, sh)) {
		return nil, s.fail(r, fmt.Errorf("region outside screen %dx%d", sw, sh))
	}
	start := time.Now()
	if err := s.ensureBitmap(r.W, r.H); err != nil {
		return nil, s.fail(r, err)
	}
	ok, _, err := procBitBlt.Call(s.memDC, 0, 0, uintptr(r.W), uintptr(r.H), s.screenDC, uintptr(r.X), uintptr(r.Y), srccopy)
	if ok == 0 {
		return nil, s.fail(r, fmt.Errorf("BitBlt: %w", err))
	}
	pixLen := r.W * r.H * 4
	src := unsafe.Slice((*byte)(s.bits), pixLen)
	dst := image.NewRGBA(image.Rect(0, 0, r.W, r.H))
	for i := 0; i < pixLen; i += 4 {
		dst.Pix[i+0] = src[i+2]
		dst.Pix[i+1] = src[i+1]
		dst.Pix[i+2] = src[i+0]
		dst.Pix[i+3] = 0xFF
	}
	s.record(start)
	return dst, nil
}

// ensureBitmap selects a top-down 32-bit DIB of w x h into the memory DC.
func (s *gdiSampler) ensureBitmap(w, h int) error {
	if s.bmp != 0 && s.w == w && s.h == h {
		return nil
	}
	s.releaseBitmap()
	var bi bitmapInfo
	bi.Header.BiSize = uint32(unsafe.Sizeof(bi.Header))
	bi.Header.BiWidth = int32(w)
	bi.Header.BiHeight = -int32(h)
	bi.Header.BiPlanes = 1
	bi.Header.BiBitCount = 32
	bi.Header.BiCompression = biRgb
	bi.Header.BiSizeImage = uint32(w * h * 4)

	var bits unsafe.Pointer
	bmp, _, err := procCreateDIBSection.Call(s.memDC, uintptr(unsafe.Pointer(&bi)), dibRGBColors, uintptr(unsafe.Pointer(&bits)), 0, 0)
	if bmp == 0 {
		return fmt.Errorf("CreateDIBSection: %w", err)
	}
	prev, _, err := procSelectObject.Call(s.memDC, bmp)
	if prev == 0 || prev == ^uintptr(0) {
		procDeleteObject.Call(bmp)
		return fmt.Errorf("SelectObject: %w", err)
	}
	s.bmp, s.prev, s.bits, s.w, s.h = bmp, prev, bits, w, h
	return nil
}

func (s *gdiSampler) releaseBitmap() {
	if s.bmp == 0 {
		return
	}
	procSelectObject.Call(s.memDC, s.prev)
	procDeleteObject.Call(s.bmp)
	s.bmp, s.prev, s.bits, s.w, s.h = 0, 0, nil, 0, 0
}

// Close frees the GDI objects. Safe to call more than once.
func (s *gdiSampler) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	s.releaseBitmap()
	procDeleteDC.Call(s.memDC)
	procReleaseDC.Call(0, s.screenDC)
	return nil
}

func getSystemMetric(idx int) int32 {
	v, _, _ := procGetSystemMetrics.Call(uintptr(idx))
	return int32(v)
}
