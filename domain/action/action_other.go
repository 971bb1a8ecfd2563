//go:build !windows

package action

import (
	"context"
	"errors"
	"time"

	"github.com/soocke/pixel-reel/domain/autopause"
)

// LeftButton is unavailable off Windows.
type LeftButton struct{}

func (LeftButton) Press() error   { return errors.ErrUnsupported }
func (LeftButton) Release() error { return errors.ErrUnsupported }

func ForegroundWindow() (autopause.WindowInfo, error) {
	return autopause.WindowInfo{}, errors.ErrUnsupported
}

func ListWindows() ([]string, error) { return nil, errors.ErrUnsupported }

// WindowProbe adapts ForegroundWindow to autopause.FocusProbe.
type WindowProbe struct{}

func (WindowProbe) Foreground() (autopause.WindowInfo, error) { return ForegroundWindow() }

type KeyPoller struct {
	Interval time.Duration
	Keys     []byte
}

func (KeyPoller) Listen(context.Context) (<-chan autopause.KeyEvent, error) {
	return nil, errors.ErrUnsupported
}
