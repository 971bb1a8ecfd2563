package autopause

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/soocke/pixel-reel/config"
)

// WindowInfo identifies the foreground window. Process is the executable
// name of the owning process, empty when it cannot be read.
type WindowInfo struct {
	Title   string
	Process string
}

// FocusProbe reports the current foreground window.
type FocusProbe interface {
	Foreground() (WindowInfo, error)
}

// KeyEvent is a key-down observed by a KeyFeed.
type KeyEvent struct {
	Code uint16
	At   time.Time
}

// KeyFeed streams key-down events until ctx is cancelled, then closes the
// channel. Platforms without a feed return errors.ErrUnsupported.
type KeyFeed interface {
	Listen(ctx context.Context) (<-chan KeyEvent, error)
}

// Controller receives pause and resume requests. Both must be idempotent.
type Controller interface {
	Pause(reason string) bool
	Resume(reason string) bool
}

// ConfigSource yields the configuration in effect at the time of the call.
type ConfigSource interface {
	Snapshot() config.Config
}

// SignalError reports a failed read of focus or process information. It is
// logged per poll cycle and never reaches the controller.
type SignalError struct {
	Op  string
	Err error
}

func (e *SignalError) Error() string { return fmt.Sprintf("autopause: %s: %v", e.Op, e.Err) }

func (e *SignalError) Unwrap() error { return e.Err }

// ErrStopTimeout is returned by Stop when the workers did not exit in time.
var ErrStopTimeout = errors.New("autopause: stop timed out")

// Matches reports whether w belongs to the target application: the title
// contains title, or the process name contains process. Comparison is case
// insensitive and empty patterns never match.
func Matches(w WindowInfo, title, process string) bool {
	if t := strings.ToLower(strings.TrimSpace(title)); t != "" && strings.Contains(strings.ToLower(w.Title), t) {
		return true
	}
	p := strings.ToLower(strings.TrimSpace(process))
	if p == "" || w.Process == "" {
		return false
	}
	return strings.Contains(strings.ToLower(w.Process), p)
}
