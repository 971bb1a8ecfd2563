package presenter

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/soocke/pixel-reel/domain/autopause"
)

// HotkeyWatcher turns presses of the configured toggle key into toggle
// requests. Key events are read on a background goroutine and queued; the
// toggle itself runs from Tick so it stays on the Tk thread.
type HotkeyWatcher struct {
	Feed   autopause.KeyFeed
	Key    func() byte // current toggle key, read per event so edits apply live
	Toggle func()
	Logger *slog.Logger

	mu       sync.Mutex
	cancel   context.CancelFunc
	done     chan struct{}
	requests chan struct{}
}

// NewHotkeyWatcher constructs a watcher. Nothing is read until Start.
func NewHotkeyWatcher(feed autopause.KeyFeed, key func() byte, toggle func(), logger *slog.Logger) *HotkeyWatcher {
	return &HotkeyWatcher{Feed: feed, Key: key, Toggle: toggle, Logger: logger, requests: make(chan struct{}, 1)}
}

// Start begins listening. It returns the feed's error, which is
// errors.ErrUnsupported on platforms without global key reads.
func (w *HotkeyWatcher) Start() error {
	if w == nil || w.Feed == nil || w.Key == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	events, err := w.Feed.Listen(ctx)
	if err != nil {
		cancel()
		if w.Logger != nil {
			if errors.Is(err, errors.ErrUnsupported) {
				w.Logger.Warn("toggle hotkey unavailable on this platform")
			} else {
				w.Logger.Error("toggle hotkey listen failed", "error", err)
			}
		}
		return err
	}
	w.cancel = cancel
	w.done = make(chan struct{})
	go w.loop(events, w.done)
	return nil
}

// Stop ends listening and waits for the reader goroutine.
func (w *HotkeyWatcher) Stop() {
	if w == nil {
		return
	}
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.cancel, w.done = nil, nil
	w.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (w *HotkeyWatcher) loop(events <-chan autopause.KeyEvent, done chan struct{}) {
	defer close(done)
	defer recoverLog(w.Logger, "hotkey watcher panic")
	for ev := range events {
		if ev.Code != uint16(w.Key()) {
			continue
		}
		if w.Logger != nil {
			w.Logger.Debug("toggle hotkey pressed", "vk", ev.Code)
		}
		select {
		case w.requests <- struct{}{}:
		default: // one pending toggle is enough
		}
	}
}

// Tick performs a queued toggle, if any.
func (w *HotkeyWatcher) Tick(now time.Time) {
	if w == nil || w.Toggle == nil {
		return
	}
	select {
	case <-w.requests:
		w.Toggle()
	default:
	}
}

func recoverLog(logger *slog.Logger, msg string) {
	if r := recover(); r != nil {
		if logger != nil {
			logger.Error(msg, "error", r)
		}
	}
}
