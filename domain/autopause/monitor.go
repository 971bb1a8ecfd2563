package autopause

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	defaultInterval    = 500 * time.Millisecond
	defaultErrBackoff  = time.Second
	defaultStopTimeout = 2 * time.Second
)

// Monitor suspends a Controller while the user is busy with the target
// application by other means: when it loses focus, or when keys are typed
// into it. It resumes once activity has settled.
type Monitor struct {
	logger *slog.Logger
	cfg    ConfigSource
	probe  FocusProbe
	keys   KeyFeed
	ctrl   Controller
	now    func() time.Time

	interval    time.Duration
	errBackoff  time.Duration
	stopTimeout time.Duration

	mu           sync.Mutex // guards paused, lastActivity
	paused       bool
	lastActivity time.Time

	running atomic.Bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewMonitor wires a monitor. keys may be nil for focus-only operation.
func NewMonitor(logger *slog.Logger, cfg ConfigSource, probe FocusProbe, keys KeyFeed, ctrl Controller) *Monitor {
	return &Monitor{
		logger:      logger,
		cfg:         cfg,
		probe:       probe,
		keys:        keys,
		ctrl:        ctrl,
		now:         time.Now,
		interval:    defaultInterval,
		errBackoff:  defaultErrBackoff,
		stopTimeout: defaultStopTimeout,
	}
}

// Start launches the poll loop and the key listener. Calling Start on a
// running monitor does nothing. Start and Stop are meant to be called from
// one owner goroutine.
func (m *Monitor) Start() {
	if !m.running.CompareAndSwap(false, true) {
		return
	}
	m.mu.Lock()
	m.paused = false
	m.lastActivity = m.now()
	m.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	m.cancel, m.done = cancel, done

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return m.pollLoop(gctx) })
	g.Go(func() error { return m.keyLoop(gctx) })
	go func() {
		if err := g.Wait(); err != nil && m.logger != nil {
			m.logger.Error("autopause worker failed", "error", err)
		}
		close(done)
	}()
	if m.logger != nil {
		m.logger.Info("autopause started")
	}
}

// Stop cancels both workers and waits for them up to the stop timeout. On
// timeout the workers are abandoned and ErrStopTimeout is returned.
func (m *Monitor) Stop() error {
	if !m.running.CompareAndSwap(true, false) {
		return nil
	}
	m.cancel()
	t := time.NewTimer(m.stopTimeout)
	defer t.Stop()
	select {
	case <-m.done:
		if m.logger != nil {
			m.logger.Info("autopause stopped")
		}
		return nil
	case <-t.C:
		if m.logger != nil {
			m.logger.Warn("autopause workers did not exit, abandoning", "timeout", m.stopTimeout)
		}
		return ErrStopTimeout
	}
}

// ManualResume clears the activity timer so the next poll resumes.
func (m *Monitor) ManualResume() {
	m.mu.Lock()
	m.lastActivity = time.Time{}
	m.mu.Unlock()
}

// Paused reports whether the monitor currently holds the controller paused.
func (m *Monitor) Paused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paused
}

// Running reports whether Start has been called without a matching Stop.
func (m *Monitor) Running() bool { return m.running.Load() }

func (m *Monitor) pollLoop(ctx context.Context) error {
	defer recoverLog(m.logger, "autopause poll panic")
	for {
		wait := m.interval
		if err := m.poll(); err != nil {
			if m.logger != nil {
				m.logger.Warn("autopause poll failed", "error", err)
			}
			wait = m.errBackoff
		}
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil
		case <-t.C:
		}
	}
}

// poll runs one cycle of the focus and resume rules.
func (m *Monitor) poll() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &SignalError{Op: "poll", Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	cfg := m.cfg.Snapshot()
	if cfg.PauseOnFocusLoss {
		focused, err := m.targetFocused(cfg.TargetWindowTitle, cfg.TargetProcessName)
		if err != nil {
			return err
		}
		if !focused {
			m.pause("focus lost")
			return nil
		}
	}
	m.mu.Lock()
	due := m.paused && m.now().Sub(m.lastActivity) >= cfg.ResumeDelay()
	m.mu.Unlock()
	if due {
		m.resume("activity settled")
	}
	return nil
}

func (m *Monitor) keyLoop(ctx context.Context) error {
	defer recoverLog(m.logger, "autopause key listener panic")
	if m.keys == nil {
		return nil
	}
	events, err := m.keys.Listen(ctx)
	if err != nil {
		if m.logger != nil {
			if errors.Is(err, errors.ErrUnsupported) {
				m.logger.Warn("key feed unsupported, typing detection disabled")
			} else {
				m.logger.Warn("key feed failed, typing detection disabled", "error", err)
			}
		}
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			m.onKey(ev)
		}
	}
}

func (m *Monitor) onKey(ev KeyEvent) {
	cfg := m.cfg.Snapshot()
	if !cfg.PauseOnTyping {
		return
	}
	focused, err := m.targetFocused(cfg.TargetWindowTitle, cfg.TargetProcessName)
	if err != nil {
		if m.logger != nil {
			m.logger.Debug("key focus check failed", "error", err)
		}
		return
	}
	if !focused {
		return
	}
	m.pause("typing detected")
	m.mu.Lock()
	m.lastActivity = m.now()
	m.mu.Unlock()
	if m.logger != nil {
		m.logger.Debug("typing activity", "code", ev.Code)
	}
}

func (m *Monitor) targetFocused(title, process string) (bool, error) {
	info, err := m.probe.Foreground()
	if err != nil {
		return false, &SignalError{Op: "foreground window", Err: err}
	}
	return Matches(info, title, process), nil
}

func (m *Monitor) pause(reason string) {
	m.mu.Lock()
	if m.paused {
		m.mu.Unlock()
		return
	}
	m.paused = true
	m.mu.Unlock()
	if m.logger != nil {
		m.logger.Info("autopause pause", "reason", reason)
	}
	m.call(func() { m.ctrl.Pause(reason) })
}

func (m *Monitor) resume(reason string) {
	m.mu.Lock()
	if !m.paused {
		m.mu.Unlock()
		return
	}
	m.paused = false
	m.mu.Unlock()
	if m.logger != nil {
		m.logger.Info("autopause resume", "reason", reason)
	}
	m.call(func() { m.ctrl.Resume(reason) })
}

// call invokes the controller, swallowing panics.
func (m *Monitor) call(fn func()) {
	if m.ctrl == nil {
		return
	}
	defer recoverLog(m.logger, "autopause controller panic")
	fn()
}

func recoverLog(logger *slog.Logger, msg string) {
	if r := recover(); r != nil {
		if logger != nil {
			logger.Error(msg, "error", r)
		}
	}
}
