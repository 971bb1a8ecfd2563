package fishing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/soocke/pixel-reel/config"
	"github.com/soocke/pixel-reel/domain/capture"
	"github.com/soocke/pixel-reel/domain/vision"
)

const (
	pausedWait   = 500 * time.Millisecond
	recastSettle = 50 * time.Millisecond
	restartWait  = 2 * time.Second
)

// Engine runs the vision-driven control loop on a single worker goroutine.
// Start, Stop, Pause and Resume are safe to call from any goroutine.
type Engine struct {
	logger   *slog.Logger
	cfg      ConfigSource
	input    Input
	samplers capture.SamplerFactory
	now      func() time.Time

	// lockThread pins the worker for the sampler's lifetime.
	lockThread func() (unlock func())

	running atomic.Bool
	paused  atomic.Bool
	state   atomic.Int32

	mu        sync.Mutex // guards cancel, stopping, done, listeners, sampler
	cancel    context.CancelFunc
	stopping  bool
	done      chan struct{}
	listeners []Listener
	sampler   capture.Sampler

	ticks, clicks, casts, recasts, pauses, errs atomic.Uint64
}

// NewEngine wires an engine. Nothing runs until Start or Run.
func NewEngine(logger *slog.Logger, cfg ConfigSource, input Input, samplers capture.SamplerFactory) *Engine {
	done := make(chan struct{})
	close(done)
	return &Engine{
		logger:     logger,
		cfg:        cfg,
		input:      input,
		samplers:   samplers,
		now:        time.Now,
		lockThread: capture.LockThread,
		done:       done,
	}
}

// AddListener registers l for all future events.
func (e *Engine) AddListener(l Listener) {
	if l == nil {
		return
	}
	e.mu.Lock()
	e.listeners = append(e.listeners, l)
	e.mu.Unlock()
}

// Start launches the loop on its own goroutine, monitoring region. A run
// that Stop already cancelled is waited for first, so two workers never
// overlap.
func (e *Engine) Start(region capture.Region) error {
	if err := e.awaitStopped(); err != nil {
		return err
	}
	if !e.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	ctx, cancel, done := e.begin(context.Background())
	go func() {
		defer recoverLog(e.logger, "engine goroutine panic")
		_ = e.run(ctx, cancel, region, done)
	}()
	return nil
}

// Run is the synchronous form of Start, for callers that embed the engine in
// their own goroutine or command and want the terminal error back. It returns
// nil when the loop was stopped by Stop or ctx, and the fatal error otherwise.
func (e *Engine) Run(ctx context.Context, region capture.Region) error {
	if err := e.awaitStopped(); err != nil {
		return err
	}
	if !e.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	runCtx, cancel, done := e.begin(ctx)
	return e.run(runCtx, cancel, region, done)
}

func (e *Engine) begin(parent context.Context) (context.Context, context.CancelFunc, chan struct{}) {
	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	e.mu.Lock()
	e.cancel = cancel
	e.stopping = false
	e.done = done
	e.mu.Unlock()
	e.paused.Store(false)
	return ctx, cancel, done
}

// awaitStopped blocks until a stopping run has exited, up to restartWait.
func (e *Engine) awaitStopped() error {
	e.mu.Lock()
	stopping, done := e.stopping, e.done
	e.mu.Unlock()
	if !stopping {
		return nil
	}
	t := time.NewTimer(restartWait)
	defer t.Stop()
	select {
	case <-done:
		return nil
	case <-t.C:
		return ErrAlreadyRunning
	}
}

// Stop asks the loop to exit. It returns immediately; use Done to wait.
// Running stays true until the worker has unwound.
func (e *Engine) Stop() {
	e.mu.Lock()
	cancel := e.cancel
	if cancel != nil {
		e.stopping = true
	}
	e.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Pause suspends sampling and input until Resume. It reports whether the
// call changed anything.
func (e *Engine) Pause(reason string) bool {
	if !e.paused.CompareAndSwap(false, true) {
		return false
	}
	e.pauses.Add(1)
	if e.logger != nil {
		e.logger.Info("engine paused", "reason", reason)
	}
	return true
}

// Resume lifts a pause. It reports whether the call changed anything.
func (e *Engine) Resume(reason string) bool {
	if !e.paused.CompareAndSwap(true, false) {
		return false
	}
	if e.logger != nil {
		e.logger.Info("engine resumed", "reason", reason)
	}
	return true
}

func (e *Engine) Paused() bool { return e.paused.Load() }

func (e *Engine) Running() bool { return e.running.Load() }

func (e *Engine) State() RunState { return RunState(e.state.Load()) }

// Done is closed when the current (or last) run has fully exited.
func (e *Engine) Done() <-chan struct{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.done
}

// Stats returns cumulative counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Ticks:   e.ticks.Load(),
		Clicks:  e.clicks.Load(),
		Casts:   e.casts.Load(),
		Recasts: e.recasts.Load(),
		Pauses:  e.pauses.Load(),
		Errors:  e.errs.Load(),
	}
}

// CaptureStats reports the active sampler's counters when it exposes them.
func (e *Engine) CaptureStats() (capture.CaptureStats, bool) {
	e.mu.Lock()
	s := e.sampler
	e.mu.Unlock()
	if p, ok := s.(interface{ Stats() capture.CaptureStats }); ok {
		return p.Stats(), true
	}
	return capture.CaptureStats{}, false
}

func (e *Engine) run(ctx context.Context, cancel context.CancelFunc, region capture.Region, done chan struct{}) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
			if e.logger != nil {
				e.logger.Error("engine panic", "error", r, "stack", string(debug.Stack()))
			}
		}
		if err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			err = nil
		}
		if err != nil {
			e.errs.Add(1)
			if e.logger != nil {
				e.logger.Error("engine stopped on error", "error", err, "region", region.String())
			}
			e.status("Error: " + err.Error())
		} else {
			e.status("Stopped")
		}
		e.setState(StateStopped)
		cancel()
		e.running.Store(false)
		close(done)
	}()

	defer e.lockThread()()
	sampler, err := e.samplers()
	if err != nil {
		return &capture.CaptureError{Region: region, Err: err}
	}
	e.mu.Lock()
	e.sampler = sampler
	e.mu.Unlock()
	defer func() {
		if cerr := sampler.Close(); cerr != nil && e.logger != nil {
			e.logger.Warn("sampler close failed", "error", cerr)
		}
	}()

	if e.logger != nil {
		e.logger.Info("engine started", "region", region.String())
	}
	e.setState(StateCasting)
	if err := e.hold(ctx, e.cfg.Snapshot()); err != nil {
		return err
	}
	e.setState(StateMonitoring)
	lastActive := e.now()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if e.paused.Load() {
			if e.State() != StatePaused {
				e.setState(StatePaused)
				e.status("Auto-paused")
			}
			if err := e.wait(ctx, pausedWait); err != nil {
				return err
			}
			continue
		}
		if e.State() == StatePaused {
			e.setState(StateMonitoring)
			e.status("Monitoring...")
		}
		if err := e.tick(ctx, sampler, region, &lastActive); err != nil {
			return err
		}
	}
}

// tick runs one monitoring iteration. Configuration is read fresh so edits
// apply on the next tick.
func (e *Engine) tick(ctx context.Context, sampler capture.Sampler, region capture.Region, lastActive *time.Time) error {
	cfg := e.cfg.Snapshot()
	img, err := sampler.Capture(region)
	if err != nil {
		return err
	}
	e.ticks.Add(1)
	s := vision.Classify(img)
	e.emit(Event{Kind: EventGreenRatio, Value: s.Green})
	e.emit(Event{Kind: EventRedRatio, Value: s.Red})

	now := e.now()
	if s.Active(cfg.ActiveMinRatio) {
		*lastActive = now
	}
	switch Decide(s, cfg, now.Sub(*lastActive)) {
	case DecisionClick:
		e.status("CLICK")
		if err := e.press(ctx, cfg.PressDuration()); err != nil {
			return err
		}
		e.clicks.Add(1)
		return e.wait(ctx, cfg.ClickWait())
	case DecisionIdle:
		e.status("Idle")
		return e.wait(ctx, cfg.IdleWait())
	case DecisionRecast:
		if d := cfg.RecastWait(); d > 0 {
			e.status(fmt.Sprintf("Recast in %.2fs...", d.Seconds()))
			if err := e.wait(ctx, d); err != nil {
				return err
			}
		}
		e.setState(StateCasting)
		e.recasts.Add(1)
		if err := e.hold(ctx, e.cfg.Snapshot()); err != nil {
			return err
		}
		e.setState(StateMonitoring)
		*lastActive = e.now()
		return e.wait(ctx, recastSettle)
	default:
		e.status("Waiting for mini-game...")
		return e.wait(ctx, cfg.IdleWait())
	}
}

// hold performs a cast: a long press followed by release.
func (e *Engine) hold(ctx context.Context, cfg config.Config) error {
	d := cfg.HoldDuration()
	e.status(fmt.Sprintf("Hold %.2fs...", d.Seconds()))
	if err := e.press(ctx, d); err != nil {
		return err
	}
	e.casts.Add(1)
	e.status("Monitoring...")
	return nil
}

// press holds the input for d. Release is attempted whenever Press
// succeeded, even if the wait was cut short.
func (e *Engine) press(ctx context.Context, d time.Duration) error {
	if err := e.input.Press(); err != nil {
		return fmt.Errorf("press: %w", err)
	}
	waitErr := e.wait(ctx, d)
	if err := e.input.Release(); err != nil {
		return fmt.Errorf("release: %w", err)
	}
	return waitErr
}

// wait sleeps for d or until ctx is done.
func (e *Engine) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (e *Engine) setState(s RunState) {
	if RunState(e.state.Swap(int32(s))) == s {
		return
	}
	if e.logger != nil {
		e.logger.Debug("engine state", "state", s.String())
	}
	e.emit(Event{Kind: EventState, State: s})
}

func (e *Engine) status(msg string) {
	e.emit(Event{Kind: EventStatus, Status: msg})
}

// emit delivers ev to every listener. A panicking listener is logged and
// skipped.
func (e *Engine) emit(ev Event) {
	ev.At = e.now()
	e.mu.Lock()
	ls := e.listeners
	e.mu.Unlock()
	for _, l := range ls {
		func() {
			defer recoverLog(e.logger, "engine listener panic")
			l(ev)
		}()
	}
}

func recoverLog(logger *slog.Logger, msg string) {
	if r := recover(); r != nil {
		if logger != nil {
			logger.Error(msg, "error", r)
		}
	}
}

var _ Controller = (*Engine)(nil)
