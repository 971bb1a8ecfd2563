package app

import (
	"fmt"
	"log/slog"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/pixel-reel/config"
	"github.com/soocke/pixel-reel/debug"
	"github.com/soocke/pixel-reel/domain/action"
	"github.com/soocke/pixel-reel/ui/presenter"
	"github.com/soocke/pixel-reel/ui/theme"
	"github.com/soocke/pixel-reel/ui/view"
)

const (
	tick           = 100 * time.Millisecond
	statsInterval  = 5 * time.Second
	engineStopWait = 2 * time.Second // bounds the wait for the loop to release the button
)

type application struct {
	c         *AppContainer
	logger    *slog.Logger
	width     int
	height    int
	afterID   string
	overlay   view.RegionOverlay
	stopStats func()
}

// NewApp configures the Tk root window and assembles the components.
func NewApp(title string, width, height int, store *config.Store, cfgPath string, logger *slog.Logger) *application {
	a := &application{c: BuildContainer(store, cfgPath, logger), logger: logger, width: width, height: height}
	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))
	return a
}

// Start builds the UI, starts the background helpers and blocks in the Tk
// event loop until the window closes.
func (a *application) Start() {
	c := a.c
	cfg := c.Store.Snapshot()
	theme.Apply(cfg.DarkMode)

	titles, err := action.ListWindows()
	if err != nil && a.logger != nil {
		a.logger.Debug("window list unavailable", "error", err)
	}
	a.overlay = view.NewRegionOverlay(c.Store, c.CfgPath, c.ResolveRegion, c.RootView.RegionChanged, a.logger)
	c.RootView.Build(titles, view.Handlers{
		Toggle:        c.Control.Toggle,
		Resume:        c.ManualResume,
		Preview:       c.Calibration.Capture,
		Snapshot:      c.Calibration.Snapshot,
		PickRegion:    a.overlay.OpenOrFocus,
		DefaultRegion: a.overlay.Clear,
		Exit:          a.exitHandler,
		ConfigApplied: a.configApplied,
	})

	_ = c.Hotkey.Start() // logged by the watcher; the buttons still work
	if cfg.Debug {
		a.stopStats = debug.StartStatsLogger(statsInterval, a.logger, a.engineStats)
	}

	c.Loop = presenter.NewLoop(c.Status, c.Control, c.SessionP, c.Hotkey, c.Calibration, a.scheduleUpdate)
	a.scheduleUpdate()

	App.Wait()
	a.shutdown()
}

func (a *application) scheduleUpdate() {
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.c.Loop.Tick() })
}

func (a *application) configApplied(cfg config.Config) {
	if cfg.DarkMode != theme.IsDark() {
		theme.Apply(cfg.DarkMode)
	}
}

func (a *application) engineStats() []slog.Attr {
	st := a.c.Engine.Stats()
	attrs := []slog.Attr{
		slog.Uint64("ticks", st.Ticks),
		slog.Uint64("clicks", st.Clicks),
		slog.Uint64("casts", st.Casts),
		slog.Uint64("errors", st.Errors),
		slog.String("state", a.c.Engine.State().String()),
	}
	if cs, ok := a.c.Engine.CaptureStats(); ok {
		attrs = append(attrs,
			slog.Uint64("captures", cs.Captures),
			slog.Uint64("capture_failures", cs.Failures),
			slog.Float64("avg_capture_us", cs.AvgCaptureMicros),
		)
	}
	return attrs
}

func (a *application) exitHandler() {
	// Cancel scheduled after event if any.
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	a.c.Control.Disable()
	Destroy(App)
}

// shutdown stops every background goroutine. Runs after the Tk loop exits.
func (a *application) shutdown() {
	c := a.c
	c.Control.Disable()
	c.Hotkey.Stop()
	c.Calibration.Close()
	select {
	case <-c.Engine.Done():
	case <-time.After(engineStopWait):
		if a.logger != nil {
			a.logger.Warn("engine did not stop in time")
		}
	}
	if a.stopStats != nil {
		a.stopStats()
	}
	if a.logger != nil {
		a.logger.Info("shutdown complete")
	}
}
