package app

import (
	"log/slog"

	"github.com/soocke/pixel-reel/config"
	"github.com/soocke/pixel-reel/domain/action"
	"github.com/soocke/pixel-reel/domain/autopause"
	"github.com/soocke/pixel-reel/domain/capture"
	"github.com/soocke/pixel-reel/domain/fishing"
	"github.com/soocke/pixel-reel/ui/model"
	"github.com/soocke/pixel-reel/ui/presenter"
	"github.com/soocke/pixel-reel/ui/view"
)

// eventBuffer sizes the engine event channel drained on each UI tick. A tick
// of a busy loop produces a few dozen events; overflow is dropped.
const eventBuffer = 256

// AppContainer assembles the domain services, models, presenters and the
// root view.
type AppContainer struct {
	Store   *config.Store
	CfgPath string
	Logger  *slog.Logger

	Run     *model.RunModel
	Region  *model.RegionModel
	Session *model.SessionModel
	Events  chan fishing.Event

	Engine   *fishing.Engine
	Monitor  *autopause.Monitor
	Samplers capture.SamplerFactory
	RootView *view.RootView

	// Presenters
	Status      *presenter.StatusPresenter
	Control     *presenter.ControlPresenter
	SessionP    *presenter.SessionPresenter
	Hotkey      *presenter.HotkeyWatcher
	Calibration *presenter.CalibrationPresenter
	Loop        *presenter.Loop
}

// BuildContainer constructs all components. Nothing is started and no Tk
// widget is created; the root view is built by the application.
func BuildContainer(store *config.Store, cfgPath string, logger *slog.Logger) *AppContainer {
	c := &AppContainer{Store: store, CfgPath: cfgPath, Logger: logger}
	c.Run = &model.RunModel{}
	c.Region = &model.RegionModel{}
	c.Session = model.NewSessionModel()
	c.Events = make(chan fishing.Event, eventBuffer)
	c.Samplers = capture.NewPlatformSamplerFactory(logger)

	c.Engine = fishing.NewEngine(logger, store, action.LeftButton{}, c.Samplers)
	c.Engine.AddListener(fishing.ChannelListener(c.Events))
	c.Monitor = autopause.NewMonitor(logger, store, action.WindowProbe{}, action.KeyPoller{}, c.Engine)

	c.RootView = view.NewRootView(store, cfgPath, logger)

	c.Status = presenter.NewStatusPresenter(c.Events, c.RootView)
	c.Control = presenter.NewControlPresenter(c.Run, c.Region, c.Engine, c.Monitor, store, c.ResolveRegion, c.RootView, logger)
	c.SessionP = presenter.NewSessionPresenter(c.Session, c.Run, c.Engine, c.RootView)
	c.Hotkey = presenter.NewHotkeyWatcher(action.KeyPoller{}, c.toggleKey, c.Control.Toggle, logger)
	c.Calibration = presenter.NewCalibrationPresenter(c.Samplers, c.previewRegion, c.snapshotDir, c.RootView, logger)
	return c
}

// ResolveRegion returns the configured region, or the default one when none
// is set, clamped to the primary display.
func (c *AppContainer) ResolveRegion() (capture.Region, error) {
	w, h, err := capture.ScreenSize()
	if err != nil {
		return capture.Region{}, err
	}
	cfg := c.Store.Snapshot()
	return capture.Resolve(capture.Region{X: cfg.RegionX, Y: cfg.RegionY, W: cfg.RegionW, H: cfg.RegionH}, w, h), nil
}

// previewRegion is the region a running loop watches, otherwise the one a new
// run would use.
func (c *AppContainer) previewRegion() (capture.Region, error) {
	if r, ok := c.Region.Region(); ok && c.Run.Enabled() {
		return r, nil
	}
	return c.ResolveRegion()
}

// ManualResume lifts an auto-pause without waiting for the resume delay.
func (c *AppContainer) ManualResume() {
	if c.Monitor.Running() {
		c.Monitor.ManualResume()
		return
	}
	c.Engine.Resume("manual")
}

func (c *AppContainer) toggleKey() byte { return action.ParseVK(c.Store.Snapshot().ToggleKey) }

func (c *AppContainer) snapshotDir() string { return c.Store.Snapshot().SnapshotDir }
