package presenter

import (
	"log/slog"
	"time"

	"github.com/soocke/pixel-reel/config"
	"github.com/soocke/pixel-reel/domain/capture"
)

// RunModel provides enabled state access.
type RunModel interface {
	Enabled() bool
	SetEnabled(bool)
}

// ActiveRegion records the region of the current run.
type ActiveRegion interface {
	Set(capture.Region)
	Clear()
}

// EngineControl narrows what the presenter needs from the control loop.
type EngineControl interface {
	Start(capture.Region) error
	Stop()
	Running() bool
}

// MonitorControl narrows what the presenter needs from the activity monitor.
type MonitorControl interface {
	Start()
	Stop() error
}

// ConfigSource yields the current configuration.
type ConfigSource interface{ Snapshot() config.Config }

// RegionResolver returns the region a new run should monitor.
type RegionResolver func() (capture.Region, error)

// ControlView updates UI elements affected by starting and stopping.
type ControlView interface {
	ConfigEditable(bool)
	SetStatus(string)
	SetRegion(capture.Region)
}

// ControlPresenter coordinates switching automation on and off.
type ControlPresenter struct {
	model   RunModel
	region  ActiveRegion
	engine  EngineControl
	monitor MonitorControl
	cfg     ConfigSource
	resolve RegionResolver
	view    ControlView
	logger  *slog.Logger

	monitorOn bool
}

// NewControlPresenter wires the presenter. region and monitor may be nil.
func NewControlPresenter(model RunModel, region ActiveRegion, engine EngineControl, monitor MonitorControl, cfg ConfigSource, resolve RegionResolver, view ControlView, logger *slog.Logger) *ControlPresenter {
	return &ControlPresenter{model: model, region: region, engine: engine, monitor: monitor, cfg: cfg, resolve: resolve, view: view, logger: logger}
}

func (c *ControlPresenter) ready() bool {
	return c != nil && c.model != nil && c.engine != nil && c.cfg != nil && c.resolve != nil && c.view != nil
}

// Enable resolves the region, starts the engine and, when configured, the
// activity monitor. Idempotent.
func (c *ControlPresenter) Enable() {
	if !c.ready() || c.model.Enabled() {
		return
	}
	region, err := c.resolve()
	if err == nil {
		err = c.engine.Start(region)
	}
	if err != nil {
		if c.logger != nil {
			c.logger.Error("start failed", "error", err)
		}
		c.view.SetStatus("Error: " + err.Error())
		return
	}
	if c.logger != nil {
		c.logger.Info("automation enabled", "region", region.String())
	}
	c.view.SetRegion(region)
	if c.region != nil {
		c.region.Set(region)
	}
	if c.monitor != nil && c.cfg.Snapshot().AutoPauseEnabled {
		c.monitor.Start()
		c.monitorOn = true
	}
	c.model.SetEnabled(true)
	c.view.ConfigEditable(false)
}

// Disable stops the monitor and the engine. Idempotent.
func (c *ControlPresenter) Disable() {
	if !c.ready() || !c.model.Enabled() {
		return
	}
	c.stopMonitor()
	c.engine.Stop()
	if c.region != nil {
		c.region.Clear()
	}
	c.model.SetEnabled(false)
	c.view.ConfigEditable(true)
	if c.logger != nil {
		c.logger.Info("automation disabled")
	}
}

// Toggle flips enabled state delegating to Enable/Disable.
func (c *ControlPresenter) Toggle() {
	if !c.ready() {
		return
	}
	if c.model.Enabled() {
		c.Disable()
		return
	}
	c.Enable()
}

// Tick notices a run that ended on its own, such as after a capture error,
// and brings the UI back to the stopped state.
func (c *ControlPresenter) Tick(now time.Time) {
	if !c.ready() || !c.model.Enabled() || c.engine.Running() {
		return
	}
	if c.logger != nil {
		c.logger.Warn("engine exited, disabling")
	}
	c.Disable()
}

func (c *ControlPresenter) stopMonitor() {
	if !c.monitorOn {
		return
	}
	c.monitorOn = false
	if err := c.monitor.Stop(); err != nil && c.logger != nil {
		c.logger.Warn("monitor stop", "error", err)
	}
}
