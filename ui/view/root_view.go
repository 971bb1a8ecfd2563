package view

import (
	"fmt"
	"image"
	"log/slog"
	"strings"
	"time"

	"github.com/soocke/pixel-reel/config"
	"github.com/soocke/pixel-reel/domain/capture"
	"github.com/soocke/pixel-reel/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Handlers are the user actions the root view forwards.
type Handlers struct {
	Toggle        func()
	Resume        func()
	Preview       func()
	Snapshot      func()
	PickRegion    func()
	DefaultRegion func()
	Exit          func()
	ConfigApplied func(config.Config)
}

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews and implements the view contracts of every
// presenter.
type RootView struct {
	store   *config.Store
	cfgPath string
	logger  *slog.Logger

	// Subviews
	Session     SessionStats
	ConfigPanel ConfigPanel
	Preview     CalibrationPreview

	// Widgets
	StateLabel  *TLabelWidget
	StatusLabel *TLabelWidget
	RatioLabel  *LabelWidget
	RegionLabel *LabelWidget
	toggleBtn   *TButtonWidget
	regionBtns  []*ButtonWidget
}

func NewRootView(store *config.Store, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{store: store, cfgPath: cfgPath, logger: logger}
}

// Build constructs the layout. titles lists open windows for the target
// picker.
func (rv *RootView) Build(titles []string, h Handlers) {
	if rv == nil {
		return
	}
	// Row 0: session stats, state label, buttons frame
	stats := Frame()
	Grid(stats, Row(0), Column(0), Columnspan(2), Sticky("w"), Padx("0.3m"), Pady("0.3m"))
	rv.Session = NewSessionStats(stats, 0, 0)
	rv.StateLabel = TLabel(Txt("State: Stopped"), Style(theme.StyleStateLabel))
	Grid(rv.StateLabel, Row(0), Column(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	// Row 1: status and ratios
	rv.StatusLabel = TLabel(Txt("Stopped"), Style(theme.StyleStatusLabel), Width(28))
	Grid(rv.StatusLabel, Row(1), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.2m"))
	rv.RatioLabel = Label(Txt("Green: -  Red: -"), Anchor("w"))
	Grid(rv.RatioLabel, Row(1), Column(2), Sticky("we"), Padx("0.4m"), Pady("0.2m"))
	rv.RegionLabel = Label(Txt("Region: "+rv.configuredRegion()), Anchor("w"))
	Grid(rv.RegionLabel, Row(2), Column(0), Columnspan(3), Sticky("w"), Padx("0.4m"), Pady("0.2m"))

	btnFrame := Frame()
	Grid(btnFrame, Row(0), Column(4), Rowspan(3), Sticky("ne"), Padx("0.3m"), Pady("0.3m"))
	rv.toggleBtn = TButton(Txt("Start"), Style(theme.StylePrimaryButton), Command(h.Toggle))
	Grid(rv.toggleBtn, In(btnFrame), Row(0), Column(0), Columnspan(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	preview := Button(Txt("Preview"), Command(h.Preview))
	Grid(preview, In(btnFrame), Row(1), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	snapshot := Button(Txt("Snapshot"), Command(h.Snapshot))
	Grid(snapshot, In(btnFrame), Row(1), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	pick := Button(Txt("Pick Region"), Command(h.PickRegion))
	Grid(pick, In(btnFrame), Row(2), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	reset := Button(Txt("Default Region"), Command(h.DefaultRegion))
	Grid(reset, In(btnFrame), Row(2), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	rv.regionBtns = []*ButtonWidget{pick, reset}
	resume := Button(Txt("Resume"), Command(h.Resume))
	Grid(resume, In(btnFrame), Row(3), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	exitBtn := TButton(Txt("Exit"), Style(theme.StyleDangerButton), Command(h.Exit))
	Grid(exitBtn, In(btnFrame), Row(3), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	// Config panel rows
	rv.ConfigPanel = NewConfigPanel(rv.store, rv.cfgPath, titles, rv.SetStatus, h.ConfigApplied, rv.logger)
	endRow := rv.ConfigPanel.Build(3)

	// Calibration preview placement
	rv.Preview = NewCalibrationPreview(endRow)
}

func (rv *RootView) configuredRegion() string {
	if rv.store == nil {
		return "default"
	}
	c := rv.store.Snapshot()
	r := capture.Region{X: c.RegionX, Y: c.RegionY, W: c.RegionW, H: c.RegionH}
	if r.Empty() {
		return "default"
	}
	return r.String()
}

// RegionChanged refreshes everything derived from the configured region.
func (rv *RootView) RegionChanged() {
	if rv == nil {
		return
	}
	if rv.RegionLabel != nil {
		rv.RegionLabel.Configure(Txt("Region: " + rv.configuredRegion()))
	}
	if rv.ConfigPanel != nil {
		rv.ConfigPanel.Refresh()
	}
}

// SetStateLabel updates the state label text, highlighting a pause.
func (rv *RootView) SetStateLabel(text string) {
	if rv == nil || rv.StateLabel == nil {
		return
	}
	style := theme.StyleStateLabel
	if strings.HasSuffix(text, "Paused") {
		style = theme.StylePausedLabel
	}
	rv.StateLabel.Configure(Txt(text), Style(style))
}

// SetStatus shows a one-line notification.
func (rv *RootView) SetStatus(text string) {
	if rv != nil && rv.StatusLabel != nil {
		rv.StatusLabel.Configure(Txt(text))
	}
}

// SetRatios shows the latest live green and red ratios.
func (rv *RootView) SetRatios(green, red float64) {
	if rv != nil && rv.RatioLabel != nil {
		rv.RatioLabel.Configure(Txt(fmt.Sprintf("Green: %s  Red: %s", percent(green), percent(red))))
	}
}

// SetRegion shows the region the current run monitors.
func (rv *RootView) SetRegion(r capture.Region) {
	if rv != nil && rv.RegionLabel != nil {
		rv.RegionLabel.Configure(Txt("Region: " + r.String()))
	}
}

// ConfigEditable locks the form and region controls while running and flips
// the toggle button label.
func (rv *RootView) ConfigEditable(enabled bool) {
	if rv == nil {
		return
	}
	if rv.ConfigPanel != nil {
		rv.ConfigPanel.SetEditable(enabled)
	}
	state, label := "disabled", "Stop"
	if enabled {
		state, label = "normal", "Start"
	}
	for _, b := range rv.regionBtns {
		b.Configure(State(state))
	}
	if rv.toggleBtn != nil {
		rv.toggleBtn.Configure(Txt(label))
	}
}

// SetSession updates both session and total durations.
func (rv *RootView) SetSession(session, total time.Duration) {
	if rv == nil || rv.Session == nil {
		return
	}
	rv.Session.SetSession(session)
	rv.Session.SetTotal(total)
}

// SetCounters updates the click and cast counts.
func (rv *RootView) SetCounters(clicks, casts uint64) {
	if rv != nil && rv.Session != nil {
		rv.Session.SetCounters(clicks, casts)
	}
}

// UpdatePreview proxies to the calibration preview.
func (rv *RootView) UpdatePreview(img image.Image) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.UpdatePreview(img)
	}
}

// UpdateMask proxies to the calibration preview.
func (rv *RootView) UpdateMask(img image.Image) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.UpdateMask(img)
	}
}

// SetCalibration shows the ratios measured on the preview frame.
func (rv *RootView) SetCalibration(green, red float64) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.SetRatios(green, red)
	}
}
