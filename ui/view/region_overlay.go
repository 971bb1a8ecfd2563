package view

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/soocke/pixel-reel/config"
	"github.com/soocke/pixel-reel/domain/capture"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"
)

// RegionOverlay manages a transparent, resizable window the user drags over
// the mini-game bar to set the monitored region. The window has no controls
// of its own so its geometry is exactly the region.
type RegionOverlay interface {
	OpenOrFocus()
	Clear()
}

const overlayKey = "#008080" // made transparent on Windows

type regionOverlay struct {
	logger  *slog.Logger
	store   *config.Store
	cfgPath string
	current func() (capture.Region, error)
	changed func()
	win     *ToplevelWidget
}

// NewRegionOverlay creates an overlay manager. current yields the region the
// window opens on; changed runs after the store was updated.
func NewRegionOverlay(store *config.Store, cfgPath string, current func() (capture.Region, error), changed func(), logger *slog.Logger) RegionOverlay {
	return &regionOverlay{logger: logger, store: store, cfgPath: cfgPath, current: current, changed: changed}
}

func (v *regionOverlay) OpenOrFocus() {
	if v.win != nil {
		WmGeometry(v.win.Window)
		return
	}
	r := capture.DefaultRegion(fallbackScreen())
	if v.current != nil {
		if cur, err := v.current(); err == nil {
			r = cur
		}
	}
	win := App.Toplevel(Borderwidth(2), Background(overlayKey))
	win.WmTitle("Monitor Region: Enter confirms, Esc cancels")
	v.win = win
	WmGeometry(win.Window, r.String())
	WmAttributes(win.Window, "-topmost", 1)
	WmAttributes(win.Window, "-toolwindow", true)
	WmAttributes(win.Window, "-transparentcolor", overlayKey)
	GridRowConfigure(win.Window, 0, Weight(1))
	GridColumnConfigure(win.Window, 0, Weight(0))
	GridColumnConfigure(win.Window, 1, Weight(1))
	GridColumnConfigure(win.Window, 2, Weight(0))
	left := win.Frame(Width(4), Background("#FFFFFF"))
	Grid(left, Row(0), Column(0), Sticky("ns"))
	center := win.Frame(Background(overlayKey))
	Grid(center, Row(0), Column(1), Sticky("nsew"))
	right := win.Frame(Width(4), Background("#FFFFFF"))
	Grid(right, Row(0), Column(2), Sticky("ns"))
	Bind(win, "<Return>", Command(v.confirm))
	Bind(win, "<Escape>", Command(v.cancel))
}

// Clear drops the configured region so runs fall back to the default one.
func (v *regionOverlay) Clear() {
	v.store.Update(func(c *config.Config) { c.RegionX, c.RegionY, c.RegionW, c.RegionH = 0, 0, 0, 0 })
	v.persist()
	v.destroy()
}

func (v *regionOverlay) confirm() {
	if v.win == nil {
		return
	}
	geom := WmGeometry(v.win.Window)
	r, ok := parseGeometry(geom)
	if !ok {
		if v.logger != nil {
			v.logger.Warn("region overlay geometry", "geometry", geom)
		}
		v.destroy()
		return
	}
	sw, sh := fallbackScreen()
	r = capture.Clamp(r, sw, sh)
	v.store.Update(func(c *config.Config) { c.RegionX, c.RegionY, c.RegionW, c.RegionH = r.X, r.Y, r.W, r.H })
	if v.logger != nil {
		v.logger.Info("region set", "region", r.String())
	}
	v.persist()
	v.destroy()
}

func (v *regionOverlay) persist() {
	cfg := v.store.Snapshot()
	if err := cfg.Save(v.cfgPath); err != nil && v.logger != nil {
		v.logger.Error("config save failed", "error", err)
	}
	if v.changed != nil {
		v.changed()
	}
}

func (v *regionOverlay) cancel() { v.destroy() }

func (v *regionOverlay) destroy() {
	if v.win != nil {
		Destroy(v.win)
		v.win = nil
	}
}

// fallbackScreen returns the primary display size, or 1920x1080 when it
// cannot be read.
func fallbackScreen() (int, int) {
	w, h, err := capture.ScreenSize()
	if err != nil || w <= 0 || h <= 0 {
		return 1920, 1080
	}
	return w, h
}

// geomRe matches window geometry strings in the format "WIDTHxHEIGHT+X+Y"
var geomRe = regexp.MustCompile(`^(\d+)x(\d+)\+(-?\d+)\+(-?\d+)$`)

// parseGeometry parses a Tk geometry string into a region.
func parseGeometry(g string) (capture.Region, bool) {
	m := geomRe.FindStringSubmatch(strings.TrimSpace(g))
	if len(m) != 5 {
		return capture.Region{}, false
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	x, _ := strconv.Atoi(m[3])
	y, _ := strconv.Atoi(m[4])
	if w <= 0 || h <= 0 {
		return capture.Region{}, false
	}
	return capture.Region{X: x, Y: y, W: w, H: h}, true
}
