package view

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/pixel-reel/config"
	"github.com/soocke/pixel-reel/ui/model"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ConfigPanel encapsulates the configuration form widgets and apply logic.
// Apply writes through the store, so a running loop sees the new values on
// its next tick, and persists the file.
type ConfigPanel interface {
	Build(startRow int) (endRow int) // constructs widgets starting at startRow, returns next free row
	SetEditable(enabled bool)
	ApplyChanges()
	Refresh() // reloads widget text from the store
}

// fieldsPerColumn splits the form into two column pairs.
const fieldsPerColumn = 12

type configPanel struct {
	store   *config.Store
	cfgPath string
	logger  *slog.Logger
	titles  []string
	status  func(string)
	applied func(config.Config)

	applyBtn *ButtonWidget
	windows  *TComboboxWidget
	widgets  map[string]*TextWidget // keyed by config key
}

// NewConfigPanel creates the view bound to store. titles fills the window
// picker that sets target_window_title; status receives apply feedback and
// applied the stored configuration after each Apply.
func NewConfigPanel(store *config.Store, cfgPath string, titles []string, status func(string), applied func(config.Config), logger *slog.Logger) ConfigPanel {
	return &configPanel{store: store, cfgPath: cfgPath, titles: titles, status: status, applied: applied, logger: logger, widgets: make(map[string]*TextWidget)}
}

func (v *configPanel) Build(startRow int) (row int) {
	values := model.FormValues(v.store.Snapshot())
	for i, f := range model.Fields() {
		r, col := startRow+i%fieldsPerColumn, (i/fieldsPerColumn)*2
		lbl := Label(Txt(f.Label), Anchor("w"))
		Grid(lbl, Row(r), Column(col), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := Text(Height(1), Width(16))
		Grid(w, Row(r), Column(col+1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", values[f.ID])
		v.widgets[f.ID] = w
	}
	row = startRow + fieldsPerColumn

	if len(v.titles) > 0 {
		lbl := Label(Txt("Pick Target Window"), Anchor("w"))
		Grid(lbl, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		v.windows = TCombobox(Values(v.titles), Width(26))
		Grid(v.windows, Row(row), Column(1), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		Bind(v.windows, "<<ComboboxSelected>>", Command(v.windowPicked))
		row++
	}

	v.applyBtn = Button(Txt("Apply Changes"), Command(func() { v.ApplyChanges() }))
	Grid(v.applyBtn, Row(row), Column(0), Columnspan(4), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	return row
}

// windowPicked copies the chosen title into the target_window_title field.
// It takes effect on Apply, like any other edit.
func (v *configPanel) windowPicked() {
	if v.windows == nil {
		return
	}
	idx, err := strconv.Atoi(v.windows.Current(nil))
	if err != nil || idx < 0 || idx >= len(v.titles) {
		if v.logger != nil {
			v.logger.Error("window selection parse error", "error", err)
		}
		return
	}
	if w := v.widgets["target_window_title"]; w != nil {
		w.Delete("1.0", END)
		w.Insert("1.0", v.titles[idx])
	}
}

func (v *configPanel) SetEditable(enabled bool) {
	state := "disabled"
	if enabled {
		state = "normal"
	}
	for _, w := range v.widgets {
		if w != nil {
			w.Configure(State(state))
		}
	}
	if v.applyBtn != nil {
		v.applyBtn.Configure(State(state))
	}
	if v.windows != nil {
		v.windows.Configure(State(state))
	}
}

func (v *configPanel) text(w *TextWidget) string {
	if w == nil {
		return ""
	}
	return strings.Join(w.Get("1.0", END), "")
}

func (v *configPanel) ApplyChanges() {
	if v.store == nil {
		return
	}
	values := make(map[string]string, len(v.widgets))
	for id, w := range v.widgets {
		values[id] = v.text(w)
	}
	var formErr error
	cfg := v.store.Update(func(c *config.Config) {
		formErr = model.ApplyForm(c, values)
	})
	v.Refresh() // show clamped values
	if v.applied != nil {
		v.applied(cfg)
	}
	if formErr != nil {
		if v.logger != nil {
			v.logger.Warn("config form", "error", formErr)
		}
		v.report(formErr.Error())
	}
	if err := cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
		v.report("Error: " + err.Error())
		return
	}
	if v.logger != nil {
		v.logger.Info("config saved", "path", v.cfgPath)
	}
	if formErr == nil {
		v.report("Config saved")
	}
}

func (v *configPanel) Refresh() {
	if v.store == nil {
		return
	}
	values := model.FormValues(v.store.Snapshot())
	for id, w := range v.widgets {
		if w == nil {
			continue
		}
		w.Delete("1.0", END)
		w.Insert("1.0", values[id])
	}
}

func (v *configPanel) report(msg string) {
	if v.status != nil {
		v.status(msg)
	}
}
