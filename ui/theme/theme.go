package theme

// Centralized theming for the status window: palette constants and Apply,
// which activates the base theme and configures the semantic styles.

import (
	tk "modernc.org/tk9.0"
)

// Palette holds resolved colors for one mode.
type Palette struct {
	AppBg     string
	Surface   string
	Primary   string
	Danger    string
	Accent    string
	Paused    string
	Text      string
	TextMuted string
}

var (
	light = Palette{
		AppBg:     "#f7f9fb",
		Surface:   "#ffffff",
		Primary:   "#2563eb",
		Danger:    "#dc2626",
		Accent:    "#10b981",
		Paused:    "#d97706",
		Text:      "#1e293b",
		TextMuted: "#64748b",
	}
	dark = Palette{
		AppBg:     "#0f172a",
		Surface:   "#1e293b",
		Primary:   "#3b82f6",
		Danger:    "#ef4444",
		Accent:    "#10b981",
		Paused:    "#f59e0b",
		Text:      "#f1f5f9",
		TextMuted: "#94a3b8",
	}
)

// style names used with Style("primary.TButton") etc.
const (
	StylePrimaryButton = "primary.TButton"
	StyleDangerButton  = "danger.TButton"
	StyleStateLabel    = "state.TLabel"
	StylePausedLabel   = "paused.TLabel"
	StyleStatusLabel   = "status.TLabel"
)

var darkMode bool

// For returns the palette for the given mode.
func For(isDark bool) Palette {
	if isDark {
		return dark
	}
	return light
}

// Apply (re)configures styles for the given mode. Safe to call again when
// the mode changes.
func Apply(isDark bool) {
	darkMode = isDark
	p := For(isDark)
	_ = tk.ActivateTheme("azure light") // baseline metrics
	tk.App.Configure(tk.Background(p.AppBg))

	tk.StyleConfigure(StylePrimaryButton,
		tk.Background(p.Primary),
		tk.Foreground("white"),
		tk.Padding("4p 3p"),
		tk.Borderwidth(1),
		tk.Relief("ridge"),
	)
	tk.StyleConfigure(StyleDangerButton,
		tk.Background(p.Danger),
		tk.Foreground("white"),
		tk.Padding("4p 3p"),
		tk.Borderwidth(1),
		tk.Relief("ridge"),
	)
	tk.StyleConfigure(StyleStateLabel,
		tk.Foreground("white"),
		tk.Background(p.Accent),
		tk.Padding("4p 2p"),
		tk.Borderwidth(1),
		tk.Relief("groove"),
	)
	tk.StyleConfigure(StylePausedLabel,
		tk.Foreground("white"),
		tk.Background(p.Paused),
		tk.Padding("4p 2p"),
		tk.Borderwidth(1),
		tk.Relief("groove"),
	)
	tk.StyleConfigure(StyleStatusLabel,
		tk.Foreground(p.Text),
		tk.Background(p.Surface),
		tk.Padding("2p 1p"),
	)
}

// IsDark reports the mode last applied.
func IsDark() bool { return darkMode }
