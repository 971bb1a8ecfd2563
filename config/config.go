package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for the control loop, the auto-pause
// monitor and app behavior. Fields may be loaded from a JSON, TOML or YAML
// file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug" toml:"debug" yaml:"debug"`

	// Control loop thresholds (ratios in [0,1]).
	GreenThreshold float64 `json:"green_th" toml:"green_th" yaml:"green_th"`
	RedThreshold   float64 `json:"red_th" toml:"red_th" yaml:"red_th"`
	ActiveMinRatio float64 `json:"active_min_ratio" toml:"active_min_ratio" yaml:"active_min_ratio"`

	// Control loop timings, in seconds.
	ClickInterval   float64 `json:"click_i" toml:"click_i" yaml:"click_i"`
	IdleInterval    float64 `json:"idle_i" toml:"idle_i" yaml:"idle_i"`
	HoldSeconds     float64 `json:"hold_s" toml:"hold_s" yaml:"hold_s"`
	DownSeconds     float64 `json:"down_s" toml:"down_s" yaml:"down_s"`
	InactiveTimeout float64 `json:"inactive_to" toml:"inactive_to" yaml:"inactive_to"`
	RecastDelay     float64 `json:"recast_delay" toml:"recast_delay" yaml:"recast_delay"`
	AutoRecast      bool    `json:"auto_recast" toml:"auto_recast" yaml:"auto_recast"`

	// Region of interest. A zero width or height selects the default region.
	RegionX int `json:"roi_x" toml:"roi_x" yaml:"roi_x"`
	RegionY int `json:"roi_y" toml:"roi_y" yaml:"roi_y"`
	RegionW int `json:"roi_w" toml:"roi_w" yaml:"roi_w"`
	RegionH int `json:"roi_h" toml:"roi_h" yaml:"roi_h"`

	// Start/stop toggle key (e.g. F1 or R).
	ToggleKey string `json:"key" toml:"key" yaml:"key"`

	// Auto-pause
	AutoPauseEnabled   bool    `json:"auto_pause_enabled" toml:"auto_pause_enabled" yaml:"auto_pause_enabled"`
	PauseOnTyping      bool    `json:"pause_on_typing" toml:"pause_on_typing" yaml:"pause_on_typing"`
	PauseOnFocusLoss   bool    `json:"pause_on_focus_loss" toml:"pause_on_focus_loss" yaml:"pause_on_focus_loss"`
	ResumeDelaySeconds float64 `json:"resume_delay_seconds" toml:"resume_delay_seconds" yaml:"resume_delay_seconds"`
	TargetWindowTitle  string  `json:"target_window_title" toml:"target_window_title" yaml:"target_window_title"`
	TargetProcessName  string  `json:"target_process_name" toml:"target_process_name" yaml:"target_process_name"`

	SnapshotDir string `json:"snapshot_dir" toml:"snapshot_dir" yaml:"snapshot_dir"`
	DarkMode    bool   `json:"dark_mode" toml:"dark_mode" yaml:"dark_mode"`
}

// Floors applied to input timings so a near-zero value still produces an
// input the target application recognises.
const (
	MinHold        = 100 * time.Millisecond
	MinPress       = time.Millisecond
	MinResumeDelay = 500 * time.Millisecond
)

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:              false,
		GreenThreshold:     0.14,
		RedThreshold:       0.10,
		ActiveMinRatio:     0.03,
		ClickInterval:      0.035,
		IdleInterval:       0.010,
		HoldSeconds:        3.0,
		DownSeconds:        0.01,
		InactiveTimeout:    1.2,
		RecastDelay:        0.30,
		AutoRecast:         true,
		ToggleKey:          "F1",
		AutoPauseEnabled:   false,
		PauseOnTyping:      true,
		PauseOnFocusLoss:   true,
		ResumeDelaySeconds: 2.0,
		TargetWindowTitle:  "Roblox",
		TargetProcessName:  "roblox",
		SnapshotDir:        "snapshots",
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	d := DefaultConfig()
	clampRatio := func(v *float64, def float64) {
		if *v < 0 || *v > 1 {
			*v = def
		}
	}
	clampRatio(&c.GreenThreshold, d.GreenThreshold)
	clampRatio(&c.RedThreshold, d.RedThreshold)
	clampRatio(&c.ActiveMinRatio, d.ActiveMinRatio)
	nonNegative := func(v *float64, def float64) {
		if *v < 0 {
			*v = def
		}
	}
	nonNegative(&c.ClickInterval, d.ClickInterval)
	nonNegative(&c.IdleInterval, d.IdleInterval)
	nonNegative(&c.HoldSeconds, d.HoldSeconds)
	nonNegative(&c.DownSeconds, d.DownSeconds)
	nonNegative(&c.InactiveTimeout, d.InactiveTimeout)
	nonNegative(&c.RecastDelay, 0)
	if c.ResumeDelaySeconds < MinResumeDelay.Seconds() {
		c.ResumeDelaySeconds = MinResumeDelay.Seconds()
	}
	if c.RegionW < 0 || c.RegionH < 0 {
		c.RegionW, c.RegionH = 0, 0
	}
	if strings.TrimSpace(c.ToggleKey) == "" {
		c.ToggleKey = d.ToggleKey
	}
	if strings.TrimSpace(c.SnapshotDir) == "" {
		c.SnapshotDir = d.SnapshotDir
	}
	return nil
}

// HoldDuration is the cast hold time, floored at MinHold.
func (c Config) HoldDuration() time.Duration { return floorDuration(c.HoldSeconds, MinHold) }

// PressDuration is the click press time, floored at MinPress.
func (c Config) PressDuration() time.Duration { return floorDuration(c.DownSeconds, MinPress) }

// ClickWait is the pause after a click.
func (c Config) ClickWait() time.Duration { return floorDuration(c.ClickInterval, 0) }

// IdleWait is the pause after an idle or waiting tick.
func (c Config) IdleWait() time.Duration { return floorDuration(c.IdleInterval, 0) }

// InactivityTimeout is how long no active sample may last before a recast.
func (c Config) InactivityTimeout() time.Duration { return floorDuration(c.InactiveTimeout, 0) }

// RecastWait is the optional delay before a recast hold.
func (c Config) RecastWait() time.Duration { return floorDuration(c.RecastDelay, 0) }

// ResumeDelay is the quiet period before auto-pause resumes, floored at MinResumeDelay.
func (c Config) ResumeDelay() time.Duration {
	return floorDuration(c.ResumeDelaySeconds, MinResumeDelay)
}

func floorDuration(seconds float64, floor time.Duration) time.Duration {
	d := time.Duration(seconds * float64(time.Second))
	if d < floor {
		return floor
	}
	return d
}

type format int

const (
	formatJSON format = iota
	formatTOML
	formatYAML
)

func formatFor(path string) format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return formatTOML
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatJSON
	}
}

// Load attempts to read configuration from the given file path. The file
// extension selects the format (.toml, .yaml/.yml, anything else JSON). If the
// file does not exist it returns DefaultConfig(). On decode error it returns
// defaults with the error. Keys missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	switch formatFor(path) {
	case formatTOML:
		_, err = toml.NewDecoder(f).Decode(cfg)
	case formatYAML:
		err = yaml.NewDecoder(f).Decode(cfg)
	default:
		err = json.NewDecoder(f).Decode(cfg)
	}
	if err != nil {
		return DefaultConfig(), fmt.Errorf("decode %s: %w", path, err)
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in the format selected by
// its extension.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	switch formatFor(path) {
	case formatTOML:
		return toml.NewEncoder(f).Encode(c)
	case formatYAML:
		enc := yaml.NewEncoder(f)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	}
}
