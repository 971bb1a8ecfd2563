package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/soocke/pixel-reel/config"
)

// FieldKind selects how a form value is parsed.
type FieldKind int

const (
	FieldFloat FieldKind = iota
	FieldInt
	FieldBool
	FieldString
)

// Field is one editable configuration entry.
type Field struct {
	ID    string // config key
	Label string
	Kind  FieldKind

	float *float64
	int   *int
	bool  *bool
	str   *string
}

// fieldsFor lists the form fields bound to c, in display order.
func fieldsFor(c *config.Config) []Field {
	return []Field{
		{ID: "green_th", Label: "Green Threshold", Kind: FieldFloat, float: &c.GreenThreshold},
		{ID: "red_th", Label: "Red Threshold", Kind: FieldFloat, float: &c.RedThreshold},
		{ID: "active_min_ratio", Label: "Active Min Ratio", Kind: FieldFloat, float: &c.ActiveMinRatio},
		{ID: "click_i", Label: "Click Interval (s)", Kind: FieldFloat, float: &c.ClickInterval},
		{ID: "idle_i", Label: "Idle Interval (s)", Kind: FieldFloat, float: &c.IdleInterval},
		{ID: "hold_s", Label: "Cast Hold (s)", Kind: FieldFloat, float: &c.HoldSeconds},
		{ID: "down_s", Label: "Click Down (s)", Kind: FieldFloat, float: &c.DownSeconds},
		{ID: "inactive_to", Label: "Inactive Timeout (s)", Kind: FieldFloat, float: &c.InactiveTimeout},
		{ID: "recast_delay", Label: "Recast Delay (s)", Kind: FieldFloat, float: &c.RecastDelay},
		{ID: "auto_recast", Label: "Auto Recast (true/false)", Kind: FieldBool, bool: &c.AutoRecast},
		{ID: "roi_x", Label: "Region X", Kind: FieldInt, int: &c.RegionX},
		{ID: "roi_y", Label: "Region Y", Kind: FieldInt, int: &c.RegionY},
		{ID: "roi_w", Label: "Region W (0 = default)", Kind: FieldInt, int: &c.RegionW},
		{ID: "roi_h", Label: "Region H (0 = default)", Kind: FieldInt, int: &c.RegionH},
		{ID: "key", Label: "Toggle Key (e.g. F1 or R)", Kind: FieldString, str: &c.ToggleKey},
		{ID: "auto_pause_enabled", Label: "Auto Pause (true/false)", Kind: FieldBool, bool: &c.AutoPauseEnabled},
		{ID: "pause_on_typing", Label: "Pause On Typing", Kind: FieldBool, bool: &c.PauseOnTyping},
		{ID: "pause_on_focus_loss", Label: "Pause On Focus Loss", Kind: FieldBool, bool: &c.PauseOnFocusLoss},
		{ID: "resume_delay_seconds", Label: "Resume Delay (s)", Kind: FieldFloat, float: &c.ResumeDelaySeconds},
		{ID: "target_window_title", Label: "Target Window Title", Kind: FieldString, str: &c.TargetWindowTitle},
		{ID: "target_process_name", Label: "Target Process Name", Kind: FieldString, str: &c.TargetProcessName},
		{ID: "snapshot_dir", Label: "Snapshot Dir", Kind: FieldString, str: &c.SnapshotDir},
		{ID: "dark_mode", Label: "Dark Mode (true/false)", Kind: FieldBool, bool: &c.DarkMode},
	}
}

// Fields returns the editable fields in display order.
func Fields() []Field { return fieldsFor(&config.Config{}) }

// FormValues renders every field of c as text, keyed by ID.
func FormValues(c config.Config) map[string]string {
	fields := fieldsFor(&c)
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		switch f.Kind {
		case FieldFloat:
			out[f.ID] = strconv.FormatFloat(*f.float, 'f', -1, 64)
		case FieldInt:
			out[f.ID] = strconv.Itoa(*f.int)
		case FieldBool:
			out[f.ID] = strconv.FormatBool(*f.bool)
		case FieldString:
			out[f.ID] = *f.str
		}
	}
	return out
}

// ApplyForm parses values into c. Unknown IDs are ignored. Fields that fail
// to parse keep their current value and are reported in the returned error.
// Empty text leaves strings unchanged except for the target patterns, which
// may be cleared.
func ApplyForm(c *config.Config, values map[string]string) error {
	if c == nil {
		return nil
	}
	var bad []string
	for _, f := range fieldsFor(c) {
		raw, ok := values[f.ID]
		if !ok {
			continue
		}
		s := strings.TrimSpace(raw)
		switch f.Kind {
		case FieldFloat:
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				bad = append(bad, f.ID)
				continue
			}
			*f.float = v
		case FieldInt:
			v, err := strconv.Atoi(s)
			if err != nil {
				bad = append(bad, f.ID)
				continue
			}
			*f.int = v
		case FieldBool:
			v, ok := parseBoolLoose(s)
			if !ok {
				bad = append(bad, f.ID)
				continue
			}
			*f.bool = v
		case FieldString:
			if s == "" && f.ID != "target_window_title" && f.ID != "target_process_name" {
				continue
			}
			*f.str = s
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("invalid values for %s", strings.Join(bad, ", "))
	}
	return nil
}

func parseBoolLoose(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, true
	case "false", "0", "no", "n", "off", "f":
		return false, true
	default:
		return false, false
	}
}
