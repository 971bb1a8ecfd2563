package model

import "sync/atomic"

// RunModel tracks whether automation is switched on. The zero value is off
// and usable. Atomic because Tk callbacks and presenter ticks may race.
type RunModel struct{ enabled atomic.Bool }

// Enabled reports whether automation is on.
func (m *RunModel) Enabled() bool {
	if m == nil {
		return false
	}
	return m.enabled.Load()
}

// SetEnabled stores the flag.
func (m *RunModel) SetEnabled(b bool) {
	if m == nil {
		return
	}
	m.enabled.Store(b)
}
