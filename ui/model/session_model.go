package model

import "time"

// Counters are cumulative engine counts sampled on each tick.
type Counters struct {
	Clicks uint64
	Casts  uint64
}

// SessionModel tracks the current run's duration and counts alongside the
// totals across runs. Presenters poll Values and push them to views. The zero
// value is ready to use.
type SessionModel struct {
	active   bool
	start    time.Time
	session  time.Duration
	total    time.Duration
	baseline Counters
	current  Counters
}

// NewSessionModel returns a ready-to-use SessionModel.
func NewSessionModel() *SessionModel { return &SessionModel{} }

// OnTick advances the model with the run flag, the time and the engine's
// cumulative counters.
func (m *SessionModel) OnTick(running bool, now time.Time, c Counters) {
	if m == nil {
		return
	}
	switch {
	case running && !m.active:
		m.active = true
		m.start = now
		m.session = 0
		m.baseline = c
	case !running && m.active:
		m.session = now.Sub(m.start)
		m.total += m.session
		m.active = false
		m.current = c
		return
	case !running:
		return
	}
	m.session = now.Sub(m.start)
	m.current = c
}

// SessionValues is a snapshot for display.
type SessionValues struct {
	Session time.Duration
	Total   time.Duration
	Clicks  uint64
	Casts   uint64
}

// Values returns the current session figures. Total includes the ongoing
// session. Counts are for the latest session only.
func (m *SessionModel) Values() SessionValues {
	if m == nil {
		return SessionValues{}
	}
	v := SessionValues{Session: m.session, Total: m.total}
	if m.active {
		v.Total += m.session
	}
	v.Clicks = m.current.Clicks - m.baseline.Clicks
	v.Casts = m.current.Casts - m.baseline.Casts
	return v
}
