package presenter

import "time"

// Ticker is a presenter driven by the UI tick.
type Ticker interface{ Tick(now time.Time) }

// Loop aggregates feature presenters and drives periodic updates.
//
// It calls Tick on each sub-presenter in order and then invokes a
// scheduler callback. The zero value is usable (methods are nil-safe).
type Loop struct {
	Status      *StatusPresenter
	Control     *ControlPresenter
	Session     *SessionPresenter
	Hotkey      *HotkeyWatcher
	Calibration *CalibrationPresenter
	Schedule    func()
}

func NewLoop(status *StatusPresenter, control *ControlPresenter, sess *SessionPresenter, hotkey *HotkeyWatcher, calib *CalibrationPresenter, schedule func()) *Loop {
	return &Loop{Status: status, Control: control, Session: sess, Hotkey: hotkey, Calibration: calib, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	// Status first so the final "Stopped"/"Error" text lands before Control
	// flips the UI back to idle.
	for _, t := range []Ticker{l.Status, l.Hotkey, l.Control, l.Session, l.Calibration} {
		t.Tick(now)
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
