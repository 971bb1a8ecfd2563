package presenter

import (
	"time"

	"github.com/soocke/pixel-reel/domain/fishing"
)

// StatusView shows the engine's latest notifications.
type StatusView interface {
	SetStateLabel(string)
	SetStatus(string)
	SetRatios(green, red float64)
}

// StatusPresenter drains engine events delivered on a channel and reflects
// the most recent of each kind. Events arrive on the engine goroutine; the
// view is only touched from Tick, on the Tk thread.
type StatusPresenter struct {
	events <-chan fishing.Event
	view   StatusView

	state      fishing.RunState
	status     string
	green, red float64
}

func NewStatusPresenter(events <-chan fishing.Event, view StatusView) *StatusPresenter {
	return &StatusPresenter{events: events, view: view}
}

// Tick drains queued events and updates the view with whatever changed.
func (p *StatusPresenter) Tick(now time.Time) {
	if p == nil || p.events == nil || p.view == nil {
		return
	}
	var stateChanged, statusChanged, ratioChanged bool
drain:
	for {
		select {
		case ev := <-p.events:
			switch ev.Kind {
			case fishing.EventState:
				stateChanged = stateChanged || ev.State != p.state
				p.state = ev.State
			case fishing.EventStatus:
				statusChanged = statusChanged || ev.Status != p.status
				p.status = ev.Status
			case fishing.EventGreenRatio:
				p.green, ratioChanged = ev.Value, true
			case fishing.EventRedRatio:
				p.red, ratioChanged = ev.Value, true
			}
		default:
			break drain
		}
	}
	if stateChanged {
		p.view.SetStateLabel("State: " + p.state.String())
	}
	if statusChanged {
		p.view.SetStatus(p.status)
	}
	if ratioChanged {
		p.view.SetRatios(p.green, p.red)
	}
}
