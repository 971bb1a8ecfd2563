package presenter

import (
	"time"

	"github.com/soocke/pixel-reel/domain/fishing"
	"github.com/soocke/pixel-reel/ui/model"
)

// EnabledModel reports whether automation is enabled.
type EnabledModel interface{ Enabled() bool }

// StatsSource exposes the engine's cumulative counters.
type StatsSource interface{ Stats() fishing.Stats }

// SessionView displays run durations and counters.
type SessionView interface {
	SetSession(session, total time.Duration)
	SetCounters(clicks, casts uint64)
}

// SessionPresenter formats session figures from the model to the view.
type SessionPresenter struct {
	sess  *model.SessionModel
	run   EnabledModel
	stats StatsSource
	view  SessionView
}

// NewSessionPresenter returns a new SessionPresenter.
func NewSessionPresenter(sess *model.SessionModel, run EnabledModel, stats StatsSource, view SessionView) *SessionPresenter {
	return &SessionPresenter{sess: sess, run: run, stats: stats, view: view}
}

// Tick advances the session model and pushes values to the view.
func (p *SessionPresenter) Tick(now time.Time) {
	if p == nil || p.sess == nil || p.run == nil || p.view == nil {
		return
	}
	var c model.Counters
	if p.stats != nil {
		st := p.stats.Stats()
		c = model.Counters{Clicks: st.Clicks, Casts: st.Casts}
	}
	p.sess.OnTick(p.run.Enabled(), now, c)
	v := p.sess.Values()
	p.view.SetSession(v.Session, v.Total)
	p.view.SetCounters(v.Clicks, v.Casts)
}
