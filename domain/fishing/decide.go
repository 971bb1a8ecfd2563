package fishing

import (
	"time"

	"github.com/soocke/pixel-reel/config"
	"github.com/soocke/pixel-reel/domain/vision"
)

// Decide picks the action for one tick. idleFor is the time since the last
// active sample. Threshold comparisons are inclusive; a click additionally
// needs green to strictly dominate red.
func Decide(s vision.Sample, c config.Config, idleFor time.Duration) Decision {
	if s.Active(c.ActiveMinRatio) {
		if s.Green >= c.GreenThreshold && s.Green > s.Red {
			return DecisionClick
		}
		return DecisionIdle
	}
	if c.AutoRecast && idleFor >= c.InactivityTimeout() {
		return DecisionRecast
	}
	return DecisionWait
}
