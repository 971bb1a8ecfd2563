package fishing

import (
	"errors"
	"time"

	"github.com/soocke/pixel-reel/config"
)

// RunState enumerates the control loop states.
type RunState int32

const (
	StateStopped RunState = iota
	StateCasting
	StateMonitoring
	StatePaused
)

func (s RunState) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateCasting:
		return "casting"
	case StateMonitoring:
		return "monitoring"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// EventKind identifies the payload carried by an Event.
type EventKind int

const (
	EventGreenRatio EventKind = iota
	EventRedRatio
	EventStatus
	EventState
)

// Event is a one-way notification from the control loop. Value is set for
// ratio events, Status for status events and State for state events.
type Event struct {
	Kind   EventKind
	Value  float64
	Status string
	State  RunState
	At     time.Time
}

// Listener receives engine events on the loop goroutine. It must not block.
type Listener func(Event)

// ChannelListener adapts a buffered channel into a Listener. Events are
// dropped when the channel is full.
func ChannelListener(ch chan<- Event) Listener {
	return func(ev Event) {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Input drives the synthetic button used for holds and clicks.
type Input interface {
	Press() error
	Release() error
}

// ConfigSource yields the configuration in effect at the time of the call.
type ConfigSource interface {
	Snapshot() config.Config
}

// Decision is the action chosen for one monitoring tick.
type Decision int

const (
	DecisionWait Decision = iota
	DecisionIdle
	DecisionClick
	DecisionRecast
)

func (d Decision) String() string {
	switch d {
	case DecisionWait:
		return "wait"
	case DecisionIdle:
		return "idle"
	case DecisionClick:
		return "click"
	case DecisionRecast:
		return "recast"
	default:
		return "unknown"
	}
}

// Stats counts engine activity across runs.
type Stats struct {
	Ticks   uint64
	Clicks  uint64
	Casts   uint64 // every hold, including recasts
	Recasts uint64
	Pauses  uint64
	Errors  uint64
}

// ErrAlreadyRunning is returned by Start and Run while a loop is active.
var ErrAlreadyRunning = errors.New("fishing: engine already running")

// Controller is the pause/resume surface other components drive.
type Controller interface {
	Pause(reason string) bool
	Resume(reason string) bool
}
