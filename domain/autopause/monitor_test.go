package autopause

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/soocke/pixel-reel/config"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

type fakeProbe struct {
	mu    sync.Mutex
	info  WindowInfo
	err   error
	block chan struct{}
	calls int
}

func (f *fakeProbe) Foreground() (WindowInfo, error) {
	f.mu.Lock()
	f.calls++
	block := f.block
	info, err := f.info, f.err
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return info, err
}

func (f *fakeProbe) set(info WindowInfo, err error) {
	f.mu.Lock()
	f.info, f.err = info, err
	f.mu.Unlock()
}

func (f *fakeProbe) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeKeys struct {
	ch  chan KeyEvent
	err error
}

func (f *fakeKeys) Listen(ctx context.Context) (<-chan KeyEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.ch, nil
}

type fakeController struct {
	mu      sync.Mutex
	pauses  []string
	resumes []string
}

func (f *fakeController) Pause(reason string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pauses = append(f.pauses, reason)
	return true
}

func (f *fakeController) Resume(reason string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resumes = append(f.resumes, reason)
	return true
}

func (f *fakeController) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pauses), len(f.resumes)
}

var (
	gameWindow  = WindowInfo{Title: "Roblox", Process: "RobloxPlayerBeta.exe"}
	otherWindow = WindowInfo{Title: "Notepad", Process: "notepad.exe"}
)

func newTestMonitor(store *config.Store, probe *fakeProbe, keys KeyFeed) (*Monitor, *fakeController) {
	ctrl := &fakeController{}
	m := NewMonitor(discardLogger, store, probe, keys, ctrl)
	m.interval = 10 * time.Millisecond
	m.errBackoff = 20 * time.Millisecond
	m.stopTimeout = 200 * time.Millisecond
	return m, ctrl
}

func waitFor(t *testing.T, what string, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timeout waiting for %s", what)
}

func TestMonitor_PausesOnFocusLossOnce(t *testing.T) {
	probe := &fakeProbe{info: otherWindow}
	m, ctrl := newTestMonitor(config.NewStore(nil), probe, nil)
	m.Start()
	defer m.Stop()
	waitFor(t, "pause", time.Second, func() bool { p, _ := ctrl.counts(); return p == 1 })
	waitFor(t, "more polls", time.Second, func() bool { return probe.callCount() > 5 })
	if p, _ := ctrl.counts(); p != 1 {
		t.Fatalf("pause not idempotent: %d calls", p)
	}
	if ctrl.pauses[0] != "focus lost" || !m.Paused() {
		t.Fatalf("unexpected pause state: %v", ctrl.pauses)
	}
}

func TestMonitor_ResumesAfterDelay(t *testing.T) {
	probe := &fakeProbe{info: otherWindow}
	m, ctrl := newTestMonitor(config.NewStore(nil), probe, nil)
	m.Start()
	defer m.Stop()
	waitFor(t, "pause", time.Second, func() bool { p, _ := ctrl.counts(); return p == 1 })

	// Activity happened at Start; the 2s default delay has not elapsed.
	probe.set(gameWindow, nil)
	time.Sleep(100 * time.Millisecond)
	if _, r := ctrl.counts(); r != 0 {
		t.Fatalf("resumed before the delay")
	}
	m.ManualResume()
	waitFor(t, "resume", time.Second, func() bool { _, r := ctrl.counts(); return r == 1 })
	if m.Paused() || ctrl.resumes[0] != "activity settled" {
		t.Fatalf("unexpected resume state: %v", ctrl.resumes)
	}
}

func TestMonitor_ResumeDelayFromConfig(t *testing.T) {
	store := config.NewStore(nil)
	store.Update(func(c *config.Config) { c.ResumeDelaySeconds = 0.5 })
	probe := &fakeProbe{info: otherWindow}
	m, ctrl := newTestMonitor(store, probe, nil)
	m.Start()
	defer m.Stop()
	waitFor(t, "pause", time.Second, func() bool { p, _ := ctrl.counts(); return p == 1 })
	probe.set(gameWindow, nil)
	waitFor(t, "resume after 0.5s", 2*time.Second, func() bool { _, r := ctrl.counts(); return r == 1 })
}

func TestMonitor_TypingPausesOnlyWhenFocused(t *testing.T) {
	store := config.NewStore(nil)
	store.Update(func(c *config.Config) { c.PauseOnFocusLoss = false })
	probe := &fakeProbe{info: otherWindow}
	keys := &fakeKeys{ch: make(chan KeyEvent, 4)}
	m, ctrl := newTestMonitor(store, probe, keys)
	m.Start()
	defer m.Stop()

	keys.ch <- KeyEvent{Code: 0x41, At: time.Now()}
	time.Sleep(50 * time.Millisecond)
	if p, _ := ctrl.counts(); p != 0 {
		t.Fatalf("paused on typing outside the target")
	}

	probe.set(gameWindow, nil)
	keys.ch <- KeyEvent{Code: 0x41, At: time.Now()}
	waitFor(t, "typing pause", time.Second, func() bool { p, _ := ctrl.counts(); return p == 1 })
	if ctrl.pauses[0] != "typing detected" {
		t.Fatalf("unexpected reason %q", ctrl.pauses[0])
	}
}

func TestMonitor_TypingIgnoredWhenDisabled(t *testing.T) {
	store := config.NewStore(nil)
	store.Update(func(c *config.Config) { c.PauseOnTyping = false })
	probe := &fakeProbe{info: gameWindow}
	keys := &fakeKeys{ch: make(chan KeyEvent, 4)}
	m, ctrl := newTestMonitor(store, probe, keys)
	m.Start()
	defer m.Stop()
	keys.ch <- KeyEvent{Code: 0x41}
	time.Sleep(50 * time.Millisecond)
	if p, _ := ctrl.counts(); p != 0 {
		t.Fatalf("paused with typing detection disabled")
	}
}

func TestMonitor_ProbeErrorIsSwallowed(t *testing.T) {
	probe := &fakeProbe{err: errors.New("access denied")}
	m, ctrl := newTestMonitor(config.NewStore(nil), probe, nil)
	m.Start()
	defer m.Stop()
	waitFor(t, "retries", time.Second, func() bool { return probe.callCount() >= 3 })
	if p, r := ctrl.counts(); p != 0 || r != 0 {
		t.Fatalf("probe error reached controller: %d/%d", p, r)
	}
	probe.set(otherWindow, nil)
	waitFor(t, "pause after recovery", time.Second, func() bool { p, _ := ctrl.counts(); return p == 1 })
}

func TestMonitor_PollReturnsSignalError(t *testing.T) {
	boom := errors.New("boom")
	m, _ := newTestMonitor(config.NewStore(nil), &fakeProbe{err: boom}, nil)
	err := m.poll()
	var se *SignalError
	if !errors.As(err, &se) || !errors.Is(err, boom) {
		t.Fatalf("expected SignalError wrapping cause, got %v", err)
	}
}

func TestMonitor_UnsupportedKeyFeedRunsFocusOnly(t *testing.T) {
	probe := &fakeProbe{info: otherWindow}
	m, ctrl := newTestMonitor(config.NewStore(nil), probe, &fakeKeys{err: errors.ErrUnsupported})
	m.Start()
	defer m.Stop()
	waitFor(t, "focus pause", time.Second, func() bool { p, _ := ctrl.counts(); return p == 1 })
}

func TestMonitor_StopIsBounded(t *testing.T) {
	probe := &fakeProbe{info: gameWindow}
	m, _ := newTestMonitor(config.NewStore(nil), probe, &fakeKeys{ch: make(chan KeyEvent)})
	m.Start()
	waitFor(t, "first poll", time.Second, func() bool { return probe.callCount() > 0 })
	start := time.Now()
	if err := m.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if time.Since(start) > 100*time.Millisecond {
		t.Fatalf("stop too slow: %v", time.Since(start))
	}
	if m.Running() {
		t.Fatalf("still running")
	}
	if err := m.Stop(); err != nil {
		t.Fatalf("second stop: %v", err)
	}
}

func TestMonitor_StopAbandonsHungProbe(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	probe := &fakeProbe{info: gameWindow, block: block}
	m, _ := newTestMonitor(config.NewStore(nil), probe, nil)
	m.stopTimeout = 50 * time.Millisecond
	m.Start()
	waitFor(t, "probe call", time.Second, func() bool { return probe.callCount() > 0 })
	start := time.Now()
	if err := m.Stop(); !errors.Is(err, ErrStopTimeout) {
		t.Fatalf("expected ErrStopTimeout, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("stop exceeded its bound")
	}
}

func TestMatches(t *testing.T) {
	cases := []struct {
		w              WindowInfo
		title, process string
		want           bool
	}{
		{WindowInfo{Title: "Roblox"}, "Roblox", "roblox", true},
		{WindowInfo{Title: "my ROBLOX game"}, "Roblox", "", true},
		{WindowInfo{Title: "Chrome", Process: "RobloxPlayerBeta.exe"}, "Roblox", "roblox", true},
		{WindowInfo{Title: "Chrome", Process: "chrome.exe"}, "Roblox", "roblox", false},
		{WindowInfo{}, "", "", false},
		{WindowInfo{Title: "anything"}, " ", "", false},
	}
	for _, tc := range cases {
		if got := Matches(tc.w, tc.title, tc.process); got != tc.want {
			t.Errorf("Matches(%+v, %q, %q) = %v want %v", tc.w, tc.title, tc.process, got, tc.want)
		}
	}
}
