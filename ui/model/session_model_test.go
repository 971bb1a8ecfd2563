package model

import (
	"testing"
	"time"

	"github.com/soocke/pixel-reel/domain/capture"
)

func TestSessionModel_BasicLifecycle(t *testing.T) {
	m := NewSessionModel()
	base := time.Unix(0, 0)

	m.OnTick(true, base, Counters{Clicks: 10, Casts: 2})
	m.OnTick(true, base.Add(5*time.Second), Counters{Clicks: 14, Casts: 3})
	v := m.Values()
	if v.Session != 5*time.Second || v.Total != 5*time.Second {
		t.Fatalf("expected 5s session & total; got %+v", v)
	}
	if v.Clicks != 4 || v.Casts != 1 {
		t.Fatalf("counts not relative to session start: %+v", v)
	}

	m.OnTick(false, base.Add(5*time.Second), Counters{Clicks: 14, Casts: 3})
	stopped := m.Values()
	if stopped.Session != 5*time.Second || stopped.Total != 5*time.Second {
		t.Fatalf("after stop expected persisted 5s; got %+v", stopped)
	}

	m.OnTick(false, base.Add(7*time.Second), Counters{Clicks: 14, Casts: 3})
	if idle := m.Values(); idle != stopped {
		t.Fatalf("idle tick changed values: %+v -> %+v", stopped, idle)
	}

	m.OnTick(true, base.Add(10*time.Second), Counters{Clicks: 14, Casts: 3})
	m.OnTick(true, base.Add(13*time.Second), Counters{Clicks: 20, Casts: 4})
	v = m.Values()
	if v.Session != 3*time.Second || v.Total != 8*time.Second {
		t.Fatalf("second session: %+v", v)
	}
	if v.Clicks != 6 || v.Casts != 1 {
		t.Fatalf("second session counts: %+v", v)
	}

	m.OnTick(false, base.Add(13*time.Second), Counters{Clicks: 20, Casts: 4})
	if final := m.Values(); final.Total != 8*time.Second || final.Clicks != 6 {
		t.Fatalf("final: %+v", final)
	}
}

func TestSessionModel_NilSafe(t *testing.T) {
	var m *SessionModel
	m.OnTick(true, time.Now(), Counters{})
	if v := m.Values(); v != (SessionValues{}) {
		t.Fatalf("nil model returned %+v", v)
	}
}

func TestRegionModel(t *testing.T) {
	var m RegionModel
	if _, ok := m.Region(); ok {
		t.Fatalf("zero model reports a region")
	}
	r := capture.Region{X: 1, Y: 2, W: 3, H: 4}
	m.Set(r)
	if got, ok := m.Region(); !ok || got != r {
		t.Fatalf("got %v %v", got, ok)
	}
	m.Set(capture.Region{})
	if _, ok := m.Region(); ok {
		t.Fatalf("empty region reported as set")
	}
}

func TestRunModel(t *testing.T) {
	var m RunModel
	if m.Enabled() {
		t.Fatalf("zero model enabled")
	}
	m.SetEnabled(true)
	if !m.Enabled() {
		t.Fatalf("not enabled")
	}
}
