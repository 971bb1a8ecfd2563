package view

import (
	"fmt"
	"time"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// SessionStats shows run durations and the session's click and cast counts.
type SessionStats interface {
	SetSession(d time.Duration)
	SetTotal(d time.Duration)
	SetCounters(clicks, casts uint64)
}

type sessionStats struct {
	sessionLbl *LabelWidget
	totalLbl   *LabelWidget
	clicksLbl  *LabelWidget
	castsLbl   *LabelWidget
}

// NewSessionStats creates the labels in a row of parent, starting at
// startCol. If parent is nil, labels are positioned relative to the App root.
func NewSessionStats(parent *FrameWidget, row, startCol int) SessionStats {
	s := &sessionStats{
		sessionLbl: Label(Width(14), Anchor("w")),
		totalLbl:   Label(Width(14), Anchor("w")),
		clicksLbl:  Label(Width(12), Anchor("w")),
		castsLbl:   Label(Width(10), Anchor("w")),
	}
	for i, l := range []*LabelWidget{s.sessionLbl, s.totalLbl, s.clicksLbl, s.castsLbl} {
		if parent != nil {
			Grid(l, In(parent), Row(row), Column(startCol+i), Sticky("w"), Padx("0.2m"))
		} else {
			Grid(l, Row(row), Column(startCol+i), Sticky("w"), Padx("0.2m"))
		}
	}
	s.SetSession(0)
	s.SetTotal(0)
	s.SetCounters(0, 0)
	return s
}

func (s *sessionStats) SetSession(d time.Duration) {
	if s == nil || s.sessionLbl == nil {
		return
	}
	s.sessionLbl.Configure(Txt("Session: " + clock(d)))
}

func (s *sessionStats) SetTotal(d time.Duration) {
	if s == nil || s.totalLbl == nil {
		return
	}
	s.totalLbl.Configure(Txt("Total: " + clock(d)))
}

func (s *sessionStats) SetCounters(clicks, casts uint64) {
	if s == nil || s.clicksLbl == nil || s.castsLbl == nil {
		return
	}
	s.clicksLbl.Configure(Txt(fmt.Sprintf("Clicks: %d", clicks)))
	s.castsLbl.Configure(Txt(fmt.Sprintf("Casts: %d", casts)))
}

// clock formats d as mm:ss, or h:mm:ss past an hour.
func clock(d time.Duration) string {
	seconds := int(d.Seconds())
	h, m, sec := seconds/3600, seconds/60%60, seconds%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%02d:%02d", m, sec)
}
