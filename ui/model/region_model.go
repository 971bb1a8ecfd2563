package model

import "github.com/soocke/pixel-reel/domain/capture"

// RegionModel holds the region the current run monitors. Updated on the UI
// thread only.
type RegionModel struct {
	region capture.Region
	set    bool
}

// Set records r as the active region.
func (m *RegionModel) Set(r capture.Region) {
	if m == nil {
		return
	}
	m.region, m.set = r, !r.Empty()
}

// Region returns the active region and whether one is set.
func (m *RegionModel) Region() (capture.Region, bool) {
	if m == nil {
		return capture.Region{}, false
	}
	return m.region, m.set
}

// Clear forgets the active region.
func (m *RegionModel) Clear() {
	if m == nil {
		return
	}
	m.region, m.set = capture.Region{}, false
}
