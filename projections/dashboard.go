package projections

import (
	"sync"
	"time"

	"citysense-be/models"
)

// Dashboard keeps the latest snapshot of the issue store and the map
// layer drawn from it. Refresh is meant to be registered as a store
// listener so every mutation redraws the map and the counters.
type Dashboard struct {
	mu       sync.RWMutex
	snapshot []models.Issue
	layer    MarkerLayer
	now      func() time.Time
}

func NewDashboard(layer MarkerLayer, now func() time.Time) *Dashboard {
	if now == nil {
		now = time.Now
	}
	return &Dashboard{layer: layer, now: now}
}

// Refresh replaces the dashboard snapshot and resyncs the map layer.
func (d *Dashboard) Refresh(snapshot []models.Issue) {
	d.mu.Lock()
	d.snapshot = snapshot
	d.mu.Unlock()
	Resync(d.layer, snapshot)
}

// Snapshot returns the issues the dashboard currently shows.
func (d *Dashboard) Snapshot() []models.Issue {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]models.Issue, len(d.snapshot))
	copy(out, d.snapshot)
	return out
}

func (d *Dashboard) Issues(f Filter) []models.Issue {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return ApplyFilter(d.snapshot, f)
}

func (d *Dashboard) Stats() Statistics {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return ComputeStatistics(d.snapshot, d.now())
}

func (d *Dashboard) AdminStats() AdminStatistics {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return ComputeAdminStatistics(d.snapshot, d.now())
}

func (d *Dashboard) Markers() []Marker {
	return d.layer.Markers()
}
