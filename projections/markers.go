package projections

import (
	"sync"

	"citysense-be/models"
)

// Marker is one point on the overview map.
type Marker struct {
	IssueID   string               `json:"id"`
	Latitude  float64              `json:"lat"`
	Longitude float64              `json:"lng"`
	Color     string               `json:"color"`
	Title     string               `json:"title"`
	Category  models.IssueCategory `json:"category"`
	Status    models.IssueStatus   `json:"status"`
	Priority  models.IssuePriority `json:"priority"`
}

// MarkerLayer is the point-marker layer of a map surface.
type MarkerLayer interface {
	Clear()
	Add(m Marker)
	Markers() []Marker
}

// MemoryLayer is a MarkerLayer kept in process memory.
type MemoryLayer struct {
	mu      sync.RWMutex
	markers []Marker
}

func NewMemoryLayer() *MemoryLayer {
	return &MemoryLayer{}
}

func (l *MemoryLayer) Clear() {
	l.mu.Lock()
	l.markers = nil
	l.mu.Unlock()
}

func (l *MemoryLayer) Add(m Marker) {
	l.mu.Lock()
	l.markers = append(l.markers, m)
	l.mu.Unlock()
}

// Replace swaps the whole marker set in one step, so readers never see a
// half-built layer.
func (l *MemoryLayer) Replace(markers []Marker) {
	l.mu.Lock()
	l.markers = markers
	l.mu.Unlock()
}

// Markers returns a copy of the layer's markers in insertion order.
func (l *MemoryLayer) Markers() []Marker {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Marker, len(l.markers))
	copy(out, l.markers)
	return out
}

// MarkerFor builds the marker of a single issue.
func MarkerFor(issue models.Issue) Marker {
	return Marker{
		IssueID:   issue.ID.Hex(),
		Latitude:  issue.Location.Latitude,
		Longitude: issue.Location.Longitude,
		Color:     issue.Status.Color(),
		Title:     issue.Title,
		Category:  issue.Category,
		Status:    issue.Status,
		Priority:  issue.Priority,
	}
}

type replacer interface {
	Replace(markers []Marker)
}

// Resync replaces every marker on layer with one marker per issue in
// snapshot.
func Resync(layer MarkerLayer, snapshot []models.Issue) {
	if r, ok := layer.(replacer); ok {
		markers := make([]Marker, 0, len(snapshot))
		for _, issue := range snapshot {
			markers = append(markers, MarkerFor(issue))
		}
		r.Replace(markers)
		return
	}
	layer.Clear()
	for _, issue := range snapshot {
		layer.Add(MarkerFor(issue))
	}
}

// Lookup finds the marker of an issue on layer.
func Lookup(layer MarkerLayer, issueID string) (Marker, bool) {
	for _, m := range layer.Markers() {
		if m.IssueID == issueID {
			return m, true
		}
	}
	return Marker{}, false
}
