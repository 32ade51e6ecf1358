package state

import (
	"sync"
	"time"

	"github.com/yourusername/calgrid/internal/layout"
)

const (
	// StateVersion is the current state file format version
	StateVersion = 1
)

// RuntimeState is the root state structure persisted to disk. It carries the
// viewport of the calendar grid across process restarts.
type RuntimeState struct {
	Version     int               `json:"version"`
	Viewport    layout.SavedState `json:"viewport"`
	HasViewport bool              `json:"hasViewport"`
	LastUpdated time.Time         `json:"lastUpdated"`

	mu sync.RWMutex `json:"-"` // For thread-safe access (not serialized)
}

// NewRuntimeState creates a new empty runtime state
func NewRuntimeState() *RuntimeState {
	return &RuntimeState{
		Version:     StateVersion,
		LastUpdated: time.Now(),
	}
}

// SetViewport records the viewport snapshot to persist
func (rs *RuntimeState) SetViewport(s layout.SavedState) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	rs.Viewport = s
	rs.HasViewport = true
	rs.LastUpdated = time.Now()
}

// GetViewport returns the persisted viewport snapshot, if any
func (rs *RuntimeState) GetViewport() (layout.SavedState, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	return rs.Viewport, rs.HasViewport
}

// ClearViewport discards the persisted viewport snapshot
func (rs *RuntimeState) ClearViewport() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	rs.Viewport = layout.SavedState{}
	rs.HasViewport = false
	rs.LastUpdated = time.Now()
}
