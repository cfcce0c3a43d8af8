package session

import (
	"sync"
	"time"

	"github.com/melitabakes/bakery/internal/admin"
)

type entry struct {
	ctrl     *admin.Controller
	lastSeen time.Time
}

// Registry maps session ids to the admin controller of the session.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// Controllers is the registry used by the web handlers.
var Controllers = NewRegistry()

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Get returns the controller of sessionID and marks it as used.
func (r *Registry) Get(sessionID string) (*admin.Controller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[sessionID]
	if !ok {
		return nil, false
	}

	e.lastSeen = time.Now()

	return e.ctrl, true
}

// Put stores ctrl for sessionID.
func (r *Registry) Put(sessionID string, ctrl *admin.Controller) {
	r.mu.Lock()
	r.entries[sessionID] = &entry{ctrl: ctrl, lastSeen: time.Now()}
	r.mu.Unlock()
}

// Delete removes sessionID and returns its controller.
func (r *Registry) Delete(sessionID string) (*admin.Controller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[sessionID]
	if !ok {
		return nil, false
	}

	delete(r.entries, sessionID)

	return e.ctrl, true
}

// Prune drops controllers not used for longer than maxIdle and returns how many were dropped.
func (r *Registry) Prune(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	var (
		n      int
		cutoff = time.Now().Add(-maxIdle)
	)

	for id, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			delete(r.entries, id)
			n++
		}
	}

	return n
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.entries)
}
