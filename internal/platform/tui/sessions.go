package tui

import (
	"errors"
	"sync"
	"time"
)

// ErrServerFull is returned by Connections.Register when the cap is reached.
var ErrServerFull = errors.New("server full")

// Connection describes one live SSH session.
type Connection struct {
	ID      string
	User    string
	Remote  string
	Started time.Time
}

// Connections tracks live SSH sessions.
// Thread-safe for concurrent access.
type Connections struct {
	mu    sync.RWMutex
	max   int // 0 means unlimited
	conns map[string]Connection
}

// NewConnections creates a registry admitting at most max sessions.
func NewConnections(max int) *Connections {
	return &Connections{
		max:   max,
		conns: make(map[string]Connection),
	}
}

// Register adds a session, or returns ErrServerFull.
func (r *Connections) Register(c Connection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.max > 0 && len(r.conns) >= r.max {
		return ErrServerFull
	}
	r.conns[c.ID] = c
	return nil
}

// Unregister removes a session.
func (r *Connections) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, id)
}

// Get retrieves a session by ID.
func (r *Connections) Get(id string) (Connection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.conns[id]
	return c, ok
}

// Count returns the number of live sessions.
func (r *Connections) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
