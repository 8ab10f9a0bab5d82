// Package session manages per-session paper state for the HTTP server.
// Each session owns exactly one paper and its citation store; stores are
// never shared across sessions.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/paperforge/paperforge/internal/citation"
	"github.com/paperforge/paperforge/internal/paper"
)

// ErrNotFound is returned when a session ID does not exist.
var ErrNotFound = errors.New("session not found")

// Session is one paper-writing session. The embedded lock enforces the
// citation store's concurrency contract: at most one in-flight mutation
// per session, reads in parallel against a stable store.
type Session struct {
	ID      string
	Created time.Time

	mu    sync.RWMutex
	paper *paper.Paper
	refs  *citation.Store
}

// Update runs fn with exclusive access to the session's paper and
// citation store. All mutation goes through here.
func (s *Session) Update(fn func(p *paper.Paper, refs *citation.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.paper, s.refs)
}

// View runs fn with shared read access.
func (s *Session) View(fn func(p *paper.Paper, refs *citation.Store) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.paper, s.refs)
}

// Replace swaps in a freshly loaded paper, rebuilding the live citation
// store from its snapshot fields.
func (s *Session) Replace(p *paper.Paper) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paper = p
	s.refs = p.Refs()
}

// Manager holds all live sessions in memory.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Create starts a new session with an empty paper and returns it.
func (m *Manager) Create() *Session {
	s := &Session{
		ID:      uuid.NewString(),
		Created: time.Now().UTC(),
		paper:   paper.New(),
	}
	s.refs = s.paper.Refs()

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	return s
}

// Get retrieves an existing session by ID.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s, nil
}

// Delete removes a session by ID.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(m.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
