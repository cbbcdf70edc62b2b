package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// DefaultID names the session used when a caller does not pick one
const DefaultID = "default"

const (
	defaultMaxSessions = 64
	defaultMaxTape     = 100
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTooManySessions = errors.New("too many sessions")
)

// Manager owns the calculator sessions
type Manager struct {
	sessions    map[string]*Session
	maxSessions int
	maxTape     int
	mu          sync.RWMutex
}

// NewManager creates a session manager. Non-positive limits fall back to the
// defaults.
func NewManager(maxSessions, maxTape int) *Manager {
	if maxSessions <= 0 {
		maxSessions = defaultMaxSessions
	}
	if maxTape <= 0 {
		maxTape = defaultMaxTape
	}

	return &Manager{
		sessions:    make(map[string]*Session),
		maxSessions: maxSessions,
		maxTape:     maxTape,
	}
}

// Open returns the session with the given ID, creating it if needed. An empty
// ID selects DefaultID.
func (m *Manager) Open(id string) (*Session, error) {
	if id == "" {
		id = DefaultID
	}

	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		return s, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return m.createLocked(id)
}

// New creates a session with a fresh random ID
func (m *Manager) New() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.createLocked(uuid.NewString())
}

// Get returns an existing session
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// Close drops a session
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(m.sessions, id)

	slog.Debug("Closed calculator session", "session_id", id, "remaining", len(m.sessions))
	return nil
}

// List returns the IDs of all live sessions in sorted order
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (m *Manager) createLocked(id string) (*Session, error) {
	if len(m.sessions) >= m.maxSessions {
		return nil, fmt.Errorf("%w: limit is %d", ErrTooManySessions, m.maxSessions)
	}

	s := newSession(id, m.maxTape)
	m.sessions[id] = s

	slog.Debug("Created calculator session", "session_id", id, "total", len(m.sessions))
	return s, nil
}
