// internal/session/store.go
//
// In-memory implementation of the session Store.
// Sessions are ephemeral by design: a player's history lives only as long as
// the process does.
//
// Characteristics:
//   - Stores *Session objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Get returns ErrNotFound for unknown IDs.
//   - Sessions older than the TTL (measured from CreatedAt) are dropped:
//     Get evicts the one it finds, Save sweeps the whole map.

package session

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned by Get for an unknown session ID.
var ErrNotFound = errors.New("session not found")

// Store defines the persistence interface for solver sessions.
type Store interface {
	// Save persists or updates a session.
	Save(ctx context.Context, s *Session) error

	// Get retrieves a session by ID.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete forgets a session. Unknown IDs are ignored.
	Delete(ctx context.Context, id string) error

	// Len reports the number of stored sessions.
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore constructs a new in-memory Store. Sessions expire ttl after
// creation; ttl <= 0 keeps them for the life of the process.
func NewMemoryStore(ttl time.Duration) Store {
	return &memory{sessions: make(map[string]*Session), ttl: ttl, now: time.Now}
}

func (m *memory) expired(s *Session) bool {
	return m.ttl > 0 && m.now().Sub(s.CreatedAt) >= m.ttl
}

func (m *memory) Save(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, old := range m.sessions {
		if m.expired(old) {
			delete(m.sessions, id)
		}
	}
	m.sessions[s.ID] = s
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if m.expired(s) {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
		return nil, ErrNotFound
	}
	return s, nil
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
