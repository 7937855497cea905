// internal/session/session.go
//
// A Session is the caller-owned state the solver itself never keeps:
// the ordered history of (guess, pattern) observations a player has entered.
// The solver package only ever sees snapshots of it.

package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

// Session holds one player's accumulated history.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu      sync.Mutex
	history []solver.HistoryEntry
}

// New creates an empty session with a random ID.
func New() *Session {
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
}

// Add appends an observation.
func (s *Session) Add(e solver.HistoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, e)
}

// Remove deletes the entry at index i.
func (s *Session) Remove(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.history) {
		return fmt.Errorf("history index %d out of range [0,%d)", i, len(s.history))
	}
	s.history = append(s.history[:i:i], s.history[i+1:]...)
	return nil
}

// Reset clears the history.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
}

// History returns a copy of the recorded entries in insertion order.
func (s *Session) History() []solver.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]solver.HistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}
