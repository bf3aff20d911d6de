// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Used for ephemeral sessions in development/testing, or when durability
// is not required.
//
// Characteristics:
//   - Sessions keyed by ID in a map, copied on the way in and out so callers
//     never share a *Session with the store.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sort"
	"sync"
)

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex        // guards sessions
	sessions map[string]Session // keyed by Session.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]Session)}
}

func (m *memory) Save(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return &s, nil
	}
	return nil, ErrNotFound
}

func (m *memory) ListByUser(ctx context.Context, userID string, limit int) ([]Summary, error) {
	m.mu.RLock()
	var mine []*Session
	for _, s := range m.sessions {
		if s.Owner.UserID == userID {
			s := s
			mine = append(mine, &s)
		}
	}
	m.mu.RUnlock()

	sort.Slice(mine, func(i, j int) bool { return mine[i].StartedAt.After(mine[j].StartedAt) })
	if limit > 0 && len(mine) > limit {
		mine = mine[:limit]
	}
	out := make([]Summary, 0, len(mine))
	for _, s := range mine {
		out = append(out, Summarize(s))
	}
	return out, nil
}

func (m *memory) ClaimAnonymous(ctx context.Context, anonID, userID string) error {
	if anonID == "" || userID == "" {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if s.Owner.AnonID == anonID {
			s.Owner = Owner{UserID: userID}
			m.sessions[id] = s
		}
	}
	return nil
}
