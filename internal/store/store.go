// internal/store/store.go
//
// Session persistence for hangman games.
// A Session wraps an immutable game.Game with its owner and timestamps;
// saving a session replaces the stored value with the caller's current one.

package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/adamduehansen/hangman/internal/game"
)

// ErrNotFound is returned by Get for unknown session IDs.
var ErrNotFound = errors.New("game not found")

// Mode tells normal games apart from daily challenge games.
type Mode string

const (
	ModeNormal Mode = "normal"
	ModeDaily  Mode = "daily"
)

// Owner identifies who plays a session: a user account or an anonymous cookie.
// Exactly one of the fields is set.
type Owner struct {
	UserID string
	AnonID string
}

// Session is one game plus bookkeeping.
type Session struct {
	ID         string
	Owner      Owner
	Mode       Mode
	Game       game.Game
	StartedAt  time.Time
	FinishedAt time.Time // zero while in progress
}

// NewSession starts a session for owner with a fresh game on secret.
// Timestamps come from the caller's clock so StartedAt and FinishedAt
// are always measured against the same time source.
func NewSession(owner Owner, mode Mode, secret string, startedAt time.Time) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Owner:     owner,
		Mode:      mode,
		Game:      game.New(secret),
		StartedAt: startedAt.UTC(),
	}
}

// Advance applies guess made at the given time and stamps FinishedAt the
// first time the game ends.
func (s *Session) Advance(guess string, at time.Time) {
	s.Game = s.Game.Guess(guess)
	if s.FinishedAt.IsZero() && s.Game.Finished() {
		s.FinishedAt = at.UTC()
	}
}

// Summary is a listing row for a player's history.
type Summary struct {
	ID         string      `json:"id"`
	Mode       Mode        `json:"mode"`
	Status     game.Status `json:"status"`
	Guesses    int         `json:"guesses"`
	Lives      int         `json:"lives"`
	StartedAt  time.Time   `json:"startedAt"`
	FinishedAt *time.Time  `json:"finishedAt,omitempty"`
}

// Summarize builds the listing row for s.
func Summarize(s *Session) Summary {
	out := Summary{
		ID:        s.ID,
		Mode:      s.Mode,
		Status:    s.Game.Status(),
		Guesses:   len(s.Game.Guesses()),
		Lives:     s.Game.Lives(),
		StartedAt: s.StartedAt,
	}
	if !s.FinishedAt.IsZero() {
		f := s.FinishedAt
		out.FinishedAt = &f
	}
	return out
}

// Store defines the persistence interface for game sessions.
// Implementations may be backed by memory (memory.go) or SQLite (sqlite.go).
type Store interface {
	// Save persists or updates a session.
	Save(ctx context.Context, s *Session) error

	// Get retrieves a session by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// ListByUser returns the newest sessions of a user account, newest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]Summary, error)

	// ClaimAnonymous moves every session of anonID to userID.
	ClaimAnonymous(ctx context.Context, anonID, userID string) error
}
