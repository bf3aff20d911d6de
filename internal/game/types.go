// internal/game/types.go
//
// Core type definitions for the hangman game engine.
// Defines:
//   - Slot:   one revealed (or still hidden) letter position.
//   - Status: derived game state (in_progress/won/lost).
//   - Game:   immutable state of a single game.
//   - Log:    secret + guess history, used to persist and rebuild a Game.

package game

import (
	"encoding/json"
	"errors"
)

// StartingLives is the number of incorrect guesses a new game tolerates.
const StartingLives = 6

// ErrEmptyGuess is returned by ValidateGuess for empty or blank guesses.
var ErrEmptyGuess = errors.New("empty guess")

// Slot is a single letter position of the secret word.
// The zero value is a hidden slot; it encodes to JSON null.
type Slot string

// Hidden reports whether the slot has not been revealed yet.
func (s Slot) Hidden() bool { return s == "" }

// MarshalJSON encodes hidden slots as null and revealed slots as strings.
func (s Slot) MarshalJSON() ([]byte, error) {
	if s.Hidden() {
		return []byte("null"), nil
	}
	return json.Marshal(string(s))
}

// UnmarshalJSON accepts null for hidden slots.
func (s *Slot) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = ""
		return nil
	}
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*s = Slot(v)
	return nil
}

// Status is the coarse state of a game, derived from lives and slots.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusLost       Status = "lost"
)

// Game holds the state of a single hangman game.
//
// A Game is a value: every guess produces a new Game and the receiver is
// left untouched. All fields are unexported so the secret never leaks and
// the slices can't be shared with callers.
type Game struct {
	secret   []rune
	guesses  []string
	revealed []Slot
	lives    int
}

// Log is the persistent form of a game: the secret and every guess in order.
// Replaying the guesses over New(Secret) yields the same Game.
type Log struct {
	Secret  string   `json:"secret"`
	Guesses []string `json:"guesses"`
}
