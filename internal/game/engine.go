// internal/game/engine.go
//
// Core game engine for a single hangman session.
// Responsibilities:
//   - Create new games (6 lives, every slot hidden).
//   - Apply guesses: letter guesses reveal every matching slot, word guesses
//     reveal the whole word on an exact match; anything else costs a life.
//   - Derive the game status: in_progress → won/lost.
//
// Notes:
//   - The engine is pure: no I/O, no errors, no mutation of its inputs.
//   - Comparison is exact, rune by rune. Callers that want case-insensitive
//     play normalize secret and guesses before they get here.
//   - The engine keeps accepting guesses after a win or a loss; refusing
//     them is up to the transport layer.
package game

import (
	"strings"
	"unicode/utf8"
)

// New constructs a new game for secret.
func New(secret string) Game {
	s := []rune(secret)
	return Game{
		secret:   s,
		guesses:  []string{},
		revealed: make([]Slot, len(s)),
		lives:    StartingLives,
	}
}

// MakeGuess returns the state that follows g after guess.
//
// Rules:
//   - The guess is appended to the guess log whether or not it is correct.
//   - A single-rune guess reveals every slot holding that rune; a miss costs a life.
//   - A longer guess reveals the whole word if it equals the secret exactly;
//     otherwise it costs a life, even when it is a substring of the secret.
//   - An empty guess is ignored and g is returned as is.
func MakeGuess(g Game, guess string) Game {
	if guess == "" {
		return g
	}
	next := g.clone()
	next.guesses = append(next.guesses, guess)

	if utf8.RuneCountInString(guess) == 1 {
		r, _ := utf8.DecodeRuneInString(guess)
		hit := false
		for i, c := range next.secret {
			if c == r {
				next.revealed[i] = Slot(guess)
				hit = true
			}
		}
		if !hit {
			next.lives--
		}
		return next
	}

	if guess == string(next.secret) {
		for i, c := range next.secret {
			next.revealed[i] = Slot(c)
		}
		return next
	}
	next.lives--
	return next
}

// Guess is the method form of MakeGuess.
func (g Game) Guess(guess string) Game { return MakeGuess(g, guess) }

// ValidateGuess reports ErrEmptyGuess for guesses that are empty or blank.
func ValidateGuess(guess string) error {
	if strings.TrimSpace(guess) == "" {
		return ErrEmptyGuess
	}
	return nil
}

// Replay rebuilds a game from its log by applying every guess in order.
func Replay(l Log) Game {
	g := New(l.Secret)
	for _, guess := range l.Guesses {
		g = MakeGuess(g, guess)
	}
	return g
}

// Log returns the persistent form of g. It carries the secret and is meant
// for storage only; never send it to a player.
func (g Game) Log() Log {
	return Log{Secret: string(g.secret), Guesses: g.Guesses()}
}

// Guesses returns a copy of every guess made so far, in order.
func (g Game) Guesses() []string {
	out := make([]string, len(g.guesses))
	copy(out, g.guesses)
	return out
}

// Revealed returns a copy of the slots; hidden slots are empty.
func (g Game) Revealed() []Slot {
	out := make([]Slot, len(g.revealed))
	copy(out, g.revealed)
	return out
}

// Lives reports the remaining lives. It can drop below zero when guessing
// continues after a loss.
func (g Game) Lives() int { return g.lives }

// Len is the number of letters in the secret word.
func (g Game) Len() int { return len(g.revealed) }

// Won reports whether every slot has been revealed.
func (g Game) Won() bool {
	for _, s := range g.revealed {
		if s.Hidden() {
			return false
		}
	}
	return true
}

// Lost reports whether the game has run out of lives.
func (g Game) Lost() bool { return g.lives <= 0 }

// Status derives the coarse game state. A win takes precedence over a loss.
func (g Game) Status() Status {
	switch {
	case g.Won():
		return StatusWon
	case g.Lost():
		return StatusLost
	default:
		return StatusInProgress
	}
}

// Finished reports whether the game is won or lost.
func (g Game) Finished() bool { return g.Status() != StatusInProgress }

// Masked renders the revealed slots for display, e.g. "t _ _ t".
func (g Game) Masked() string {
	parts := make([]string, len(g.revealed))
	for i, s := range g.revealed {
		if s.Hidden() {
			parts[i] = "_"
		} else {
			parts[i] = string(s)
		}
	}
	return strings.Join(parts, " ")
}

// clone copies the slices so the next state never aliases the previous one.
func (g Game) clone() Game {
	return Game{
		secret:   g.secret,
		guesses:  g.Guesses(),
		revealed: g.Revealed(),
		lives:    g.lives,
	}
}
