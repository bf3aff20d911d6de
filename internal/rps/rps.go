// internal/rps/rps.go
//
// Rock-paper-scissors: one round between a player and an opponent.
// The opponent is a plain function so tests and callers can inject it.
package rps

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// Hand is one of the three throws.
type Hand string

const (
	Rock    Hand = "rock"
	Paper   Hand = "paper"
	Scissor Hand = "scissor"
)

// Hands lists every valid throw.
var Hands = []Hand{Rock, Paper, Scissor}

// Result is the outcome from the player's point of view.
type Result string

const (
	Win  Result = "win"
	Lose Result = "lose"
	Draw Result = "draw"
)

// ErrUnknownHand is returned by ParseHand for anything but the three throws.
var ErrUnknownHand = errors.New("unknown hand")

// Opponent picks the opponent's throw.
type Opponent func() Hand

// Outcome describes a played round.
type Outcome struct {
	Result   Result `json:"result"`
	Player   Hand   `json:"player"`
	Computer Hand   `json:"computer"`
}

// beats maps each hand to the hand it defeats.
var beats = map[Hand]Hand{
	Rock:    Scissor,
	Scissor: Paper,
	Paper:   Rock,
}

// Play asks opp for a throw exactly once and scores it against player.
func Play(player Hand, opp Opponent) Outcome {
	other := opp()
	out := Outcome{Player: player, Computer: other}
	switch {
	case player == other:
		out.Result = Draw
	case beats[player] == other:
		out.Result = Win
	default:
		out.Result = Lose
	}
	return out
}

// ParseHand accepts a hand name in any case ("scissors" is tolerated).
func ParseHand(s string) (Hand, error) {
	h := Hand(strings.ToLower(strings.TrimSpace(s)))
	if h == "scissors" {
		h = Scissor
	}
	if _, ok := beats[h]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownHand, s)
	}
	return h, nil
}

// RandomOpponent throws a uniformly random hand using crypto/rand.
func RandomOpponent() Hand {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(Hands))))
	if err != nil {
		return Rock
	}
	return Hands[n.Int64()]
}

// Fixed returns an opponent that always throws h.
func Fixed(h Hand) Opponent { return func() Hand { return h } }
