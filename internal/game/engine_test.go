package game_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamduehansen/hangman/internal/game"
)

func slots(s ...string) []game.Slot {
	out := make([]game.Slot, len(s))
	for i, v := range s {
		out[i] = game.Slot(v)
	}
	return out
}

func TestNew(t *testing.T) {
	t.Parallel()

	g := game.New("Test")

	assert.Equal(t, game.StartingLives, g.Lives())
	assert.Equal(t, slots("", "", "", ""), g.Revealed())
	assert.Empty(t, g.Guesses())
	assert.Equal(t, game.StatusInProgress, g.Status())
}

func TestMakeGuess_IncorrectGuessCostsALife(t *testing.T) {
	t.Parallel()

	for _, guess := range []string{"a", "any-guess"} {
		g := game.New("test")
		next := game.MakeGuess(g, guess)

		assert.Equal(t, g.Lives()-1, next.Lives(), guess)
		assert.Equal(t, g.Revealed(), next.Revealed(), guess)
	}
}

func TestMakeGuess_RecordsEveryGuess(t *testing.T) {
	t.Parallel()

	for _, guess := range []string{"t", "x"} {
		g := game.New("test").Guess(guess)
		assert.Equal(t, []string{guess}, g.Guesses())
	}
}

func TestMakeGuess_RevealsCorrectGuess(t *testing.T) {
	t.Parallel()

	cases := []struct {
		guess string
		want  []game.Slot
	}{
		{"e", slots("", "e", "", "")},
		{"t", slots("t", "", "", "t")},
		{"test", slots("t", "e", "s", "t")},
	}
	for _, tc := range cases {
		g := game.New("test").Guess(tc.guess)

		assert.Equal(t, tc.want, g.Revealed(), tc.guess)
		assert.Equal(t, game.StartingLives, g.Lives(), tc.guess)
		assert.Contains(t, g.Guesses(), tc.guess)
	}
}

func TestMakeGuess_RejectsPartialWord(t *testing.T) {
	t.Parallel()

	g := game.New("test")
	next := g.Guess("te")

	assert.Equal(t, slots("", "", "", ""), next.Revealed())
	assert.Equal(t, g.Lives()-1, next.Lives())
}

func TestMakeGuess_PlayThrough(t *testing.T) {
	t.Parallel()

	g := game.New("test").
		Guess("t").
		Guess("a").
		Guess("e").
		Guess("m").
		Guess("test")

	assert.Equal(t, slots("t", "e", "s", "t"), g.Revealed())
	assert.Equal(t, 4, g.Lives())
	assert.Equal(t, []string{"t", "a", "e", "m", "test"}, g.Guesses())
	assert.Equal(t, game.StatusWon, g.Status())
}

func TestMakeGuess_RepeatedLetterOnlyGrowsLog(t *testing.T) {
	t.Parallel()

	once := game.New("test").Guess("t")
	twice := once.Guess("t")

	assert.Equal(t, once.Revealed(), twice.Revealed())
	assert.Equal(t, once.Lives(), twice.Lives())
	assert.Equal(t, []string{"t", "t"}, twice.Guesses())
}

func TestMakeGuess_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	start := game.New("test")
	after := start.Guess("t").Guess("x")

	assert.Equal(t, slots("", "", "", ""), start.Revealed())
	assert.Empty(t, start.Guesses())
	assert.Equal(t, game.StartingLives, start.Lives())

	// branching from the same value must not leak between branches
	a := after.Guess("e")
	b := after.Guess("s")
	assert.Equal(t, slots("t", "e", "", "t"), a.Revealed())
	assert.Equal(t, slots("t", "", "s", "t"), b.Revealed())
	assert.Equal(t, []string{"t", "x", "e"}, a.Guesses())
	assert.Equal(t, []string{"t", "x", "s"}, b.Guesses())
}

func TestAccessorsReturnCopies(t *testing.T) {
	t.Parallel()

	g := game.New("test").Guess("t")
	r := g.Revealed()
	r[1] = "z"
	gs := g.Guesses()
	gs[0] = "q"

	assert.Equal(t, slots("t", "", "", "t"), g.Revealed())
	assert.Equal(t, []string{"t"}, g.Guesses())
}

func TestMakeGuess_EmptyGuessIgnored(t *testing.T) {
	t.Parallel()

	g := game.New("test")
	next := g.Guess("")

	assert.Equal(t, g, next)
	assert.ErrorIs(t, game.ValidateGuess(""), game.ErrEmptyGuess)
	assert.ErrorIs(t, game.ValidateGuess("  \t"), game.ErrEmptyGuess)
	assert.NoError(t, game.ValidateGuess("a"))
}

func TestMakeGuess_CaseSensitive(t *testing.T) {
	t.Parallel()

	g := game.New("test").Guess("T")

	assert.Equal(t, game.StartingLives-1, g.Lives())
	assert.Equal(t, slots("", "", "", ""), g.Revealed())
}

func TestMakeGuess_MultibyteLetters(t *testing.T) {
	t.Parallel()

	g := game.New("smør").Guess("ø")

	assert.Equal(t, 4, g.Len())
	assert.Equal(t, slots("", "", "ø", ""), g.Revealed())
	assert.Equal(t, game.StartingLives, g.Lives())
}

func TestStatus_LostAndKeepsAcceptingGuesses(t *testing.T) {
	t.Parallel()

	g := game.New("test")
	for _, l := range []string{"a", "b", "c", "d", "f", "g"} {
		g = g.Guess(l)
	}
	require.Equal(t, 0, g.Lives())
	assert.Equal(t, game.StatusLost, g.Status())
	assert.True(t, g.Finished())

	g = g.Guess("h")
	assert.Equal(t, -1, g.Lives())
	assert.Len(t, g.Guesses(), 7)
}

func TestReplay(t *testing.T) {
	t.Parallel()

	g := game.New("test").Guess("t").Guess("a").Guess("es")
	log := g.Log()

	assert.Equal(t, "test", log.Secret)
	assert.Equal(t, []string{"t", "a", "es"}, log.Guesses)
	assert.Equal(t, g, game.Replay(log))
}

func TestMasked(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "t _ _ t", game.New("test").Guess("t").Masked())
}

func TestSlotJSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(game.New("test").Guess("e").Revealed())
	require.NoError(t, err)
	assert.JSONEq(t, `[null,"e",null,null]`, string(b))

	var back []game.Slot
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, slots("", "e", "", ""), back)
}
