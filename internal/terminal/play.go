// internal/terminal/play.go
//
// Line-based hangman for the `play` command.
// Reads one guess per line, prints the masked word, lives and guesses after
// each turn, and reports the result when the game ends or input runs out.
// Guesses are trimmed and lowercased before they reach the engine; blank
// lines only print a hint.

package terminal

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/adamduehansen/hangman/internal/game"
	"github.com/adamduehansen/hangman/internal/words"
)

// Play reads guesses from in until the game ends or in is exhausted, and
// returns the final state.
func Play(in io.Reader, out io.Writer, secret string) (game.Game, error) {
	g := game.New(words.Normalize(secret))
	sc := bufio.NewScanner(in)

	render(out, g)
	for !g.Finished() {
		fmt.Fprint(out, "guess> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return g, sc.Err()
		}
		guess := words.Normalize(sc.Text())
		if err := game.ValidateGuess(guess); err != nil {
			fmt.Fprintln(out, "type a letter or the whole word")
			continue
		}
		before := g.Lives()
		g = g.Guess(guess)
		if g.Lives() < before {
			fmt.Fprintf(out, "no luck with %q\n", guess)
		}
		render(out, g)
	}

	switch g.Status() {
	case game.StatusWon:
		fmt.Fprintf(out, "you won with %d lives left\n", g.Lives())
	case game.StatusLost:
		fmt.Fprintf(out, "out of lives, the word was %q\n", g.Log().Secret)
	}
	return g, nil
}

func render(out io.Writer, g game.Game) {
	fmt.Fprintf(out, "%s   lives: %d   guessed: %s\n", g.Masked(), g.Lives(), strings.Join(g.Guesses(), ","))
}
