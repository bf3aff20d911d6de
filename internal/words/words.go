// internal/words/words.go
//
// Provides the secret word list for new games.
//
// Sources (Load):
//   1. If a path is given (WORDS_FILE), read one word per line from it.
//   2. Otherwise fall back to the list embedded in the assets package.
//
// Constraints:
//   • Words are trimmed and lowercased.
//   • Only alphabetic a–z words of MinLen..MaxLen letters are kept.
//   • Duplicates are dropped, first occurrence wins.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/adamduehansen/hangman/assets"
)

const (
	MinLen = 3
	MaxLen = 16
)

// ErrEmpty is returned when no usable word survives loading.
var ErrEmpty = errors.New("words: list is empty")

// List is an immutable set of secret words.
type List struct {
	words []string
	set   map[string]struct{}
}

// Load reads the word list from path, or from the embedded default if path is empty.
func Load(path string) (*List, error) {
	var raw []string
	var err error
	if path != "" {
		raw, err = readWordFile(path)
	} else {
		raw, err = assets.WordList()
	}
	if err != nil {
		return nil, fmt.Errorf("words: load %q: %w", path, err)
	}
	return New(raw)
}

// New builds a list from raw words, normalizing and filtering them.
func New(raw []string) (*List, error) {
	l := &List{set: make(map[string]struct{}, len(raw))}
	for _, w := range raw {
		w = Normalize(w)
		if !Valid(w) {
			continue
		}
		if _, dup := l.set[w]; dup {
			continue
		}
		l.set[w] = struct{}{}
		l.words = append(l.words, w)
	}
	if len(l.words) == 0 {
		return nil, ErrEmpty
	}
	return l, nil
}

// readWordFile loads one word per line from a file, skipping blanks and # comments.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}

// Normalize trims and lowercases a word or guess.
func Normalize(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}

// Valid reports whether w is a usable secret word.
func Valid(w string) bool {
	if len(w) < MinLen || len(w) > MaxLen {
		return false
	}
	for _, r := range w {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// Random returns a cryptographically random word from the list.
func (l *List) Random() string {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(l.words))))
	if err != nil {
		return l.words[0]
	}
	return l.words[n.Int64()]
}

// At returns the word at index i modulo the list length.
func (l *List) At(i int) string {
	if i < 0 {
		i = -i
	}
	return l.words[i%len(l.words)]
}

// Contains reports whether w (after normalization) is in the list.
func (l *List) Contains(w string) bool {
	_, ok := l.set[Normalize(w)]
	return ok
}

// Len returns the number of words.
func (l *List) Len() int { return len(l.words) }

// All returns a copy of every word in load order.
func (l *List) All() []string {
	out := make([]string, len(l.words))
	copy(out, l.words)
	return out
}
