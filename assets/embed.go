// assets/embed.go
//
// Files compiled into the binary:
//   - words.txt: default secret word list.
//   - sql/*.sql: schema migrations, applied in lexical order.
package assets

import (
	"bufio"
	"embed"
	"io/fs"
	"strings"
)

//go:embed words.txt sql/*.sql
var FS embed.FS

// readLines returns the trimmed, non-comment lines of an embedded file.
func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// WordList returns the default secret words.
func WordList() ([]string, error) {
	return readLines("words.txt")
}

// Migrations exposes the sql directory as its own filesystem root.
func Migrations() fs.FS {
	sub, err := fs.Sub(FS, "sql")
	if err != nil {
		// the directory is embedded at build time; Sub only fails on a bad path
		panic(err)
	}
	return sub
}
