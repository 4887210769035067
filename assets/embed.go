// Package assets embeds the default title list and the SQL migrations.
package assets

import (
	"bufio"
	"embed"
	"io/fs"
	"strings"
)

//go:embed movies.txt
var titlesFS embed.FS

//go:embed sql/*.sql
var migrationsFS embed.FS

// Migrations returns the embedded migration scripts rooted at "sql".
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationsFS, "sql")
	if err != nil {
		// "sql" is a literal embedded directory; Sub cannot fail for it.
		panic(err)
	}
	return sub
}

func readLines(name string) ([]string, error) {
	f, err := titlesFS.Open(name)
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

// DefaultTitles returns the embedded movie titles in file order.
func DefaultTitles() ([]string, error) {
	return readLines("movies.txt")
}
