// internal/titles/titles.go
//
// Word-source collaborator for the quiz: supplies one movie title per line.
//
// Responsibilities:
//   - Load titles from a configured file, or fall back to the embedded list.
//   - Trim whitespace, drop blank lines and '#' comments.
//   - Report unreadable sources as ErrSourceUnavailable.
//
// Titles keep their original case and inner spacing; normalization for
// comparison happens in the quiz package.

package titles

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/moviequiz/assets"
)

// ErrSourceUnavailable is returned when the title file cannot be read.
var ErrSourceUnavailable = errors.New("titles: source unavailable")

// Load returns the titles in path, or the embedded defaults if path is empty.
// An empty result is not an error.
func Load(path string) ([]string, error) {
	if path == "" {
		list, err := assets.DefaultTitles()
		if err != nil {
			return nil, fmt.Errorf("%w: embedded list: %v", ErrSourceUnavailable, err)
		}
		log.Debug().Int("titles", len(list)).Msg("loaded embedded titles")
		return list, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer f.Close()

	list, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrSourceUnavailable, path, err)
	}
	log.Debug().Str("path", path).Int("titles", len(list)).Msg("loaded titles")
	return list, nil
}

// Read parses one title per line from r.
func Read(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}
