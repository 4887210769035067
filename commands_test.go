package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTitles(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "movies.txt")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(context.Background(), args, streams{in: strings.NewReader(stdin), out: &out, err: &errOut})
	return code, out.String(), errOut.String()
}

func TestPlayFromFile(t *testing.T) {
	path := writeTitles(t, "Jaws\n\nUp\n")
	code, out, _ := runCLI(t, "jaws\nwrong\n", "--file", path)
	require.Equal(t, 0, code)
	require.Contains(t, out, "[1/2] Which movie is this?")
	require.Contains(t, out, "The answer was: Up")
	require.Contains(t, out, "You scored 1/2")
}

func TestPlayEmptyFile(t *testing.T) {
	path := writeTitles(t, "\n  \n")
	code, out, _ := runCLI(t, "", "-f", path)
	require.Equal(t, 0, code)
	require.Contains(t, out, "You scored 0/0")
}

func TestPlayMissingFile(t *testing.T) {
	code, out, errOut := runCLI(t, "", "--file", filepath.Join(t.TempDir(), "missing.txt"))
	require.Equal(t, 1, code)
	require.Empty(t, out)
	require.Contains(t, errOut, "source unavailable")
}

func TestPlayInputEndsEarly(t *testing.T) {
	path := writeTitles(t, "Jaws\nUp\n")
	code, out, _ := runCLI(t, "jaws\n", "--file", path)
	require.Equal(t, 0, code)
	require.Contains(t, out, "Giving up are we?")
	require.Contains(t, out, "You scored 1/1 (1 of 2 titles played)")
}

func TestPlayRejectsBadAttempts(t *testing.T) {
	path := writeTitles(t, "Jaws\n")
	code, _, _ := runCLI(t, "", "--file", path, "--attempts", "0")
	require.Equal(t, 1, code)
}

func TestPlaySeedIsReproducible(t *testing.T) {
	path := writeTitles(t, "Inception\nThe Dark Knight\nJurassic Park\n")
	_, a, _ := runCLI(t, "pass\npass\npass\n", "--file", path, "--seed", "77", "--shuffle")
	_, b, _ := runCLI(t, "pass\npass\npass\n", "--file", path, "--seed", "77", "--shuffle")
	require.Equal(t, a, b)
}

func TestPlayRecordsHistory(t *testing.T) {
	path := writeTitles(t, "Jaws\nUp\n")
	db := filepath.Join(t.TempDir(), "quiz.db")

	code, _, _ := runCLI(t, "jaws\nwrong\n", "--file", path, "--db", db)
	require.Equal(t, 0, code)
	code, _, _ = runCLI(t, "up\n", "--file", path, "--db", db)
	require.Equal(t, 0, code)

	code, out, _ := runCLI(t, "", "history", "--db", db)
	require.Equal(t, 0, code)
	require.Contains(t, out, "console")
	require.Contains(t, out, "1/2")
	require.Contains(t, out, "(stopped)")
	require.Contains(t, out, "2 quizzes, 1 of 3 titles guessed, best run 1")
}

func TestHistoryEmpty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "quiz.db")
	code, out, _ := runCLI(t, "", "history", "--db", db)
	require.Equal(t, 0, code)
	require.Contains(t, out, "No quizzes played yet.")
}

func TestHistoryNeedsDatabase(t *testing.T) {
	t.Setenv("QUIZ_DB", "")
	code, _, errOut := runCLI(t, "", "history")
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "no database configured")
}

func TestPlayCancelled(t *testing.T) {
	path := writeTitles(t, "Jaws\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out, errOut bytes.Buffer
	code := run(ctx, []string{"--file", path}, streams{in: blockingReader{}, out: &out, err: &errOut})
	require.Equal(t, 130, code)
}

// blockingReader never returns.
type blockingReader struct{}

func (blockingReader) Read([]byte) (int, error) { select {} }

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("QUIZ_ATTEMPTS", "3")
	t.Setenv("QUIZ_TITLES_FILE", "/tmp/movies.txt")
	t.Setenv("PORT", "9000")
	t.Setenv("NO_COLOR", "1")
	cfg := loadConfig()
	require.Equal(t, 3, cfg.Attempts)
	require.Equal(t, "/tmp/movies.txt", cfg.TitlesFile)
	require.Equal(t, "9000", cfg.Port)
	require.True(t, cfg.NoColor)

	t.Setenv("QUIZ_ATTEMPTS", "many")
	require.Equal(t, 1, loadConfig().Attempts)
}
