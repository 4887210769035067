package quiz

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// failReader fails the test if the runner ever reads from it.
type failReader struct{ t *testing.T }

func (f failReader) Read([]byte) (int, error) {
	f.t.Error("unexpected read from input")
	return 0, io.EOF
}

func newTestRunner(in io.Reader, out io.Writer, cfg Config) *Runner {
	return NewRunner(in, out, NewRand(1234), cfg)
}

func TestRunEmptyTitles(t *testing.T) {
	var out bytes.Buffer
	score, err := newTestRunner(failReader{t}, &out, Config{}).Run(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, Score{}, score)
	require.Contains(t, out.String(), "No titles to play.")
	require.Contains(t, out.String(), "You scored 0/0")
}

func TestRunScoresRounds(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("jaws\nwrong\n")

	score, err := newTestRunner(in, &out, Config{}).Run(context.Background(), []string{"Jaws", "Up"})
	require.NoError(t, err)
	require.Equal(t, Score{Correct: 1, Played: 2, Total: 2}, score)

	text := out.String()
	first := strings.Index(text, "[1/2] Which movie is this?")
	second := strings.Index(text, "[2/2] Which movie is this?")
	require.GreaterOrEqual(t, first, 0)
	require.Greater(t, second, first)

	require.Contains(t, text[first:second], "Correct! Nicely done")
	require.Contains(t, text[second:], "Incorrect")
	require.Contains(t, text[second:], "The answer was: Up")
	require.Contains(t, text, "You scored 1/2")
	require.Contains(t, text, "Not bad... but some room for improvement")
	require.NotContains(t, text, "\033[")
}

func TestRunShowsScramble(t *testing.T) {
	var out bytes.Buffer
	_, err := newTestRunner(strings.NewReader("pass\n"), &out, Config{}).Run(context.Background(), []string{"AAAA"})
	require.NoError(t, err)
	require.Contains(t, out.String(), "    AAAA\n")
	require.Contains(t, out.String(), "You got them all wrong!")
}

func TestRunAllRight(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("Up\n  the MATRIX \n")
	score, err := newTestRunner(in, &out, Config{}).Run(context.Background(), []string{"Up", "The Matrix"})
	require.NoError(t, err)
	require.Equal(t, 2, score.Correct)
	require.Contains(t, out.String(), "You got them all right!")
}

func TestRunRetriesWithAttempts(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("alien\nnext\nrocky\npsycho\n")
	score, err := newTestRunner(in, &out, Config{Attempts: 3}).Run(context.Background(), []string{"Psycho"})
	require.NoError(t, err)
	require.Equal(t, Score{Correct: 1, Played: 1, Total: 1}, score)

	text := out.String()
	require.Contains(t, text, "Guess 1 of 3: ")
	require.Contains(t, text, "Incorrect, try again")
	require.Contains(t, text, "Guess 3 of 3: ")
	require.NotContains(t, text, "Guess 4 of 3")
}

func TestRunOutOfAttempts(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("a\nb\n")
	score, err := newTestRunner(in, &out, Config{Attempts: 2}).Run(context.Background(), []string{"Rocky"})
	require.NoError(t, err)
	require.Equal(t, Score{Correct: 0, Played: 1, Total: 1}, score)
	require.Contains(t, out.String(), "No more attempts left, the answer was: Rocky")
}

func TestRunInputClosedEarly(t *testing.T) {
	var out bytes.Buffer
	score, err := newTestRunner(strings.NewReader("jaws\n"), &out, Config{}).Run(context.Background(), []string{"Jaws", "Up"})
	require.ErrorIs(t, err, ErrInputClosed)
	require.Equal(t, Score{Correct: 1, Played: 1, Total: 2}, score)
	require.Contains(t, out.String(), "Giving up are we?")
	require.Contains(t, out.String(), "You scored 1/1 (1 of 2 titles played)")
}

func TestRunCancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	score, err := newTestRunner(pr, &out, Config{}).Run(ctx, []string{"Jaws"})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, Score{Total: 1}, score)
}

func TestRunWithPalette(t *testing.T) {
	var out bytes.Buffer
	_, err := newTestRunner(strings.NewReader("jaws\n"), &out, Config{Palette: Palette{Enabled: true}}).
		Run(context.Background(), []string{"Jaws"})
	require.NoError(t, err)
	require.Contains(t, out.String(), ansiClear)
	require.Contains(t, out.String(), ansiCorrect)
}

func TestRunPausesBetweenRounds(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("jaws\n\nwrong\n\n")
	score, err := newTestRunner(in, &out, Config{Pause: true}).Run(context.Background(), []string{"Jaws", "Up"})
	require.NoError(t, err)
	require.Equal(t, Score{Correct: 1, Played: 2, Total: 2}, score)
	require.Equal(t, 2, strings.Count(out.String(), "Press enter to continue..."))
}

func TestRunPauseInputClosed(t *testing.T) {
	var out bytes.Buffer
	score, err := newTestRunner(strings.NewReader("jaws\n"), &out, Config{Pause: true}).
		Run(context.Background(), []string{"Jaws", "Up"})
	require.ErrorIs(t, err, ErrInputClosed)
	require.Equal(t, Score{Correct: 1, Played: 1, Total: 2}, score)
	require.Contains(t, out.String(), "You scored 1/1 (1 of 2 titles played)")
}
