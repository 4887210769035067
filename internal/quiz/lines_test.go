package quiz

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLineReaderReadsLines(t *testing.T) {
	l := newLineReader(strings.NewReader("Jaws\nUp"))
	ctx := context.Background()

	got, err := l.ReadLine(ctx)
	require.NoError(t, err)
	require.Equal(t, "Jaws", got)

	got, err = l.ReadLine(ctx)
	require.NoError(t, err)
	require.Equal(t, "Up", got)

	_, err = l.ReadLine(ctx)
	require.ErrorIs(t, err, io.EOF)
	_, err = l.ReadLine(ctx)
	require.ErrorIs(t, err, io.EOF)
}

func TestLineReaderCancelStopsScanner(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	l := newLineReader(pr)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	_, err := l.ReadLine(ctx)
	require.ErrorIs(t, err, context.Canceled)

	// The scanner is still blocked on the pipe; feed it one line and it must
	// give up instead of waiting for a reader forever.
	_, err = io.WriteString(pw, "Jaws\n")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-l.lines:
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)

	_, err = l.ReadLine(context.Background())
	require.ErrorIs(t, err, io.EOF)
}
