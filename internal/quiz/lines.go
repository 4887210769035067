package quiz

import (
	"bufio"
	"context"
	"io"
	"sync"
)

type line struct {
	text string
	err  error
}

// lineReader reads lines from r on a background goroutine so a blocked read
// can be abandoned when the context is cancelled. Reading starts on the
// first call to ReadLine. Once a read is abandoned the reader is stopped:
// the goroutine exits after its pending line and later reads see io.EOF.
type lineReader struct {
	r     io.Reader
	once  sync.Once
	lines chan line

	stopOnce sync.Once
	done     chan struct{}
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: r, lines: make(chan line), done: make(chan struct{})}
}

func (l *lineReader) start() {
	go func() {
		defer close(l.lines)
		sc := bufio.NewScanner(l.r)
		for sc.Scan() {
			if !l.send(line{text: sc.Text()}) {
				return
			}
		}
		err := sc.Err()
		if err == nil {
			err = io.EOF
		}
		l.send(line{err: err})
	}()
}

func (l *lineReader) send(ln line) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.lines <- ln:
		return true
	case <-l.done:
		return false
	}
}

func (l *lineReader) stop() {
	l.stopOnce.Do(func() { close(l.done) })
}

// ReadLine blocks for the next line. It returns io.EOF once input is
// exhausted and ctx.Err() if ctx is done first.
func (l *lineReader) ReadLine(ctx context.Context) (string, error) {
	l.once.Do(l.start)
	select {
	case <-l.done:
		return "", io.EOF
	default:
	}
	select {
	case <-ctx.Done():
		l.stop()
		return "", ctx.Err()
	case ln, ok := <-l.lines:
		if !ok {
			return "", io.EOF
		}
		return ln.text, ln.err
	}
}
