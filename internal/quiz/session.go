// internal/quiz/session.go
//
// Session is the state machine behind one quiz run.
// Responsibilities:
//   - Hold the ordered titles, the current scramble and the running Score.
//   - Judge each input line (guess, "next", "pass") against the current title.
//   - Advance NotStarted → Playing → Finished as rounds settle.
//
// The console Runner and the HTTP server both drive a Session; neither holds
// quiz state of its own.

package quiz

import (
	cryptorand "crypto/rand"
	"encoding/hex"
	"errors"
	"math/rand/v2"
	"strings"
)

// DefaultAttempts is the number of guesses per title when none is configured.
const DefaultAttempts = 1

var (
	// ErrFinished is returned by Apply once every title has been played.
	ErrFinished = errors.New("quiz finished")
	// ErrNotStarted is returned by Apply before Start.
	ErrNotStarted = errors.New("quiz not started")
)

// Options tunes a Session.
type Options struct {
	Attempts int  // guesses per title; <= 0 means DefaultAttempts
	Shuffle  bool // shuffle the title order before the first round
}

// Session holds the state of a single quiz run.
type Session struct {
	ID string

	titles    []string
	attempts  int
	scrambler *Scrambler

	state    State
	index    int    // current title
	used     int    // attempts used on the current title
	scramble string // current scramble of titles[index]
	score    Score
}

// NewSession builds a session over titles. The slice is copied; rng drives
// both the order shuffle and the scrambles.
func NewSession(titles []string, opts Options, rng *rand.Rand) *Session {
	list := append([]string(nil), titles...)
	if opts.Shuffle {
		rng.Shuffle(len(list), func(i, j int) { list[i], list[j] = list[j], list[i] })
	}
	attempts := opts.Attempts
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	return &Session{
		ID:        randomID(),
		titles:    list,
		attempts:  attempts,
		scrambler: NewScrambler(rng),
		state:     StateNotStarted,
		score:     Score{Total: len(list)},
	}
}

// Start presents the first title. An empty session goes straight to Finished.
func (s *Session) Start() {
	if s.state != StateNotStarted {
		return
	}
	if len(s.titles) == 0 {
		s.state = StateFinished
		return
	}
	s.state = StatePlaying
	s.present()
}

// Apply judges one input line against the current title.
//
// A guess equal to the title (see Evaluate) is correct even when it spells a
// keyword. Otherwise "next" draws a new scramble without using an attempt,
// "pass" gives the title up, and anything else uses one attempt. The round
// ends on a correct guess, a pass, or when attempts run out.
func (s *Session) Apply(input string) (Result, error) {
	switch s.state {
	case StateNotStarted:
		return Result{}, ErrNotStarted
	case StateFinished:
		return Result{}, ErrFinished
	}

	title := s.titles[s.index]
	if Evaluate(input, title) {
		s.used++
		s.score.Correct++
		res := Result{Outcome: OutcomeCorrect, RoundOver: true, Attempt: s.used}
		s.advance()
		return res, nil
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case KeywordNext:
		s.scramble = s.scrambler.Reshuffle(title, s.scramble)
		return Result{Outcome: OutcomeShuffle, Attempt: s.used}, nil
	case KeywordPass:
		res := Result{Outcome: OutcomePass, RoundOver: true, Answer: title, Attempt: s.used}
		s.advance()
		return res, nil
	}

	s.used++
	res := Result{Outcome: OutcomeIncorrect, Attempt: s.used}
	if s.used >= s.attempts {
		res.RoundOver = true
		res.Answer = title
		s.advance()
	}
	return res, nil
}

// advance settles the current round and presents the next title, if any.
func (s *Session) advance() {
	s.score.Played++
	s.index++
	s.used = 0
	if s.index >= len(s.titles) {
		s.state = StateFinished
		s.scramble = ""
		return
	}
	s.present()
}

func (s *Session) present() {
	s.scramble = s.scrambler.Scramble(s.titles[s.index])
}

// Scramble returns the scramble of the current title, or "" when finished.
func (s *Session) Scramble() string { return s.scramble }

// Round returns the 1-based number of the current round.
func (s *Session) Round() int { return s.index + 1 }

// Total returns the number of titles in the run.
func (s *Session) Total() int { return len(s.titles) }

// Attempts returns the number of guesses allowed per title.
func (s *Session) Attempts() int { return s.attempts }

// Used returns the attempts already spent on the current title.
func (s *Session) Used() int { return s.used }

// Score returns a snapshot of the running tally.
func (s *Session) Score() Score { return s.score }

// State reports the session lifecycle state.
func (s *Session) State() State { return s.state }

// Evaluate reports whether guess names title. Comparison ignores case,
// leading and trailing whitespace, and the width of inner whitespace runs.
func Evaluate(guess, title string) bool {
	g := normalize(guess)
	if g == "" {
		return false
	}
	return strings.EqualFold(g, normalize(title))
}

func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = cryptorand.Read(b[:])
	return hex.EncodeToString(b[:])
}
