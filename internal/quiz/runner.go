// internal/quiz/runner.go
//
// Console driver for a quiz Session.
// Responsibilities:
//   - Present each scramble and block for a guess on the input stream.
//   - Print per-round feedback (correct / incorrect / answer reveal).
//   - Print the final score, or the partial score if input ends early.
//
// The Runner owns the Session for the duration of Run; nothing else touches
// it, so no locking is needed.

package quiz

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/rs/zerolog/log"
)

// ErrInputClosed is returned by Run and PromptGuess when the input stream
// ends before the quiz does.
var ErrInputClosed = errors.New("input closed")

// Config tunes a Runner.
type Config struct {
	Attempts int     // guesses per title; <= 0 means DefaultAttempts
	Shuffle  bool    // shuffle round order
	Palette  Palette // console decoration
	Pause    bool    // wait for enter after each round
}

// Runner plays a quiz over a text input and output pair.
type Runner struct {
	in  *lineReader
	out io.Writer
	rng *rand.Rand
	cfg Config
}

// NewRunner returns a Runner reading guesses from in and writing to out.
func NewRunner(in io.Reader, out io.Writer, rng *rand.Rand, cfg Config) *Runner {
	return &Runner{in: newLineReader(in), out: out, rng: rng, cfg: cfg}
}

// Run plays one round per title and returns the final Score.
//
// If the input ends (or ctx is cancelled) while a guess is pending, Run
// reports the partial score and returns it together with ErrInputClosed
// (or ctx.Err()).
func (r *Runner) Run(ctx context.Context, titles []string) (Score, error) {
	sess := NewSession(titles, Options{Attempts: r.cfg.Attempts, Shuffle: r.cfg.Shuffle}, r.rng)
	sess.Start()
	log.Debug().Str("quiz", sess.ID).Int("titles", sess.Total()).Int("attempts", sess.Attempts()).Msg("quiz started")

	if sess.State() == StateFinished {
		fmt.Fprintln(r.out, "No titles to play.")
	}

	for sess.State() == StatePlaying {
		round := sess.Round()
		r.intro(round, sess.Total())

		for sess.State() == StatePlaying && sess.Round() == round {
			guess, err := r.PromptGuess(ctx, sess.Scramble(), sess.Used()+1, sess.Attempts())
			if err != nil {
				score := sess.Score()
				r.stopped(score)
				log.Debug().Err(err).Str("quiz", sess.ID).Int("played", score.Played).Msg("quiz stopped early")
				return score, err
			}
			res, err := sess.Apply(guess)
			if err != nil {
				return sess.Score(), err
			}
			r.feedback(res, sess.Attempts())
		}
		if r.cfg.Pause {
			if err := r.pause(ctx); err != nil {
				score := sess.Score()
				r.stopped(score)
				return score, err
			}
		}
	}

	score := sess.Score()
	r.summary(score)
	log.Debug().Str("quiz", sess.ID).Int("correct", score.Correct).Int("total", score.Total).Msg("quiz finished")
	return score, nil
}

// PromptGuess shows scramble and blocks for one line of input.
func (r *Runner) PromptGuess(ctx context.Context, scramble string, attempt, attempts int) (string, error) {
	fmt.Fprintf(r.out, "\n    %s\n\n", r.cfg.Palette.Scramble(Display(scramble)))
	if attempts > 1 {
		fmt.Fprintf(r.out, "Guess %d of %d: ", attempt, attempts)
	} else {
		fmt.Fprint(r.out, "Your guess: ")
	}

	guess, err := r.in.ReadLine(ctx)
	if errors.Is(err, io.EOF) {
		return "", ErrInputClosed
	}
	return guess, err
}

// pause holds the screen until the player presses enter.
func (r *Runner) pause(ctx context.Context) error {
	fmt.Fprint(r.out, "\nPress enter to continue...")
	_, err := r.in.ReadLine(ctx)
	if errors.Is(err, io.EOF) {
		return ErrInputClosed
	}
	return err
}

func (r *Runner) intro(round, total int) {
	p := r.cfg.Palette
	fmt.Fprint(r.out, p.Clear())
	fmt.Fprintf(r.out, "[%d/%d] Which movie is this?\n", round, total)
	fmt.Fprintf(r.out, "Type %s to shuffle or %s to skip\n", p.Keyword(KeywordNext), p.Keyword(KeywordPass))
}

func (r *Runner) feedback(res Result, attempts int) {
	p := r.cfg.Palette
	switch res.Outcome {
	case OutcomeCorrect:
		fmt.Fprintln(r.out, p.Correct("🎉 Correct! Nicely done 🎉"))
	case OutcomeIncorrect:
		if !res.RoundOver {
			fmt.Fprintln(r.out, p.Incorrect("👎 Incorrect, try again 👎"))
			return
		}
		fmt.Fprintln(r.out, p.Incorrect("👎 Incorrect 👎"))
		intro := "The answer was"
		if attempts > 1 {
			intro = "No more attempts left, the answer was"
		}
		fmt.Fprintf(r.out, "%s: %s\n", intro, p.Answer(res.Answer))
	case OutcomePass:
		fmt.Fprintf(r.out, "The answer was: %s\n", p.Answer(res.Answer))
	}
}

func (r *Runner) summary(s Score) {
	p := r.cfg.Palette
	fmt.Fprint(r.out, "\nAll done! ")
	fmt.Fprintf(r.out, "You scored %d/%d\n", s.Correct, s.Total)
	switch {
	case s.Total == 0:
	case s.Correct == s.Total:
		fmt.Fprintln(r.out, p.Correct("🎉 You got them all right! 🎉"))
	case s.Correct == 0:
		fmt.Fprintln(r.out, p.Incorrect("👎 You got them all wrong! 👎"))
	default:
		fmt.Fprintln(r.out, "Not bad... but some room for improvement")
		fmt.Fprintf(r.out, "You got %s right and %s wrong\n",
			p.Correct(fmt.Sprint(s.Correct)), p.Incorrect(fmt.Sprint(s.Wrong())))
	}
}

func (r *Runner) stopped(s Score) {
	fmt.Fprintln(r.out, "\n\nGiving up are we? Okay, bye 👋")
	fmt.Fprintf(r.out, "You scored %d/%d (%d of %d titles played)\n", s.Correct, s.Played, s.Played, s.Total)
}
