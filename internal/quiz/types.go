// internal/quiz/types.go
//
// Core type definitions for the scramble quiz.
// Defines:
//   - Outcome: what a single line of input did to the current round.
//   - State: coarse session state.
//   - Score: running tally for one run.

package quiz

// Outcome is the evaluation result for a single input line.
type Outcome string

const (
	OutcomeCorrect   Outcome = "correct"
	OutcomeIncorrect Outcome = "incorrect"
	OutcomePass      Outcome = "pass"
	OutcomeShuffle   Outcome = "shuffle"
)

// State is the coarse lifecycle of a Session.
type State string

const (
	StateNotStarted State = "not_started"
	StatePlaying    State = "playing"
	StateFinished   State = "finished"
)

// Keywords recognised in place of a guess.
const (
	KeywordNext = "next"
	KeywordPass = "pass"
)

// Score tallies a run.
type Score struct {
	Correct int `json:"correct"` // titles guessed correctly
	Played  int `json:"played"`  // rounds completed
	Total   int `json:"total"`   // titles in the run
}

// Wrong is the number of completed rounds that were not guessed.
func (s Score) Wrong() int { return s.Played - s.Correct }

// Result describes what one call to Session.Apply did.
type Result struct {
	Outcome   Outcome // what the input was judged as
	RoundOver bool    // true once the current title is settled
	Answer    string  // the title, set when a round ends without a correct guess
	Attempt   int     // attempts used in the round after this input
}
