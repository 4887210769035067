package quiz

// ANSI escape sequences used by the console.
const (
	ansiHeader    = "\033[34m"
	ansiKeyword   = "\033[96m"
	ansiCorrect   = "\033[92m"
	ansiIncorrect = "\033[91m"
	ansiWarning   = "\033[93m"
	ansiBold      = "\033[1m"
	ansiReset     = "\033[0m"
	ansiClear     = "\033[H\033[2J"
)

// Palette decorates console text. The zero value prints plain text.
type Palette struct {
	Enabled bool
}

func (p Palette) wrap(code, s string) string {
	if !p.Enabled {
		return s
	}
	return code + s + ansiReset
}

// Scramble styles a scrambled title.
func (p Palette) Scramble(s string) string { return p.wrap(ansiHeader+ansiBold, s) }

// Keyword styles a command word such as "next".
func (p Palette) Keyword(s string) string { return p.wrap(ansiKeyword, s) }

// Correct styles praise for a right answer.
func (p Palette) Correct(s string) string { return p.wrap(ansiCorrect, s) }

// Incorrect styles a miss.
func (p Palette) Incorrect(s string) string { return p.wrap(ansiIncorrect, s) }

// Answer styles a revealed title.
func (p Palette) Answer(s string) string { return p.wrap(ansiWarning+ansiBold, s) }

// Clear returns the sequence that clears the screen, or "" when disabled.
func (p Palette) Clear() string {
	if !p.Enabled {
		return ""
	}
	return ansiClear
}
