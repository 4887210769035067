package quiz

import (
	"math/rand/v2"
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// maxWordTries bounds how often a word is reshuffled to avoid handing back
// the word unchanged.
const maxWordTries = 10

// Scrambler permutes the letters of titles using an injected random source.
// It is not safe for concurrent use; give each goroutine its own.
type Scrambler struct {
	rng *rand.Rand
}

// NewScrambler returns a Scrambler drawing from rng.
func NewScrambler(rng *rand.Rand) *Scrambler {
	return &Scrambler{rng: rng}
}

// NewRand returns a PCG-backed generator for seed. A zero seed is replaced by
// the current time.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Scramble permutes the letters inside each word of title. Whitespace stays
// at its original position, so word boundaries are preserved. The result is
// always made of the same characters as title; a title that is not valid
// UTF-8 is permuted byte by byte.
func (s *Scrambler) Scramble(title string) string {
	if !utf8.ValidString(title) {
		b := []byte(title)
		scrambleWords(s, b, func(c byte) bool { return c < utf8.RuneSelf && unicode.IsSpace(rune(c)) })
		return string(b)
	}
	runes := []rune(title)
	scrambleWords(s, runes, unicode.IsSpace)
	return string(runes)
}

// scrambleWords shuffles every run of non-space units in place.
func scrambleWords[T rune | byte](s *Scrambler, units []T, isSpace func(T) bool) {
	start := -1
	for i := 0; i <= len(units); i++ {
		if i < len(units) && !isSpace(units[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			scrambleWord(s.rng, units[start:i])
			start = -1
		}
	}
}

// Reshuffle scrambles title again, preferring a result different from prev.
func (s *Scrambler) Reshuffle(title, prev string) string {
	out := s.Scramble(title)
	for i := 0; i < maxWordTries && out == prev; i++ {
		out = s.Scramble(title)
	}
	return out
}

// scrambleWord shuffles w in place, retrying while it still reads the same.
func scrambleWord[T rune | byte](rng *rand.Rand, w []T) {
	if len(w) < 2 || allSame(w) {
		return
	}
	orig := slices.Clone(w)
	for i := 0; i < maxWordTries; i++ {
		rng.Shuffle(len(w), func(a, b int) { w[a], w[b] = w[b], w[a] })
		if !slices.Equal(w, orig) {
			return
		}
	}
}

func allSame[T rune | byte](w []T) bool {
	for _, r := range w[1:] {
		if r != w[0] {
			return false
		}
	}
	return true
}

// Display renders a scramble the way it is shown to players.
func Display(scramble string) string {
	return strings.ToUpper(scramble)
}
