// Package daily derives the shared "quiz of the day" seed.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed returns a deterministic random seed for the date using
// HMAC(salt, YYYY-MM-DD). Everyone sharing a salt gets the same title order
// and scrambles on the same UTC day. The result is never zero.
func Seed(date time.Time, salt string) uint64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// take first 8 bytes as the seed
	n := binary.BigEndian.Uint64(sum[:8])
	if n == 0 {
		n = 1
	}
	return n
}
