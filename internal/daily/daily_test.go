package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDateKeyUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	ts := time.Date(2026, 3, 2, 5, 0, 0, 0, loc) // 2026-03-01 19:00 UTC
	require.Equal(t, "2026-03-01", DateKey(ts))
}

func TestSeedStableWithinDay(t *testing.T) {
	morning := time.Date(2026, 3, 1, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)
	require.Equal(t, Seed(morning, "salt"), Seed(evening, "salt"))
	require.NotZero(t, Seed(morning, "salt"))
}

func TestSeedVariesByDayAndSalt(t *testing.T) {
	d1 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)
	require.NotEqual(t, Seed(d1, "salt"), Seed(d2, "salt"))
	require.NotEqual(t, Seed(d1, "salt"), Seed(d1, "other"))
}
