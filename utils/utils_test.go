package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartOfDay(t *testing.T) {
	instant := time.Date(2026, 3, 10, 14, 30, 45, 123, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), StartOfDay(instant))
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), StartOfNextDay(instant))

	midnight := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, midnight, StartOfDay(midnight))
}

func TestIsWeekend(t *testing.T) {
	saturday := time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 3, 8, 10, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)

	assert.True(t, IsWeekend(saturday))
	assert.True(t, IsWeekend(sunday))
	assert.False(t, IsWeekend(monday))
}

func TestNextBusinessDay(t *testing.T) {
	saturday := time.Date(2026, 3, 7, 10, 30, 0, 0, time.UTC)
	monday := time.Date(2026, 3, 9, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, monday, NextBusinessDay(saturday), "weekend rolls to Monday keeping the clock time")
	assert.Equal(t, monday, NextBusinessDay(monday), "weekdays pass through unchanged")
}

func TestIsExpired(t *testing.T) {
	assert.True(t, IsExpired(UTCNow().Add(-time.Minute)))
	assert.False(t, IsExpired(UTCNow().Add(time.Minute)))

	assert.False(t, IsExpiredPtr(nil))
	assert.True(t, IsExpiredPtr(UTCNowAddPtr(-time.Minute)))
}

func TestIsTrue(t *testing.T) {
	assert.True(t, IsTrue(ToPtr(true)))
	assert.False(t, IsTrue(ToPtr(false)))
	assert.False(t, IsTrue(nil))
}

func TestParseUUID(t *testing.T) {
	parsed, err := ParseUUID("0d1f7f3a-4b6e-4a1e-9f2d-8c3b5a7e9d01")
	require.NoError(t, err)
	assert.Equal(t, "0d1f7f3a-4b6e-4a1e-9f2d-8c3b5a7e9d01", parsed.String())

	_, err = ParseUUID("not-a-uuid")
	require.Error(t, err)
}
