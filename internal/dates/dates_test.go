package dates_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fardanhakim/onepercent-bot/internal/dates"
	"github.com/fardanhakim/onepercent-bot/internal/domain"
)

func TestResolveAt_Keywords(t *testing.T) {
	now := time.Date(2025, time.March, 5, 14, 30, 0, 0, time.UTC)

	got, err := dates.ResolveAt("today", now)
	require.NoError(t, err)
	assert.Equal(t, "3/5/2025", got)

	got, err = dates.ResolveAt("yesterday", now)
	require.NoError(t, err)
	assert.Equal(t, "3/4/2025", got)
}

func TestResolveAt_YesterdayCrossesMonthBoundary(t *testing.T) {
	now := time.Date(2025, time.March, 1, 8, 0, 0, 0, time.UTC)

	got, err := dates.ResolveAt("yesterday", now)
	require.NoError(t, err)
	assert.Equal(t, "2/28/2025", got)
}

func TestResolveAt_CanonicalInputIsIdempotent(t *testing.T) {
	now := time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)

	for _, key := range []string{"3/5/2025", "12/31/2024", "1/1/2026"} {
		got, err := dates.ResolveAt(key, now)
		require.NoError(t, err)
		assert.Equal(t, key, got)
	}
}

func TestResolveAt_StripsLeadingZeros(t *testing.T) {
	now := time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)

	got, err := dates.ResolveAt("03/05/2025", now)
	require.NoError(t, err)
	assert.Equal(t, "3/5/2025", got)
}

func TestResolveAt_InvalidToken(t *testing.T) {
	now := time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)

	for _, token := range []string{"", "tomorrow", "2025-03-05", "13/40/2025", "not a date"} {
		_, err := dates.ResolveAt(token, now)
		assert.ErrorIs(t, err, domain.ErrInvalidDateToken, "token %q", token)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1/2/2025", dates.Format(time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "11/28/2024", dates.Format(time.Date(2024, time.November, 28, 0, 0, 0, 0, time.UTC)))
}
