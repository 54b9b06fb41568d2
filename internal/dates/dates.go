// Package dates normalizes the date tokens used throughout the bot to
// the canonical record key: M/D/YYYY with no leading zeros.
package dates

import (
	"fmt"
	"time"

	"github.com/fardanhakim/onepercent-bot/internal/domain"
)

// layout accepts both "3/5/2024" and "03/05/2024".
const layout = "1/2/2006"

// Format renders t as a canonical date key.
func Format(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}

// Resolve normalizes a date token against the current local date.
// "today" and "yesterday" use the process time zone; anything else must
// parse as M/D/YYYY. Resolving an already-canonical key returns it
// unchanged.
func Resolve(token string) (string, error) {
	return ResolveAt(token, time.Now())
}

// ResolveAt is Resolve with an explicit reference time.
func ResolveAt(token string, now time.Time) (string, error) {
	switch token {
	case "today":
		return Format(now), nil
	case "yesterday":
		return Format(now.AddDate(0, 0, -1)), nil
	}
	t, err := time.Parse(layout, token)
	if err != nil {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidDateToken, token)
	}
	return Format(t), nil
}
