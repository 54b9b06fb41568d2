package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fardanhakim/onepercent-bot/internal/dates"
	"github.com/fardanhakim/onepercent-bot/internal/domain"
)

type CheckGoalsUsecase struct {
	records domain.Table
	goals   domain.Table

	// Now is the clock used to anchor timeframe windows. Overridable in
	// tests; defaults to time.Now.
	Now func() time.Time
}

func NewCheckGoalsUsecase(records, goals domain.Table) *CheckGoalsUsecase {
	return &CheckGoalsUsecase{records: records, goals: goals, Now: time.Now}
}

// Execute reports actual-vs-target for every goal over the timeframe
// window. Days without a record are skipped, not zero-filled; the week
// window always spans the full 7 days from the Monday on/before today,
// even when part of it is still in the future.
func (uc *CheckGoalsUsecase) Execute(ctx context.Context, details *domain.CheckGoalsDetails) (string, error) {
	now := uc.Now()

	var start time.Time
	var days int
	switch details.Timeframe {
	case "today":
		start, days = now, 1
	case "week":
		// Monday on/before today; Weekday has Sunday as 0.
		offset := (int(now.Weekday()) + 6) % 7
		start, days = now.AddDate(0, 0, -offset), 7
	case "month":
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		// Day 0 of the next month is the last day of this one.
		days = time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidTimeframe, details.Timeframe)
	}

	goalRows, err := uc.goals.Rows(ctx)
	if err != nil {
		return "", fmt.Errorf("listing goals: %w", err)
	}
	if len(goalRows) == 0 {
		return "No goals set yet. Try something like 'set a goal of 10000 steps per day'.", nil
	}

	recordRows, err := uc.records.Rows(ctx)
	if err != nil {
		return "", fmt.Errorf("listing records: %w", err)
	}
	byDate := make(map[string][]string, len(recordRows))
	for _, row := range recordRows {
		if len(row) > 0 {
			byDate[row[0]] = row
		}
	}

	window := make([]string, days)
	for i := range window {
		window[i] = dates.Format(start.AddDate(0, 0, i))
	}

	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("Goal progress for this %s (%s - %s):\n",
		details.Timeframe, window[0], window[len(window)-1]))

	for _, goal := range goalRows {
		if len(goal) < 2 {
			continue
		}
		metric, target := goal[0], goal[1]

		m, tracked := domain.LookupMetric(metric)
		current := 0
		if tracked {
			for _, key := range window {
				row, found := byDate[key]
				if !found || m.Col >= len(row) {
					continue
				}
				// Same number heuristic as logging: only digits-only
				// cells count, everything else contributes 0.
				if domain.IsDigits(row[m.Col]) {
					n, _ := strconv.Atoi(row[m.Col])
					current += n
				}
			}
		}

		switch {
		case !tracked:
			sb.WriteString(fmt.Sprintf("- %s: not a tracked metric (target %s)\n", metric, target))
		case domain.IsDigits(target):
			daily, _ := strconv.Atoi(target)
			period := daily * days
			pct := 0.0
			if period > 0 {
				pct = float64(current) / float64(period) * 100
			}
			sb.WriteString(fmt.Sprintf("- %s: %d / %d (%.1f%%)\n", metric, current, period, pct))
		default:
			sb.WriteString(fmt.Sprintf("- %s: %d vs target %s (non-numeric goal)\n", metric, current, target))
		}
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}
