package usecase

import (
	"context"
	"fmt"

	"github.com/fardanhakim/onepercent-bot/internal/domain"
)

type SetGoalUsecase struct {
	goals domain.Table
}

func NewSetGoalUsecase(goals domain.Table) *SetGoalUsecase {
	return &SetGoalUsecase{goals: goals}
}

// Execute upserts a per-day target: update the existing goal row in
// place when one matches the metric name, otherwise append a new one.
// Metric names are not checked against the registry; a goal for an
// untracked metric simply aggregates to zero in progress reports.
func (uc *SetGoalUsecase) Execute(ctx context.Context, details *domain.GoalDetails) (string, error) {
	rows, err := uc.goals.Rows(ctx)
	if err != nil {
		return "", fmt.Errorf("listing goals: %w", err)
	}

	for i, row := range rows {
		if len(row) > 0 && row[0] == details.Metric {
			if err := uc.goals.UpdateCell(ctx, i, 1, details.Target); err != nil {
				return "", fmt.Errorf("updating goal for %s: %w", details.Metric, err)
			}
			return fmt.Sprintf("Updated your %s goal to %s per day.", details.Metric, details.Target), nil
		}
	}

	if err := uc.goals.AppendRow(ctx, []string{details.Metric, details.Target}); err != nil {
		return "", fmt.Errorf("adding goal for %s: %w", details.Metric, err)
	}
	return fmt.Sprintf("Goal set: %s at %s per day.", details.Metric, details.Target), nil
}
