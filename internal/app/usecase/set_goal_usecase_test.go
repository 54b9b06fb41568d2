package usecase_test

import (
	"context"
	"testing"

	"github.com/fardanhakim/onepercent-bot/internal/app/usecase"
	"github.com/fardanhakim/onepercent-bot/internal/domain"
)

func TestSetGoal_AppendsNewGoal(t *testing.T) {
	goals := &mockTable{}
	uc := usecase.NewSetGoalUsecase(goals)

	msg, err := uc.Execute(context.Background(), &domain.GoalDetails{Metric: "Steps", Target: "10000"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(goals.rows) != 1 {
		t.Fatalf("Expected 1 goal row, got %d", len(goals.rows))
	}
	if goals.rows[0][0] != "Steps" || goals.rows[0][1] != "10000" {
		t.Errorf("Unexpected goal row: %v", goals.rows[0])
	}
	if msg == "" {
		t.Error("Expected a confirmation message")
	}
}

func TestSetGoal_UpsertsInsteadOfDuplicating(t *testing.T) {
	goals := &mockTable{}
	uc := usecase.NewSetGoalUsecase(goals)
	ctx := context.Background()

	if _, err := uc.Execute(ctx, &domain.GoalDetails{Metric: "Steps", Target: "10000"}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := uc.Execute(ctx, &domain.GoalDetails{Metric: "Steps", Target: "12000"}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(goals.rows) != 1 {
		t.Fatalf("Upsert should keep exactly one row per metric, got %d", len(goals.rows))
	}
	if goals.rows[0][1] != "12000" {
		t.Errorf("Expected target 12000 after update, got %s", goals.rows[0][1])
	}
}

func TestSetGoal_DoesNotValidateMetricName(t *testing.T) {
	goals := &mockTable{}
	uc := usecase.NewSetGoalUsecase(goals)

	// Untracked metrics are accepted as-is; the progress report flags
	// them instead.
	_, err := uc.Execute(context.Background(), &domain.GoalDetails{Metric: "Squats", Target: "100"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(goals.rows) != 1 {
		t.Fatalf("Expected 1 goal row, got %d", len(goals.rows))
	}
}
