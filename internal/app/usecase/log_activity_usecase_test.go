package usecase_test

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/fardanhakim/onepercent-bot/internal/app/usecase"
	"github.com/fardanhakim/onepercent-bot/internal/dates"
	"github.com/fardanhakim/onepercent-bot/internal/domain"
)

// =============================================================================
// SHARED TEST DOUBLES
// =============================================================================

// mockTable is an in-memory domain.Table that counts every call, so
// tests can assert both on contents and on whether a store was touched
// at all.
type mockTable struct {
	rows [][]string

	rowsCalls   int
	appendCalls int
	updateCalls int
	readCalls   int
}

func (m *mockTable) Rows(ctx context.Context) ([][]string, error) {
	m.rowsCalls++
	return m.rows, nil
}

func (m *mockTable) AppendRow(ctx context.Context, row []string) error {
	m.appendCalls++
	m.rows = append(m.rows, append([]string(nil), row...))
	return nil
}

func (m *mockTable) UpdateCell(ctx context.Context, row, col int, value string) error {
	m.updateCalls++
	if row >= len(m.rows) || col >= len(m.rows[row]) {
		return fmt.Errorf("cell %d,%d out of range", row, col)
	}
	m.rows[row][col] = value
	return nil
}

func (m *mockTable) ReadCell(ctx context.Context, row, col int) (string, error) {
	m.readCalls++
	if row >= len(m.rows) || col >= len(m.rows[row]) {
		return "", fmt.Errorf("cell %d,%d out of range", row, col)
	}
	return m.rows[row][col], nil
}

func (m *mockTable) totalCalls() int {
	return m.rowsCalls + m.appendCalls + m.updateCalls + m.readCalls
}

// mockClassifier returns a canned response and records invocations.
type mockClassifier struct {
	response string
	err      error
	calls    int
}

func (m *mockClassifier) Classify(ctx context.Context, message string) (string, error) {
	m.calls++
	return m.response, m.err
}

func entry(metric, value string, increment bool) domain.LogEntry {
	e := domain.LogEntry{Metric: metric, Value: value, Increment: increment}
	if domain.IsDigits(value) {
		if m, ok := domain.LookupMetric(metric); !ok || m.Kind == domain.KindInt {
			e.IsNumber = true
			fmt.Sscanf(value, "%d", &e.Number)
		}
	}
	return e
}

// =============================================================================
// LOG RECONCILIATION TESTS
//
// Rules under test:
// 1. No row for the date -> append a full row with registry defaults.
// 2. Existing row -> each metric is one independent cell write.
// 3. Increment reads the stored value and adds; a non-numeric stored
//    value is overwritten instead of failing the log.
// 4. Metrics outside the registry are skipped, never an error.
// =============================================================================

func TestLogActivity_NewRowUsesRegistryDefaults(t *testing.T) {
	records := &mockTable{}
	uc := usecase.NewLogActivityUsecase(records, zap.NewNop())
	ctx := context.Background()

	details := &domain.LogDetails{Entries: []domain.LogEntry{
		entry("Pushups", "50", true),
		entry("WorkedOut", "Y", false),
	}}

	msg, err := uc.Execute(ctx, details)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	today, _ := dates.Resolve("today")
	want := []string{today, "50", "0", "0", "00:00:00", "Y"}
	if len(records.rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(records.rows))
	}
	if !reflect.DeepEqual(records.rows[0], want) {
		t.Errorf("Row mismatch:\n got %v\nwant %v", records.rows[0], want)
	}
	if msg == "" {
		t.Error("Expected a confirmation message")
	}
}

func TestLogActivity_SetThenQueryRoundTrip(t *testing.T) {
	records := &mockTable{}
	logUC := usecase.NewLogActivityUsecase(records, zap.NewNop())
	queryUC := usecase.NewQueryMetricUsecase(records)
	ctx := context.Background()

	_, err := logUC.Execute(ctx, &domain.LogDetails{Entries: []domain.LogEntry{
		entry("Steps", "5", false),
	}})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	msg, err := queryUC.Execute(ctx, &domain.QueryDetails{Metric: "Steps", Date: "today"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	today, _ := dates.Resolve("today")
	want := fmt.Sprintf("Your Steps for %s was 5.", today)
	if msg != want {
		t.Errorf("Expected '%s', got '%s'", want, msg)
	}
}

func TestLogActivity_IncrementAccumulates(t *testing.T) {
	records := &mockTable{}
	uc := usecase.NewLogActivityUsecase(records, zap.NewNop())
	ctx := context.Background()

	today, _ := dates.Resolve("today")
	records.rows = [][]string{{today, "0", "0", "0", "00:00:00", "N"}}

	details := &domain.LogDetails{Entries: []domain.LogEntry{entry("Pushups", "10", true)}}
	for i := 0; i < 2; i++ {
		if _, err := uc.Execute(ctx, details); err != nil {
			t.Fatalf("Execute %d: unexpected error: %v", i, err)
		}
	}

	if got := records.rows[0][1]; got != "20" {
		t.Errorf("Expected Pushups=20 after two +10 increments, got %s", got)
	}
}

func TestLogActivity_IncrementOnNonNumericCellOverwrites(t *testing.T) {
	records := &mockTable{}
	uc := usecase.NewLogActivityUsecase(records, zap.NewNop())
	ctx := context.Background()

	today, _ := dates.Resolve("today")
	records.rows = [][]string{{today, "lots", "0", "0", "00:00:00", "N"}}

	_, err := uc.Execute(ctx, &domain.LogDetails{Entries: []domain.LogEntry{
		entry("Pushups", "10", true),
	}})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got := records.rows[0][1]; got != "10" {
		t.Errorf("Expected overwrite to 10 on non-numeric cell, got %s", got)
	}
}

func TestLogActivity_IncrementTreatsEmptyCellAsZero(t *testing.T) {
	records := &mockTable{}
	uc := usecase.NewLogActivityUsecase(records, zap.NewNop())
	ctx := context.Background()

	today, _ := dates.Resolve("today")
	records.rows = [][]string{{today, "", "0", "0", "00:00:00", "N"}}

	_, err := uc.Execute(ctx, &domain.LogDetails{Entries: []domain.LogEntry{
		entry("Pushups", "15", true),
	}})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got := records.rows[0][1]; got != "15" {
		t.Errorf("Expected 15 on empty cell, got %s", got)
	}
}

func TestLogActivity_UntouchedMetricsKeepTheirValues(t *testing.T) {
	records := &mockTable{}
	uc := usecase.NewLogActivityUsecase(records, zap.NewNop())
	ctx := context.Background()

	today, _ := dates.Resolve("today")
	records.rows = [][]string{{today, "30", "8000", "90", "07:00:00", "Y"}}

	_, err := uc.Execute(ctx, &domain.LogDetails{Entries: []domain.LogEntry{
		entry("Steps", "9000", false),
	}})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := []string{today, "30", "9000", "90", "07:00:00", "Y"}
	if !reflect.DeepEqual(records.rows[0], want) {
		t.Errorf("Row mismatch:\n got %v\nwant %v", records.rows[0], want)
	}
}

func TestLogActivity_UnregisteredMetricIsSkipped(t *testing.T) {
	records := &mockTable{}
	uc := usecase.NewLogActivityUsecase(records, zap.NewNop())
	ctx := context.Background()

	today, _ := dates.Resolve("today")
	before := []string{today, "30", "8000", "90", "07:00:00", "Y"}
	records.rows = [][]string{append([]string(nil), before...)}

	_, err := uc.Execute(ctx, &domain.LogDetails{Entries: []domain.LogEntry{
		entry("Squats", "40", false),
	}})
	if err != nil {
		t.Fatalf("Unregistered metric should not fail the log: %v", err)
	}

	if !reflect.DeepEqual(records.rows[0], before) {
		t.Errorf("Row should be untouched:\n got %v\nwant %v", records.rows[0], before)
	}
	if records.updateCalls != 0 {
		t.Errorf("Expected no cell writes, got %d", records.updateCalls)
	}
}

func TestLogActivity_ExplicitDate(t *testing.T) {
	records := &mockTable{}
	uc := usecase.NewLogActivityUsecase(records, zap.NewNop())
	ctx := context.Background()

	_, err := uc.Execute(ctx, &domain.LogDetails{
		Date:    "3/5/2025",
		Entries: []domain.LogEntry{entry("Steps", "1200", false)},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if records.rows[0][0] != "3/5/2025" {
		t.Errorf("Expected row keyed by 3/5/2025, got %s", records.rows[0][0])
	}
}
