package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/fardanhakim/onepercent-bot/internal/dates"
	"github.com/fardanhakim/onepercent-bot/internal/domain"
)

type LogActivityUsecase struct {
	records domain.Table
	logger  *zap.Logger
}

func NewLogActivityUsecase(records domain.Table, logger *zap.Logger) *LogActivityUsecase {
	return &LogActivityUsecase{records: records, logger: logger}
}

// Execute applies a log command: find-or-create the row for the resolved
// date, then write each metric cell independently. Metrics outside the
// registry are skipped with a warning rather than failing the whole log.
func (uc *LogActivityUsecase) Execute(ctx context.Context, details *domain.LogDetails) (string, error) {
	token := details.Date
	if token == "" {
		token = "today"
	}
	dateKey, err := dates.Resolve(token)
	if err != nil {
		return "", err
	}

	rows, err := uc.records.Rows(ctx)
	if err != nil {
		return "", fmt.Errorf("listing records: %w", err)
	}

	rowIdx := -1
	for i, row := range rows {
		if len(row) > 0 && row[0] == dateKey {
			rowIdx = i
			break
		}
	}

	if rowIdx >= 0 {
		return uc.updateRow(ctx, dateKey, rowIdx, details.Entries)
	}
	return uc.appendRow(ctx, dateKey, details.Entries)
}

func (uc *LogActivityUsecase) updateRow(ctx context.Context, dateKey string, rowIdx int, entries []domain.LogEntry) (string, error) {
	var touched []string
	for _, e := range entries {
		m, ok := domain.LookupMetric(e.Metric)
		if !ok {
			uc.logger.Warn("skipping unrecognized metric in log",
				zap.String("metric", e.Metric),
				zap.String("date", dateKey))
			continue
		}

		value := e.Value
		if e.Increment {
			value = uc.incrementedValue(ctx, dateKey, rowIdx, m, e)
		}
		if err := uc.records.UpdateCell(ctx, rowIdx, m.Col, value); err != nil {
			return "", fmt.Errorf("updating %s for %s: %w", m.Name, dateKey, err)
		}
		touched = append(touched, fmt.Sprintf("%s=%s", m.Name, value))
	}
	return fmt.Sprintf("Updated data for %s: %s.", dateKey, strings.Join(touched, ", ")), nil
}

// incrementedValue adds the entry's number to the stored cell. When the
// stored cell does not parse as an integer, or the entry's value is not a
// number at all, the entry value overwrites instead of failing the log.
func (uc *LogActivityUsecase) incrementedValue(ctx context.Context, dateKey string, rowIdx int, m domain.Metric, e domain.LogEntry) string {
	if !e.IsNumber {
		uc.logger.Warn("increment with non-numeric value, overwriting instead",
			zap.String("metric", m.Name),
			zap.String("value", e.Value))
		return e.Value
	}

	stored, err := uc.records.ReadCell(ctx, rowIdx, m.Col)
	if err != nil {
		uc.logger.Warn("could not read current value, overwriting instead",
			zap.String("metric", m.Name),
			zap.Error(err))
		return e.Value
	}

	current := 0
	if stored != "" {
		current, err = strconv.Atoi(strings.TrimSpace(stored))
		if err != nil {
			uc.logger.Warn("stored value is not a number, overwriting instead",
				zap.String("metric", m.Name),
				zap.String("stored", stored),
				zap.String("date", dateKey))
			return e.Value
		}
	}
	return strconv.Itoa(current + e.Number)
}

func (uc *LogActivityUsecase) appendRow(ctx context.Context, dateKey string, entries []domain.LogEntry) (string, error) {
	row := make([]string, len(domain.Metrics)+1)
	row[0] = dateKey
	for _, m := range domain.Metrics {
		row[m.Col] = m.Default()
	}

	var touched []string
	for _, e := range entries {
		m, ok := domain.LookupMetric(e.Metric)
		if !ok {
			uc.logger.Warn("skipping unrecognized metric in log",
				zap.String("metric", e.Metric),
				zap.String("date", dateKey))
			continue
		}
		row[m.Col] = e.Value
		touched = append(touched, fmt.Sprintf("%s=%s", m.Name, e.Value))
	}

	if err := uc.records.AppendRow(ctx, row); err != nil {
		return "", fmt.Errorf("appending record for %s: %w", dateKey, err)
	}
	return fmt.Sprintf("Logged new data for %s: %s.", dateKey, strings.Join(touched, ", ")), nil
}
