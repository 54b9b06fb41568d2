package usecase

import (
	"context"
	"fmt"

	"github.com/fardanhakim/onepercent-bot/internal/dates"
	"github.com/fardanhakim/onepercent-bot/internal/domain"
)

type QueryMetricUsecase struct {
	records domain.Table
}

func NewQueryMetricUsecase(records domain.Table) *QueryMetricUsecase {
	return &QueryMetricUsecase{records: records}
}

// Execute answers a single metric/date question. A missing row is an
// answer ("no data found"), not an error.
func (uc *QueryMetricUsecase) Execute(ctx context.Context, details *domain.QueryDetails) (string, error) {
	dateKey, err := dates.Resolve(details.Date)
	if err != nil {
		return "", err
	}

	rows, err := uc.records.Rows(ctx)
	if err != nil {
		return "", fmt.Errorf("listing records: %w", err)
	}

	for _, row := range rows {
		if len(row) == 0 || row[0] != dateKey {
			continue
		}
		value := "N/A"
		if m, ok := domain.LookupMetric(details.Metric); ok && m.Col < len(row) {
			value = row[m.Col]
		}
		return fmt.Sprintf("Your %s for %s was %s.", details.Metric, dateKey, value), nil
	}
	return fmt.Sprintf("No data found for %s.", dateKey), nil
}
