// Package sqlite backs the tabular store interface with database/sql
// tables. Row order follows the autoincrement id, so row indices are
// stable append order, matching the spreadsheet backend.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/fardanhakim/onepercent-bot/internal/domain"
)

type TableRepository struct {
	db      *sql.DB
	table   string
	columns []string
}

// NewRecordRepository stores daily records; column order mirrors the
// metric registry.
func NewRecordRepository(db *sql.DB) *TableRepository {
	return &TableRepository{
		db:      db,
		table:   "daily_records",
		columns: []string{"date", "pushups", "steps", "sleep_score", "sleep_duration", "worked_out"},
	}
}

// NewGoalRepository stores one target row per metric.
func NewGoalRepository(db *sql.DB) *TableRepository {
	return &TableRepository{
		db:      db,
		table:   "goals",
		columns: []string{"metric", "target"},
	}
}

func (r *TableRepository) InitTable(ctx context.Context) error {
	cols := make([]string, len(r.columns))
	for i, c := range r.columns {
		cols[i] = c + " TEXT NOT NULL DEFAULT ''"
	}
	query := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (id INTEGER PRIMARY KEY AUTOINCREMENT, %s)",
		r.table, strings.Join(cols, ", "))
	_, err := r.db.ExecContext(ctx, query)
	return err
}

func (r *TableRepository) Rows(ctx context.Context) ([][]string, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", strings.Join(r.columns, ", "), r.table)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result [][]string
	for rows.Next() {
		row := make([]string, len(r.columns))
		dest := make([]interface{}, len(r.columns))
		for i := range row {
			dest[i] = &row[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *TableRepository) AppendRow(ctx context.Context, row []string) error {
	if len(row) != len(r.columns) {
		return fmt.Errorf("expected %d cells, got %d", len(r.columns), len(row))
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(row)), ", ")
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		r.table, strings.Join(r.columns, ", "), placeholders)

	args := make([]interface{}, len(row))
	for i, v := range row {
		args[i] = v
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *TableRepository) UpdateCell(ctx context.Context, row, col int, value string) error {
	if col < 0 || col >= len(r.columns) {
		return fmt.Errorf("column %d out of range", col)
	}
	id, err := r.rowID(ctx, row)
	if err != nil {
		return err
	}
	query := fmt.Sprintf("UPDATE %s SET %s = ? WHERE id = ?", r.table, r.columns[col])
	_, err = r.db.ExecContext(ctx, query, value, id)
	return err
}

func (r *TableRepository) ReadCell(ctx context.Context, row, col int) (string, error) {
	if col < 0 || col >= len(r.columns) {
		return "", fmt.Errorf("column %d out of range", col)
	}
	id, err := r.rowID(ctx, row)
	if err != nil {
		return "", err
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", r.columns[col], r.table)

	var value string
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&value); err != nil {
		return "", err
	}
	return value, nil
}

// rowID maps a 0-based row position to the underlying primary key.
func (r *TableRepository) rowID(ctx context.Context, row int) (int64, error) {
	if row < 0 {
		return 0, fmt.Errorf("row %d out of range", row)
	}
	query := fmt.Sprintf("SELECT id FROM %s ORDER BY id LIMIT 1 OFFSET ?", r.table)

	var id int64
	err := r.db.QueryRowContext(ctx, query, row).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("row %d out of range", row)
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// compile-time interface check
var _ domain.Table = (*TableRepository)(nil)
