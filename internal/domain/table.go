package domain

import "context"

// Table is a row-oriented tabular store. Row and column indices are
// 0-based and address data rows only; the header row is owned by the
// backend and never returned.
//
// Access is read-then-write with no locking: concurrent writers to the
// same row race, last write wins per cell. Each table is expected to
// have a single authorized author, so this is a documented limitation
// rather than a guarded case.
type Table interface {
	Rows(ctx context.Context) ([][]string, error)
	AppendRow(ctx context.Context, row []string) error
	UpdateCell(ctx context.Context, row, col int, value string) error
	ReadCell(ctx context.Context, row, col int) (string, error)
}

// Classifier turns a free-text message into the structured XML envelope
// understood by the intent parser. Implementations are swappable: a
// hosted model, a local rules engine, or a test stub.
type Classifier interface {
	Classify(ctx context.Context, message string) (string, error)
}
