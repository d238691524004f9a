package store

import (
	"context"
	"database/sql"
)

// DBTX abstracts the database handle a store runs its queries on. Both
// *sql.DB and *sql.Tx satisfy it, so the same store code serves plain
// reads and the transactional read-apply-write path of grading.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
