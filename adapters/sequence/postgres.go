package sequence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/SiddeshHulagur/Expense-Tracker/core"
	"github.com/SiddeshHulagur/Expense-Tracker/ports"
)

// Querier is the subset of pgxpool.Pool the allocator needs. Narrowed so
// tests can substitute a mock pool.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// nextValueSQL creates the counter row at 1 on first use and increments it
// afterwards. The upsert-and-return runs as a single statement, so two
// concurrent callers for the same name can never observe the same value.
const nextValueSQL = `
INSERT INTO sequences (name, value) VALUES ($1, 1)
ON CONFLICT (name) DO UPDATE SET value = sequences.value + 1
RETURNING value`

// PostgresAllocator implements the SequenceAllocator interface against a
// sequences table.
type PostgresAllocator struct {
	db Querier
}

var _ ports.SequenceAllocator = (*PostgresAllocator)(nil)

// NewPostgresAllocator creates a new PostgreSQL-backed allocator.
func NewPostgresAllocator(db Querier) *PostgresAllocator {
	return &PostgresAllocator{db: db}
}

// Next returns the next value for the named counter. A query that produces
// no row is surfaced as core.ErrSequenceUnavailable; zero is never returned
// as a value.
func (a *PostgresAllocator) Next(ctx context.Context, name string) (int64, error) {
	var value int64
	if err := a.db.QueryRow(ctx, nextValueSQL, name).Scan(&value); err != nil {
		return 0, fmt.Errorf("allocate %q: %w", name, core.ErrSequenceUnavailable)
	}
	return value, nil
}
