package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/SiddeshHulagur/Expense-Tracker/core"
	"github.com/SiddeshHulagur/Expense-Tracker/ports"
)

// schema holds the relational variant of the data model. IDs come from the
// sequences table rather than BIGSERIAL so the same allocator contract works
// across backends.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            BIGINT PRIMARY KEY,
	first_name    TEXT NOT NULL,
	last_name     TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS expenses (
	id          BIGINT PRIMARY KEY,
	user_id     BIGINT NOT NULL REFERENCES users (id),
	description TEXT NOT NULL,
	amount      NUMERIC(14,2) NOT NULL,
	date        DATE NOT NULL,
	category    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS expenses_user_id_idx ON expenses (user_id);

CREATE TABLE IF NOT EXISTS sequences (
	name  TEXT PRIMARY KEY,
	value BIGINT NOT NULL
);
`

const uniqueViolation = "23505"

// PostgresStore is a PostgreSQL implementation of the UserStore and
// ExpenseStore interfaces.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var (
	_ ports.UserStore    = (*PostgresStore)(nil)
	_ ports.ExpenseStore = (*PostgresStore)(nil)
)

// NewPostgresStore connects to the database and ensures the schema exists.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Pool exposes the connection pool so the sequence allocator can share it.
func (s *PostgresStore) Pool() *pgxpool.Pool {
	return s.pool
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// CreateUser persists a new user.
func (s *PostgresStore) CreateUser(ctx context.Context, user *core.User) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, first_name, last_name, email, password_hash)
		 VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.FirstName, user.LastName, emailKey(user.Email), user.PasswordHash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return core.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", core.ErrStoreUnavailable)
	}
	return nil
}

// UserByEmail returns the user with the given email.
func (s *PostgresStore) UserByEmail(ctx context.Context, email string) (*core.User, error) {
	var user core.User
	err := s.pool.QueryRow(ctx,
		`SELECT id, first_name, last_name, email, password_hash FROM users WHERE email = $1`,
		emailKey(email)).
		Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrUserNotFound
		}
		return nil, fmt.Errorf("select user by email: %w", core.ErrStoreUnavailable)
	}
	return &user, nil
}

// UserByID returns the user with the given ID.
func (s *PostgresStore) UserByID(ctx context.Context, id int64) (*core.User, error) {
	var user core.User
	err := s.pool.QueryRow(ctx,
		`SELECT id, first_name, last_name, email, password_hash FROM users WHERE id = $1`,
		id).
		Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrUserNotFound
		}
		return nil, fmt.Errorf("select user by id: %w", core.ErrStoreUnavailable)
	}
	return &user, nil
}

// CreateExpense persists a new expense.
func (s *PostgresStore) CreateExpense(ctx context.Context, expense *core.Expense) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO expenses (id, user_id, description, amount, date, category)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		expense.ID, expense.UserID, expense.Description,
		expense.Amount.String(), expense.Date, expense.Category)
	if err != nil {
		return fmt.Errorf("insert expense: %w", core.ErrStoreUnavailable)
	}
	return nil
}

// ExpensesByUser returns all expenses owned by the user.
func (s *PostgresStore) ExpensesByUser(ctx context.Context, userID int64) ([]core.Expense, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, description, amount::text, date, category
		 FROM expenses WHERE user_id = $1 ORDER BY date DESC, id DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("select expenses: %w", core.ErrStoreUnavailable)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", core.ErrStoreUnavailable)
	}
	return out, nil
}

// ExpenseByID returns the expense only if it is owned by the user.
func (s *PostgresStore) ExpenseByID(ctx context.Context, id, userID int64) (*core.Expense, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, user_id, description, amount::text, date, category
		 FROM expenses WHERE id = $1 AND user_id = $2`,
		id, userID)

	expense, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrExpenseNotFound
		}
		return nil, err
	}
	return expense, nil
}

// UpdateExpense rewrites an expense only if it is owned by the user.
func (s *PostgresStore) UpdateExpense(ctx context.Context, expense *core.Expense) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE expenses SET description = $1, amount = $2, date = $3, category = $4
		 WHERE id = $5 AND user_id = $6`,
		expense.Description, expense.Amount.String(), expense.Date, expense.Category,
		expense.ID, expense.UserID)
	if err != nil {
		return fmt.Errorf("update expense: %w", core.ErrStoreUnavailable)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrExpenseNotFound
	}
	return nil
}

// DeleteExpense removes the expense only if it is owned by the user.
func (s *PostgresStore) DeleteExpense(ctx context.Context, id, userID int64) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM expenses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete expense: %w", core.ErrStoreUnavailable)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrExpenseNotFound
	}
	return nil
}

func scanExpense(row pgx.Row) (*core.Expense, error) {
	var (
		expense core.Expense
		amount  string
	)
	if err := row.Scan(&expense.ID, &expense.UserID, &expense.Description,
		&amount, &expense.Date, &expense.Category); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("scan expense: %w", core.ErrStoreUnavailable)
	}

	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", amount, core.ErrStoreUnavailable)
	}
	expense.Amount = parsed

	return &expense, nil
}
