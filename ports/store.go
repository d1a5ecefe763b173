package ports

import (
	"context"

	"github.com/SiddeshHulagur/Expense-Tracker/core"
)

// UserStore persists user accounts. Implementations exist for PostgreSQL,
// Redis documents and memory; all satisfy the same contract so backends are
// swappable.
type UserStore interface {
	// CreateUser persists a new user. Returns core.ErrEmailTaken when the
	// email already has an account.
	CreateUser(ctx context.Context, user *core.User) error

	// UserByEmail returns the user with the given email, or
	// core.ErrUserNotFound.
	UserByEmail(ctx context.Context, email string) (*core.User, error)

	// UserByID returns the user with the given ID, or core.ErrUserNotFound.
	UserByID(ctx context.Context, id int64) (*core.User, error)
}

// ExpenseStore persists expense records. Every read and write is filtered by
// the owning user at the query level.
type ExpenseStore interface {
	// CreateExpense persists a new expense with its ID and UserID already set.
	CreateExpense(ctx context.Context, expense *core.Expense) error

	// ExpensesByUser returns all expenses owned by the user.
	ExpensesByUser(ctx context.Context, userID int64) ([]core.Expense, error)

	// ExpenseByID returns the expense only if it is owned by the user,
	// otherwise core.ErrExpenseNotFound.
	ExpenseByID(ctx context.Context, id, userID int64) (*core.Expense, error)

	// UpdateExpense rewrites an expense only if it is owned by the user,
	// otherwise core.ErrExpenseNotFound.
	UpdateExpense(ctx context.Context, expense *core.Expense) error

	// DeleteExpense removes the expense only if it is owned by the user,
	// otherwise core.ErrExpenseNotFound.
	DeleteExpense(ctx context.Context, id, userID int64) error
}
