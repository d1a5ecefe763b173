package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/SiddeshHulagur/Expense-Tracker/core"
	"github.com/SiddeshHulagur/Expense-Tracker/ports"
)

// ExpenseSequence is the counter name for expense surrogate IDs.
const ExpenseSequence = "expense_sequence"

// ExpenseService handles expense CRUD. Every operation is scoped to the
// owning user; a record belonging to someone else behaves exactly like a
// record that does not exist.
type ExpenseService struct {
	expenses  ports.ExpenseStore
	sequences ports.SequenceAllocator
	events    ports.EventPublisher
	log       *zap.Logger
}

// NewExpenseService creates a new expense service. The event publisher may
// be nil, in which case no events are emitted.
func NewExpenseService(
	expenses ports.ExpenseStore,
	sequences ports.SequenceAllocator,
	events ports.EventPublisher,
	log *zap.Logger,
) *ExpenseService {
	return &ExpenseService{
		expenses:  expenses,
		sequences: sequences,
		events:    events,
		log:       log,
	}
}

// List returns all expenses of the user.
func (s *ExpenseService) List(ctx context.Context, userID int64) ([]core.Expense, error) {
	return s.expenses.ExpensesByUser(ctx, userID)
}

// Get returns one expense of the user.
func (s *ExpenseService) Get(ctx context.Context, id, userID int64) (*core.Expense, error) {
	return s.expenses.ExpenseByID(ctx, id, userID)
}

// Create allocates a surrogate ID, stamps the owner and persists the
// expense.
func (s *ExpenseService) Create(ctx context.Context, expense *core.Expense, userID int64) (*core.Expense, error) {
	id, err := s.sequences.Next(ctx, ExpenseSequence)
	if err != nil {
		return nil, err
	}

	expense.ID = id
	expense.UserID = userID

	if err := s.expenses.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}

	if s.events != nil {
		if err := s.events.PublishExpenseCreated(ctx, expense.ID, userID); err != nil {
			s.log.Warn("failed to publish expense event", zap.Error(err))
		}
	}

	return expense, nil
}

// Update rewrites the mutable fields of an expense the user owns.
func (s *ExpenseService) Update(ctx context.Context, id int64, details *core.Expense, userID int64) (*core.Expense, error) {
	current, err := s.expenses.ExpenseByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	current.Description = details.Description
	current.Amount = details.Amount
	current.Date = details.Date
	current.Category = details.Category

	if err := s.expenses.UpdateExpense(ctx, current); err != nil {
		return nil, err
	}

	return current, nil
}

// Delete removes an expense the user owns. Deleting an expense that does
// not exist is not an error; the end state is the same.
func (s *ExpenseService) Delete(ctx context.Context, id, userID int64) error {
	err := s.expenses.DeleteExpense(ctx, id, userID)
	if errors.Is(err, core.ErrExpenseNotFound) {
		return nil
	}
	return err
}
