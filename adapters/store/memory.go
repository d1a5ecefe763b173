package store

import (
	"context"
	"strings"
	"sync"

	"github.com/SiddeshHulagur/Expense-Tracker/core"
	"github.com/SiddeshHulagur/Expense-Tracker/ports"
)

// MemoryStore is an in-memory implementation of the UserStore and
// ExpenseStore interfaces, for tests and local development.
type MemoryStore struct {
	users    map[int64]core.User
	emails   map[string]int64
	expenses map[int64]core.Expense
	mu       sync.RWMutex
}

var (
	_ ports.UserStore    = (*MemoryStore)(nil)
	_ ports.ExpenseStore = (*MemoryStore)(nil)
)

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[int64]core.User),
		emails:   make(map[string]int64),
		expenses: make(map[int64]core.Expense),
	}
}

// CreateUser persists a new user.
func (s *MemoryStore) CreateUser(ctx context.Context, user *core.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := emailKey(user.Email)
	if _, exists := s.emails[key]; exists {
		return core.ErrEmailTaken
	}

	s.users[user.ID] = *user
	s.emails[key] = user.ID
	return nil
}

// UserByEmail returns the user with the given email.
func (s *MemoryStore) UserByEmail(ctx context.Context, email string) (*core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[emailKey(email)]
	if !ok {
		return nil, core.ErrUserNotFound
	}

	user := s.users[id]
	return &user, nil
}

// UserByID returns the user with the given ID.
func (s *MemoryStore) UserByID(ctx context.Context, id int64) (*core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, core.ErrUserNotFound
	}
	return &user, nil
}

// CreateExpense persists a new expense.
func (s *MemoryStore) CreateExpense(ctx context.Context, expense *core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expenses[expense.ID] = *expense
	return nil
}

// ExpensesByUser returns all expenses owned by the user.
func (s *MemoryStore) ExpensesByUser(ctx context.Context, userID int64) ([]core.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []core.Expense
	for _, e := range s.expenses {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

// ExpenseByID returns the expense only if it is owned by the user.
func (s *MemoryStore) ExpenseByID(ctx context.Context, id, userID int64) (*core.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expense, ok := s.expenses[id]
	if !ok || expense.UserID != userID {
		return nil, core.ErrExpenseNotFound
	}
	return &expense, nil
}

// UpdateExpense rewrites an expense only if it is owned by the user.
func (s *MemoryStore) UpdateExpense(ctx context.Context, expense *core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.expenses[expense.ID]
	if !ok || current.UserID != expense.UserID {
		return core.ErrExpenseNotFound
	}

	s.expenses[expense.ID] = *expense
	return nil
}

// DeleteExpense removes the expense only if it is owned by the user.
func (s *MemoryStore) DeleteExpense(ctx context.Context, id, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	expense, ok := s.expenses[id]
	if !ok || expense.UserID != userID {
		return core.ErrExpenseNotFound
	}

	delete(s.expenses, id)
	return nil
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
