package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/SiddeshHulagur/Expense-Tracker/core"
	"github.com/SiddeshHulagur/Expense-Tracker/ports"
)

const dateLayout = "2006-01-02"

// userDoc is the persisted document shape for a user.
type userDoc struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
}

// expenseDoc is the persisted document shape for an expense. Field names
// match the document collection the relational variant mirrors.
type expenseDoc struct {
	ExpenseID   int64  `json:"expense_id"`
	UserID      int64  `json:"user_id"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
	Category    string `json:"category"`
}

// RedisStore is a document implementation of the UserStore and ExpenseStore
// interfaces. Users and expenses are JSON documents; a per-email index and a
// per-user expense-ID set stand in for derived queries.
type RedisStore struct {
	client *redis.Client
	prefix string
}

var (
	_ ports.UserStore    = (*RedisStore)(nil)
	_ ports.ExpenseStore = (*RedisStore)(nil)
)

// NewRedisStore creates a new Redis-backed document store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "expense-tracker:",
	}
}

func (s *RedisStore) userKey(id int64) string {
	return s.prefix + "user:" + strconv.FormatInt(id, 10)
}

func (s *RedisStore) emailIndexKey(email string) string {
	return s.prefix + "user:email:" + emailKey(email)
}

func (s *RedisStore) expenseKey(id int64) string {
	return s.prefix + "expense:" + strconv.FormatInt(id, 10)
}

func (s *RedisStore) userExpensesKey(userID int64) string {
	return s.prefix + "user:" + strconv.FormatInt(userID, 10) + ":expenses"
}

// CreateUser persists a new user. The email index is claimed with SETNX so
// two concurrent registrations for the same address cannot both succeed.
func (s *RedisStore) CreateUser(ctx context.Context, user *core.User) error {
	claimed, err := s.client.SetNX(ctx, s.emailIndexKey(user.Email), user.ID, 0).Result()
	if err != nil {
		return fmt.Errorf("claim email index: %w", core.ErrStoreUnavailable)
	}
	if !claimed {
		return core.ErrEmailTaken
	}

	doc := userDoc{
		ID:           user.ID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        emailKey(user.Email),
		PasswordHash: user.PasswordHash,
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	if err := s.client.Set(ctx, s.userKey(user.ID), payload, 0).Err(); err != nil {
		// Release the index so a retry is possible.
		s.client.Del(ctx, s.emailIndexKey(user.Email))
		return fmt.Errorf("store user: %w", core.ErrStoreUnavailable)
	}
	return nil
}

// UserByEmail returns the user with the given email.
func (s *RedisStore) UserByEmail(ctx context.Context, email string) (*core.User, error) {
	id, err := s.client.Get(ctx, s.emailIndexKey(email)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, core.ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup email index: %w", core.ErrStoreUnavailable)
	}
	return s.UserByID(ctx, id)
}

// UserByID returns the user with the given ID.
func (s *RedisStore) UserByID(ctx context.Context, id int64) (*core.User, error) {
	payload, err := s.client.Get(ctx, s.userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, core.ErrUserNotFound
		}
		return nil, fmt.Errorf("fetch user: %w", core.ErrStoreUnavailable)
	}

	var doc userDoc
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}

	return &core.User{
		ID:           doc.ID,
		FirstName:    doc.FirstName,
		LastName:     doc.LastName,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
	}, nil
}

// CreateExpense persists a new expense document and records it in the
// owner's expense set.
func (s *RedisStore) CreateExpense(ctx context.Context, expense *core.Expense) error {
	payload, err := json.Marshal(toExpenseDoc(expense))
	if err != nil {
		return fmt.Errorf("marshal expense: %w", err)
	}

	if err := s.client.Set(ctx, s.expenseKey(expense.ID), payload, 0).Err(); err != nil {
		return fmt.Errorf("store expense: %w", core.ErrStoreUnavailable)
	}
	if err := s.client.SAdd(ctx, s.userExpensesKey(expense.UserID), expense.ID).Err(); err != nil {
		return fmt.Errorf("index expense: %w", core.ErrStoreUnavailable)
	}
	return nil
}

// ExpensesByUser returns all expenses owned by the user.
func (s *RedisStore) ExpensesByUser(ctx context.Context, userID int64) ([]core.Expense, error) {
	ids, err := s.client.SMembers(ctx, s.userExpensesKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list expense ids: %w", core.ErrStoreUnavailable)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(ids))
	for _, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		keys = append(keys, s.expenseKey(id))
	}

	payloads, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("fetch expenses: %w", core.ErrStoreUnavailable)
	}

	var out []core.Expense
	for _, payload := range payloads {
		raw, ok := payload.(string)
		if !ok {
			continue // document deleted between SMEMBERS and MGET
		}
		expense, err := fromExpenseJSON([]byte(raw))
		if err != nil {
			return nil, err
		}
		out = append(out, *expense)
	}
	return out, nil
}

// ExpenseByID returns the expense only if it is owned by the user.
func (s *RedisStore) ExpenseByID(ctx context.Context, id, userID int64) (*core.Expense, error) {
	payload, err := s.client.Get(ctx, s.expenseKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, core.ErrExpenseNotFound
		}
		return nil, fmt.Errorf("fetch expense: %w", core.ErrStoreUnavailable)
	}

	expense, err := fromExpenseJSON(payload)
	if err != nil {
		return nil, err
	}
	if expense.UserID != userID {
		return nil, core.ErrExpenseNotFound
	}
	return expense, nil
}

// UpdateExpense rewrites an expense only if it is owned by the user.
func (s *RedisStore) UpdateExpense(ctx context.Context, expense *core.Expense) error {
	if _, err := s.ExpenseByID(ctx, expense.ID, expense.UserID); err != nil {
		return err
	}

	payload, err := json.Marshal(toExpenseDoc(expense))
	if err != nil {
		return fmt.Errorf("marshal expense: %w", err)
	}
	if err := s.client.Set(ctx, s.expenseKey(expense.ID), payload, 0).Err(); err != nil {
		return fmt.Errorf("store expense: %w", core.ErrStoreUnavailable)
	}
	return nil
}

// DeleteExpense removes the expense only if it is owned by the user.
func (s *RedisStore) DeleteExpense(ctx context.Context, id, userID int64) error {
	if _, err := s.ExpenseByID(ctx, id, userID); err != nil {
		return err
	}

	if err := s.client.Del(ctx, s.expenseKey(id)).Err(); err != nil {
		return fmt.Errorf("delete expense: %w", core.ErrStoreUnavailable)
	}
	if err := s.client.SRem(ctx, s.userExpensesKey(userID), id).Err(); err != nil {
		return fmt.Errorf("unindex expense: %w", core.ErrStoreUnavailable)
	}
	return nil
}

func toExpenseDoc(expense *core.Expense) expenseDoc {
	return expenseDoc{
		ExpenseID:   expense.ID,
		UserID:      expense.UserID,
		Description: expense.Description,
		Amount:      expense.Amount.String(),
		Date:        expense.Date.Format(dateLayout),
		Category:    expense.Category,
	}
}

func fromExpenseJSON(payload []byte) (*core.Expense, error) {
	var doc expenseDoc
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal expense: %w", err)
	}

	amount, err := decimal.NewFromString(doc.Amount)
	if err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", doc.Amount, err)
	}

	date, err := time.Parse(dateLayout, doc.Date)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", doc.Date, err)
	}

	return &core.Expense{
		ID:          doc.ExpenseID,
		UserID:      doc.UserID,
		Description: doc.Description,
		Amount:      amount,
		Date:        date,
		Category:    doc.Category,
	}, nil
}
