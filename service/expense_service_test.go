package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SiddeshHulagur/Expense-Tracker/adapters/sequence"
	"github.com/SiddeshHulagur/Expense-Tracker/adapters/store"
	"github.com/SiddeshHulagur/Expense-Tracker/core"
)

func newExpenseService() *ExpenseService {
	return NewExpenseService(store.NewMemoryStore(), sequence.NewMemoryAllocator(), nil, zap.NewNop())
}

func draftExpense() *core.Expense {
	return &core.Expense{
		Description: "groceries",
		Amount:      decimal.RequireFromString("42.50"),
		Date:        time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
		Category:    "food",
	}
}

func TestExpenseService_CreateAssignsSequentialIDs(t *testing.T) {
	svc := newExpenseService()
	ctx := context.Background()

	first, err := svc.Create(ctx, draftExpense(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(10), first.UserID)

	second, err := svc.Create(ctx, draftExpense(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)
}

func TestExpenseService_ListAndGet(t *testing.T) {
	svc := newExpenseService()
	ctx := context.Background()

	created, err := svc.Create(ctx, draftExpense(), 10)
	require.NoError(t, err)
	_, err = svc.Create(ctx, draftExpense(), 20)
	require.NoError(t, err)

	mine, err := svc.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, mine, 1, "listing must only return the caller's expenses")
	assert.Equal(t, created.ID, mine[0].ID)

	got, err := svc.Get(ctx, created.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, "groceries", got.Description)

	_, err = svc.Get(ctx, created.ID, 20)
	assert.ErrorIs(t, err, core.ErrExpenseNotFound)
}

func TestExpenseService_Update(t *testing.T) {
	svc := newExpenseService()
	ctx := context.Background()

	created, err := svc.Create(ctx, draftExpense(), 10)
	require.NoError(t, err)

	details := &core.Expense{
		Description: "restaurant",
		Amount:      decimal.RequireFromString("99.99"),
		Date:        time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		Category:    "dining",
	}

	updated, err := svc.Update(ctx, created.ID, details, 10)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID, "the ID and owner never change on update")
	assert.Equal(t, int64(10), updated.UserID)
	assert.Equal(t, "restaurant", updated.Description)
	assert.True(t, updated.Amount.Equal(decimal.RequireFromString("99.99")))

	_, err = svc.Update(ctx, created.ID, details, 20)
	assert.ErrorIs(t, err, core.ErrExpenseNotFound)
}

func TestExpenseService_Delete(t *testing.T) {
	svc := newExpenseService()
	ctx := context.Background()

	created, err := svc.Create(ctx, draftExpense(), 10)
	require.NoError(t, err)

	// Deleting someone else's expense is a no-op for them and leaves the
	// record in place.
	require.NoError(t, svc.Delete(ctx, created.ID, 20))
	_, err = svc.Get(ctx, created.ID, 10)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID, 10))
	_, err = svc.Get(ctx, created.ID, 10)
	assert.ErrorIs(t, err, core.ErrExpenseNotFound)

	// Deleting an already-deleted expense is fine.
	assert.NoError(t, svc.Delete(ctx, created.ID, 10))
}
