package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a single spending record owned by exactly one user. Amounts use
// decimal arithmetic to avoid floating-point error on money values.
type Expense struct {
	ID          int64 // Surrogate ID minted by the sequence allocator
	UserID      int64 // Owning user; every store query filters on it
	Description string
	Amount      decimal.Decimal
	Date        time.Time // Calendar date of the expense, time part ignored
	Category    string
}
