package ports

import "context"

// EventPublisher notifies other systems about account and expense activity.
// Publishing is best-effort: a failed publish never fails the request.
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, userID int64, email string) error
	PublishLogin(ctx context.Context, userID int64, email string) error
	PublishExpenseCreated(ctx context.Context, expenseID, userID int64) error
}
