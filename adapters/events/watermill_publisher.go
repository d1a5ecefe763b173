package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/SiddeshHulagur/Expense-Tracker/ports"
)

const (
	// TopicUserRegistered carries new-account notifications.
	TopicUserRegistered = "expense-tracker.user.registered"

	// TopicLogin carries successful-login notifications.
	TopicLogin = "expense-tracker.auth.login"

	// TopicExpenseCreated carries new-expense notifications.
	TopicExpenseCreated = "expense-tracker.expense.created"
)

// UserEvent is the payload for account-related topics.
type UserEvent struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

// ExpenseEvent is the payload for expense-related topics.
type ExpenseEvent struct {
	ExpenseID int64 `json:"expense_id"`
	UserID    int64 `json:"user_id"`
}

// WatermillPublisher implements the EventPublisher interface using Watermill.
type WatermillPublisher struct {
	publisher message.Publisher
}

var _ ports.EventPublisher = (*WatermillPublisher)(nil)

// NewWatermillPublisher creates a new Watermill-backed publisher.
func NewWatermillPublisher(publisher message.Publisher) *WatermillPublisher {
	return &WatermillPublisher{publisher: publisher}
}

// PublishUserRegistered publishes a new-account event.
func (p *WatermillPublisher) PublishUserRegistered(ctx context.Context, userID int64, email string) error {
	return p.publish(TopicUserRegistered, UserEvent{UserID: userID, Email: email})
}

// PublishLogin publishes a successful-login event.
func (p *WatermillPublisher) PublishLogin(ctx context.Context, userID int64, email string) error {
	return p.publish(TopicLogin, UserEvent{UserID: userID, Email: email})
}

// PublishExpenseCreated publishes a new-expense event.
func (p *WatermillPublisher) PublishExpenseCreated(ctx context.Context, expenseID, userID int64) error {
	return p.publish(TopicExpenseCreated, ExpenseEvent{ExpenseID: expenseID, UserID: userID})
}

func (p *WatermillPublisher) publish(topic string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(uuid.New().String(), payload)

	if err := p.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}
