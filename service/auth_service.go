package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/SiddeshHulagur/Expense-Tracker/core"
	"github.com/SiddeshHulagur/Expense-Tracker/ports"
)

// UserSequence is the counter name for user surrogate IDs.
const UserSequence = "user_sequence"

// AuthService handles registration and login.
type AuthService struct {
	users     ports.UserStore
	sequences ports.SequenceAllocator
	hasher    ports.PasswordHasher
	tokenizer ports.Tokenizer
	events    ports.EventPublisher
	log       *zap.Logger
}

// NewAuthService creates a new authentication service. The event publisher
// may be nil, in which case no events are emitted.
func NewAuthService(
	users ports.UserStore,
	sequences ports.SequenceAllocator,
	hasher ports.PasswordHasher,
	tokenizer ports.Tokenizer,
	events ports.EventPublisher,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		sequences: sequences,
		hasher:    hasher,
		tokenizer: tokenizer,
		events:    events,
		log:       log,
	}
}

// Register creates an account and returns a session token for it. The
// password is hashed before anything is persisted and the plaintext is never
// logged.
func (s *AuthService) Register(ctx context.Context, firstName, lastName, email, password string) (string, error) {
	// Normalize the identity once here so the stored record, the email
	// index and the token subject always agree.
	email = normalizeEmail(email)

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := s.sequences.Next(ctx, UserSequence)
	if err != nil {
		return "", err
	}

	user := &core.User{
		ID:           id,
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return "", err
	}

	token, err := s.tokenizer.Issue(user.Email, nil)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	if s.events != nil {
		if err := s.events.PublishUserRegistered(ctx, user.ID, user.Email); err != nil {
			s.log.Warn("failed to publish registration event", zap.Error(err))
		}
	}

	return token, nil
}

// Login verifies the credentials and mints a fresh session token. Unknown
// email and wrong password both come back as core.ErrInvalidCredentials so
// the response cannot be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.UserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			return "", core.ErrInvalidCredentials
		}
		return "", err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", core.ErrInvalidCredentials
	}

	token, err := s.tokenizer.Issue(user.Email, nil)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	if s.events != nil {
		if err := s.events.PublishLogin(ctx, user.ID, user.Email); err != nil {
			s.log.Warn("failed to publish login event", zap.Error(err))
		}
	}

	return token, nil
}

// Authenticate resolves a bearer token to the account it was issued for.
// Used by the HTTP middleware on every protected request.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*core.User, error) {
	subject, err := s.tokenizer.Subject(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.UserByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			return nil, core.ErrTokenMalformed
		}
		return nil, err
	}

	if !s.tokenizer.Validate(token, user.Email) {
		return nil, core.ErrTokenExpired
	}

	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
