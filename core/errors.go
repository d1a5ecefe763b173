package core

import "errors"

var (
	// ErrSecretNotConfigured is returned when the JWT signing secret is
	// missing or blank. Fatal at startup, never defaulted silently.
	ErrSecretNotConfigured = errors.New("jwt signing secret is not configured")

	// ErrTokenMalformed is returned when a token cannot be parsed or its
	// signature does not verify.
	ErrTokenMalformed = errors.New("token is malformed or has an invalid signature")

	// ErrTokenExpired is returned when a structurally valid token is past
	// its expiry.
	ErrTokenExpired = errors.New("token has expired")

	// ErrInvalidCredentials is returned on login failure. It deliberately
	// does not reveal whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken is returned when registering an email that already
	// has an account.
	ErrEmailTaken = errors.New("email is already registered")

	// ErrUserNotFound is returned when a user lookup matches nothing.
	ErrUserNotFound = errors.New("user not found")

	// ErrExpenseNotFound is returned when an expense does not exist or is
	// not owned by the requesting user.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrSequenceUnavailable is returned when the counter store fails to
	// produce a value. Allocation is never retried internally and a zero
	// value is never handed out.
	ErrSequenceUnavailable = errors.New("sequence allocation failed")

	// ErrStoreUnavailable is returned when the backing store cannot be
	// reached.
	ErrStoreUnavailable = errors.New("store operation failed")
)
