package tokenizer

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SiddeshHulagur/Expense-Tracker/core"
	"github.com/SiddeshHulagur/Expense-Tracker/ports"
)

// DefaultSessionTTL is how long an issued session token stays valid.
// Expiry is carried in the exp claim as seconds since epoch and compared in
// the same unit on validation.
const DefaultSessionTTL = 24 * time.Hour

// JWTTokenizer implements the Tokenizer interface with HMAC-SHA256 over a
// key resolved once at construction. The key is never mutated afterwards, so
// the tokenizer is safe for unsynchronized concurrent use.
type JWTTokenizer struct {
	key []byte
	ttl time.Duration
}

var _ ports.Tokenizer = (*JWTTokenizer)(nil)

// NewJWTTokenizer resolves the secret into a signing key and returns a
// tokenizer issuing tokens valid for DefaultSessionTTL.
func NewJWTTokenizer(secret string, log *zap.Logger) (*JWTTokenizer, error) {
	return NewJWTTokenizerWithTTL(secret, DefaultSessionTTL, log)
}

// NewJWTTokenizerWithTTL is NewJWTTokenizer with an explicit validity window.
func NewJWTTokenizerWithTTL(secret string, ttl time.Duration, log *zap.Logger) (*JWTTokenizer, error) {
	key, err := ResolveSigningKey(secret, log)
	if err != nil {
		return nil, err
	}
	return &JWTTokenizer{key: key, ttl: ttl}, nil
}

// Issue creates a signed token for the subject. Extra claims are merged into
// the payload first, so they can never override the registered claims.
func (j *JWTTokenizer) Issue(subject string, extra map[string]any) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{}
	for k, v := range extra {
		claims[k] = v
	}
	claims["sub"] = subject
	claims["iat"] = jwt.NewNumericDate(now)
	claims["exp"] = jwt.NewNumericDate(now.Add(j.ttl))
	claims["jti"] = uuid.New().String()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(j.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Validate reports whether the token verifies, carries the expected subject
// and has not expired. It fails closed: every parse or cryptographic failure
// is false, never a propagated error.
func (j *JWTTokenizer) Validate(tokenStr, expectedSubject string) bool {
	claims, err := j.parse(tokenStr)
	if err != nil {
		return false
	}

	sub, err := claims.GetSubject()
	if err != nil || sub != expectedSubject {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return time.Now().Before(exp.Time)
}

// Subject extracts the subject claim. Parsing always verifies the signature,
// so a tampered token yields core.ErrTokenMalformed rather than a forged
// subject.
func (j *JWTTokenizer) Subject(tokenStr string) (string, error) {
	claims, err := j.parse(tokenStr)
	if err != nil {
		return "", err
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", core.ErrTokenMalformed
	}

	return sub, nil
}

// parse verifies the signature and returns the claim set. Expired tokens are
// distinguished from malformed ones so callers can report them separately.
func (j *JWTTokenizer) parse(tokenStr string) (jwt.MapClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, jwt.MapClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return j.key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, core.ErrTokenExpired
		}
		return nil, core.ErrTokenMalformed
	}
	if !token.Valid {
		return nil, core.ErrTokenMalformed
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, core.ErrTokenMalformed
	}

	return claims, nil
}
