package hasher

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/SiddeshHulagur/Expense-Tracker/ports"
)

// Bcrypt implements the PasswordHasher interface with bcrypt.
type Bcrypt struct {
	cost int
}

var _ ports.PasswordHasher = (*Bcrypt)(nil)

// NewBcrypt creates a hasher at the default cost.
func NewBcrypt() *Bcrypt {
	return &Bcrypt{cost: bcrypt.DefaultCost}
}

// Hash returns the bcrypt hash of the plaintext.
func (b *Bcrypt) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), b.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether the plaintext matches the stored hash.
func (b *Bcrypt) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
