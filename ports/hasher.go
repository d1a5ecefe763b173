package ports

// PasswordHasher is the one-way password hashing primitive. Plaintext never
// leaves the register/login path.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}
