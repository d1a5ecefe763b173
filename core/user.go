package core

// User represents a registered account. The email doubles as the login
// identity and the token subject. Only the bcrypt hash of the password is
// ever stored.
type User struct {
	ID           int64  // Surrogate ID minted by the sequence allocator
	FirstName    string
	LastName     string
	Email        string // Unique login identity
	PasswordHash string
}
