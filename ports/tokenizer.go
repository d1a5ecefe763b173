package ports

// Tokenizer issues and checks signed session tokens. Tokens are stateless:
// nothing is persisted and validity is purely signature plus expiry.
type Tokenizer interface {
	// Issue creates a signed token for the subject. Extra claims are
	// merged into the payload alongside the registered ones.
	Issue(subject string, extra map[string]any) (string, error)

	// Validate reports whether the token's signature verifies, its subject
	// equals expectedSubject and it has not expired. It fails closed: any
	// parse or cryptographic failure is false, never an error.
	Validate(token, expectedSubject string) bool

	// Subject extracts the subject after verifying the signature. A
	// tampered or garbage token yields core.ErrTokenMalformed rather than
	// a forged subject.
	Subject(token string) (string, error)
}
