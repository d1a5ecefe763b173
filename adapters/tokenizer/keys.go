package tokenizer

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"

	"go.uber.org/zap"

	"github.com/SiddeshHulagur/Expense-Tracker/core"
)

// minKeyBytes is the minimum HMAC-SHA256 key size for a full security
// margin: 256 bits.
const minKeyBytes = 32

// ResolveSigningKey turns the configured secret into HMAC key material.
// A base64 secret decoding to at least 256 bits is used verbatim; anything
// else (a human-chosen passphrase, or a base64 value that is too short) is
// run through SHA-256 so the key always meets the minimum strength. The
// derivation path logs a warning so a weak configuration stays visible
// without failing the request.
func ResolveSigningKey(secret string, log *zap.Logger) ([]byte, error) {
	trimmed := strings.TrimSpace(secret)
	if trimmed == "" {
		return nil, core.ErrSecretNotConfigured
	}

	decoded, err := base64.StdEncoding.DecodeString(trimmed)
	if err != nil {
		log.Warn("jwt secret is not base64 encoded, deriving a secure key from the raw value")
		return deriveKey(secret), nil
	}
	if len(decoded) < minKeyBytes {
		log.Warn("jwt secret is shorter than 256 bits, deriving a secure key from the raw value",
			zap.Int("decoded_bytes", len(decoded)))
		return deriveKey(secret), nil
	}

	return decoded, nil
}

func deriveKey(secret string) []byte {
	sum := sha256.Sum256([]byte(secret))
	return sum[:]
}
