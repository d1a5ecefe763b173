package hasher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcrypt_HashAndVerify(t *testing.T) {
	h := NewBcrypt()

	hash, err := h.Hash("pw123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "pw123", hash)

	assert.True(t, h.Verify("pw123", hash))
	assert.False(t, h.Verify("wrong", hash))
	assert.False(t, h.Verify("pw123", "not-a-bcrypt-hash"))
}

func TestBcrypt_HashesAreSalted(t *testing.T) {
	h := NewBcrypt()

	first, err := h.Hash("pw123")
	require.NoError(t, err)
	second, err := h.Hash("pw123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("pw123", first))
	assert.True(t, h.Verify("pw123", second))
}
