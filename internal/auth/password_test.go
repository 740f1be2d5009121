package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	passwords := []string{"correct horse battery", "pässwörd-ünïcode", strings.Repeat("x", 64)}
	for _, password := range passwords {
		hash, err := HashPassword(password)
		require.NoError(t, err)
		assert.NotEqual(t, password, hash)

		cost, err := bcrypt.Cost([]byte(hash))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, cost, 12)

		ok, err := VerifyPassword(password, hash)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestVerifyPasswordMismatch(t *testing.T) {
	hash, err := HashPassword("first-password")
	require.NoError(t, err)

	ok, err := VerifyPassword("second-password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashIsSalted(t *testing.T) {
	first, err := HashPassword("same-password")
	require.NoError(t, err)
	second, err := HashPassword("same-password")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	ok, err := VerifyPassword("anything", "not-a-bcrypt-hash")
	assert.False(t, ok)
	assert.Error(t, err)
}
