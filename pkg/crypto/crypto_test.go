package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Passw0rd!")
	require.NoError(t, err)
	require.NotEqual(t, "Passw0rd!", hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	require.Equal(t, passwordCost, cost)

	require.True(t, VerifyPassword(hash, "Passw0rd!"))
	require.False(t, VerifyPassword(hash, "passw0rd!"))
}

func TestVerifyPasswordToleratesGarbage(t *testing.T) {
	require.False(t, VerifyPassword("", "anything"))
	require.False(t, VerifyPassword("not-a-bcrypt-hash", "anything"))
}

func TestGenerateToken(t *testing.T) {
	first, err := GenerateToken(32)
	require.NoError(t, err)
	second, err := GenerateToken(32)
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.False(t, strings.ContainsAny(first, "+/="))
}

func TestGenerateHexSecret(t *testing.T) {
	secret, err := GenerateHexSecret(32)
	require.NoError(t, err)
	require.Len(t, secret, 64)
}
