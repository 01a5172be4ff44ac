package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword_PHCFormat(t *testing.T) {
	hash, err := HashPassword("secreta123")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))
	require.Len(t, strings.Split(hash, "$"), 6)
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	h1, err := HashPassword("misma")
	require.NoError(t, err)
	h2, err := HashPassword("misma")
	require.NoError(t, err)

	require.NotEqual(t, h1, h2)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correcta")
	require.NoError(t, err)

	ok, err := VerifyPassword("correcta", hash)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = VerifyPassword("incorrecta", hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyPassword_InvalidHash(t *testing.T) {
	_, err := VerifyPassword("x", "no-es-un-hash")
	require.ErrorIs(t, err, ErrInvalidHash)

	_, err = VerifyPassword("x", "$bcrypt$v=19$m=1,t=1,p=1$aaaa$bbbb")
	require.ErrorIs(t, err, ErrInvalidHash)
}
