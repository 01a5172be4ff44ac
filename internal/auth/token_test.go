package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	ti := NewTokenIssuer("test-secret", time.Hour)

	tok, err := ti.Mint("user-1", "a@b.com", "user", "A B")
	require.NoError(t, err)

	// Token firmado de 3 segmentos
	require.Len(t, strings.Split(tok, "."), 3)

	claims, err := ti.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "a@b.com", claims.Email)
	require.Equal(t, "user", claims.Role)
}

func TestTokenIssuer_Expired(t *testing.T) {
	ti := NewTokenIssuer("test-secret", time.Hour)
	ti.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	tok, err := ti.Mint("user-1", "a@b.com", "user", "")
	require.NoError(t, err)

	_, err = NewTokenIssuer("test-secret", time.Hour).Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	tok, err := NewTokenIssuer("secreto-a", time.Hour).Mint("u", "e@x.com", "user", "")
	require.NoError(t, err)

	_, err = NewTokenIssuer("secreto-b", time.Hour).Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_Garbage(t *testing.T) {
	_, err := NewTokenIssuer("s", time.Hour).Verify("no.un.token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
