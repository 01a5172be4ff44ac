package memory_test

import (
	"context"
	"testing"
	"time"

	mem "adoptme/internal/adapters/storage/memory"
	"adoptme/internal/domain/users"

	"github.com/stretchr/testify/require"
)

// UpdateLastConnection toca solo ese campo: un AppendPet que llegó después
// de leer el usuario no se pierde.
func TestUserUpdateLastConnection_KeepsPets(t *testing.T) {
	ctx := context.Background()
	repo := mem.NewUserRepo()

	require.NoError(t, repo.Create(ctx, users.User{
		ID:        "u1",
		Email:     "u1@test.com",
		Pets:      []string{},
		Documents: []users.Document{},
	}))

	require.NoError(t, repo.AppendPet(ctx, "u1", "p1"))

	at := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpdateLastConnection(ctx, "u1", at))

	got, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, []string{"p1"}, got.Pets)
	require.True(t, got.LastConnection.Equal(at))
}

func TestUserUpdateLastConnection_NotFound(t *testing.T) {
	repo := mem.NewUserRepo()
	err := repo.UpdateLastConnection(context.Background(), "nope", time.Now())
	require.ErrorIs(t, err, users.ErrNotFound)
}
