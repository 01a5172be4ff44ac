package memory_test

import (
	"context"
	"testing"

	mem "adoptme/internal/adapters/storage/memory"
	"adoptme/internal/domain/pets"

	"github.com/stretchr/testify/require"
)

// Un Update con un snapshot leído antes del claim no puede desadoptar
// la mascota.
func TestPetUpdate_PreservesAdoptionState(t *testing.T) {
	ctx := context.Background()
	repo := mem.NewPetRepo()

	require.NoError(t, repo.Create(ctx, pets.Pet{ID: "p1", Name: "Toby", Specie: "dog"}))

	snapshot, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)

	require.NoError(t, repo.ClaimForAdoption(ctx, "p1", "u1"))

	snapshot.Name = "Tobias"
	require.NoError(t, repo.Update(ctx, snapshot))

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "Tobias", got.Name)
	require.True(t, got.Adopted)
	require.Equal(t, "u1", got.Owner)
}

func TestPetUpdate_NotFound(t *testing.T) {
	repo := mem.NewPetRepo()
	err := repo.Update(context.Background(), pets.Pet{ID: "nope"})
	require.ErrorIs(t, err, pets.ErrNotFound)
}
