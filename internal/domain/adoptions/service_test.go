package adoptions_test

import (
	"context"
	"sync"
	"testing"
	"time"

	mem "adoptme/internal/adapters/storage/memory"
	"adoptme/internal/domain/adoptions"
	"adoptme/internal/domain/pets"
	"adoptme/internal/domain/users"
	"adoptme/internal/platform/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc       *adoptions.Service
	users     users.Repository
	pets      pets.Repository
	adoptions adoptions.Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	userRepo := mem.NewUserRepo()
	petRepo := mem.NewPetRepo()
	adoptionRepo := mem.NewAdoptionRepo()

	return &fixture{
		svc:       adoptions.NewService(adoptionRepo, userRepo, petRepo, logger.Nop()),
		users:     userRepo,
		pets:      petRepo,
		adoptions: adoptionRepo,
	}
}

func (f *fixture) seedUser(t *testing.T) users.User {
	t.Helper()

	u := users.User{
		ID:             uuid.NewString(),
		FirstName:      "Test",
		LastName:       "Adopter",
		Email:          uuid.NewString()[:8] + "@test.com",
		PasswordHash:   "$argon2id$...",
		Role:           users.RoleUser,
		LastConnection: time.Now(),
	}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) seedPet(t *testing.T) pets.Pet {
	t.Helper()

	p := pets.Pet{
		ID:        uuid.NewString(),
		Name:      "Rex",
		Specie:    "dog",
		BirthDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, f.pets.Create(context.Background(), p))
	return p
}

func TestAdopt_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u := f.seedUser(t)
	p := f.seedPet(t)

	a, err := f.svc.Adopt(ctx, u.ID, p.ID)
	require.NoError(t, err)
	require.Equal(t, u.ID, a.Owner)
	require.Equal(t, p.ID, a.Pet)
	require.False(t, a.CreatedAt.IsZero())

	// El flag y el owner de la mascota quedaron seteados
	gotPet, err := f.pets.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, gotPet.Adopted)
	require.Equal(t, u.ID, gotPet.Owner)

	// La lista del usuario contiene la mascota
	gotUser, err := f.users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Contains(t, gotUser.Pets, p.ID)

	// Existe exactamente un registro de adopción para esa mascota
	all, err := f.adoptions.List(ctx)
	require.NoError(t, err)
	count := 0
	for _, rec := range all {
		if rec.Pet == p.ID {
			count++
		}
	}
	require.Equal(t, 1, count)
}

func TestAdopt_UserNotFound(t *testing.T) {
	f := newFixture(t)
	p := f.seedPet(t)

	_, err := f.svc.Adopt(context.Background(), uuid.NewString(), p.ID)
	require.ErrorIs(t, err, adoptions.ErrUserNotFound)

	// La mascota no quedó tocada
	got, err := f.pets.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	require.False(t, got.Adopted)
}

func TestAdopt_PetNotFound(t *testing.T) {
	f := newFixture(t)
	u := f.seedUser(t)

	_, err := f.svc.Adopt(context.Background(), u.ID, uuid.NewString())
	require.ErrorIs(t, err, adoptions.ErrPetNotFound)
}

func TestAdopt_MalformedIDsBehaveAsNotFound(t *testing.T) {
	f := newFixture(t)
	u := f.seedUser(t)
	p := f.seedPet(t)

	_, err := f.svc.Adopt(context.Background(), "invalidId", p.ID)
	require.ErrorIs(t, err, adoptions.ErrUserNotFound)

	_, err = f.svc.Adopt(context.Background(), u.ID, "invalidId")
	require.ErrorIs(t, err, adoptions.ErrPetNotFound)
}

func TestAdopt_AlreadyAdopted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u1 := f.seedUser(t)
	u2 := f.seedUser(t)
	p := f.seedPet(t)

	_, err := f.svc.Adopt(ctx, u1.ID, p.ID)
	require.NoError(t, err)

	// Falla sin importar qué usuario lo intente
	_, err = f.svc.Adopt(ctx, u1.ID, p.ID)
	require.ErrorIs(t, err, adoptions.ErrAlreadyAdopted)
	_, err = f.svc.Adopt(ctx, u2.ID, p.ID)
	require.ErrorIs(t, err, adoptions.ErrAlreadyAdopted)

	// El owner sigue siendo el primero
	got, err := f.pets.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, u1.ID, got.Owner)
}

// Adopciones concurrentes sobre la misma mascota sin adoptar: a lo sumo
// una gana; el resto observa conflicto, nunca éxito parcial.
func TestAdopt_ConcurrentSingleWinner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := f.seedPet(t)

	const attempts = 16
	adopters := make([]users.User, attempts)
	for i := range adopters {
		adopters[i] = f.seedUser(t)
	}

	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := range attempts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Adopt(ctx, adopters[i].ID, p.ID)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		switch {
		case err == nil:
			winners++
		default:
			require.ErrorIs(t, err, adoptions.ErrAlreadyAdopted)
		}
	}
	require.Equal(t, 1, winners)

	// Exactamente un registro de adopción y un solo pet en la lista del ganador
	all, err := f.adoptions.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	winner, err := f.users.GetByID(ctx, all[0].Owner)
	require.NoError(t, err)
	require.Equal(t, []string{p.ID}, winner.Pets)
}
