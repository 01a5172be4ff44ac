// Package mocks genera usuarios y mascotas de prueba, y opcionalmente
// los inserta en el store.
package mocks

import (
	"time"

	"adoptme/internal/auth"
	"adoptme/internal/domain/pets"
	"adoptme/internal/domain/users"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

// MockPassword es la contraseña de todos los usuarios generados.
const MockPassword = "coder123"

var species = []string{"dog", "cat", "rabbit", "hamster", "bird"}

type Generator struct {
	faker *gofakeit.Faker
	now   func() time.Time

	// Todos los mocks comparten MockPassword, así que el hash se calcula
	// una sola vez (argon2 por usuario haría esto inusablemente lento).
	passwordHash string
}

func NewGenerator() (*Generator, error) {
	hash, err := auth.HashPassword(MockPassword)
	if err != nil {
		return nil, err
	}
	return &Generator{
		faker:        gofakeit.New(0),
		now:          time.Now,
		passwordHash: hash,
	}, nil
}

func (g *Generator) Users(n int) []users.User {
	out := make([]users.User, 0, n)
	for range n {
		role := users.RoleUser
		if g.faker.Bool() {
			role = users.RoleAdmin
		}

		id := uuid.NewString()
		out = append(out, users.User{
			ID:        id,
			FirstName: g.faker.FirstName(),
			LastName:  g.faker.LastName(),
			// prefijo con el id para garantizar unicidad al insertar en lote
			Email:          users.NormalizeEmail(id[:8] + "." + g.faker.Email()),
			PasswordHash:   g.passwordHash,
			Role:           role,
			LastConnection: g.now(),
			Documents:      []users.Document{},
			Pets:           []string{},
		})
	}
	return out
}

func (g *Generator) Pets(n int) []pets.Pet {
	out := make([]pets.Pet, 0, n)
	for range n {
		out = append(out, pets.Pet{
			ID:        uuid.NewString(),
			Name:      g.faker.PetName(),
			Specie:    g.faker.RandomString(species),
			BirthDate: g.faker.DateRange(g.now().AddDate(-15, 0, 0), g.now()),
			Adopted:   false,
		})
	}
	return out
}
