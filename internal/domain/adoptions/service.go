package adoptions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"adoptme/internal/domain/pets"
	"adoptme/internal/domain/users"
	"adoptme/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("adoption not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrPetNotFound    = errors.New("pet not found")
	ErrAlreadyAdopted = errors.New("pet already adopted")
)

type Service struct {
	repo  Repository
	users users.Repository
	pets  pets.Repository
	log   logger.Logger
	now   func() time.Time
}

func NewService(repo Repository, usersRepo users.Repository, petsRepo pets.Repository, log logger.Logger) *Service {
	return &Service{
		repo:  repo,
		users: usersRepo,
		pets:  petsRepo,
		log:   log,
		now:   time.Now,
	}
}

func (s *Service) List(ctx context.Context) ([]Adoption, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (Adoption, error) {
	return s.repo.GetByID(ctx, id)
}

// Adopt ejecuta la transacción de adopción:
//  1. el usuario debe existir
//  2. la mascota debe existir
//  3. claim condicional atómico sobre la mascota (adopted=false -> true+owner);
//     solo un request concurrente puede ganarlo
//  4. append del pet en la lista del usuario y alta del registro de adopción
//
// Los pasos 4 se intentan incondicionalmente después de que el claim ganó.
// Si alguno falla, la mascota queda marcada como adoptada igual: no hay
// transacción compensatoria, la inconsistencia se loguea como recuperable.
func (s *Service) Adopt(ctx context.Context, userID, petID string) (Adoption, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return Adoption{}, ErrUserNotFound
		}
		return Adoption{}, err
	}

	if _, err := s.pets.GetByID(ctx, petID); err != nil {
		if errors.Is(err, pets.ErrNotFound) {
			return Adoption{}, ErrPetNotFound
		}
		return Adoption{}, err
	}

	// Punto de no retorno: si el claim gana, la mascota ya es del usuario.
	if err := s.pets.ClaimForAdoption(ctx, petID, u.ID); err != nil {
		switch {
		case errors.Is(err, pets.ErrAlreadyAdopted):
			return Adoption{}, ErrAlreadyAdopted
		case errors.Is(err, pets.ErrNotFound):
			return Adoption{}, ErrPetNotFound
		default:
			return Adoption{}, err
		}
	}

	a := Adoption{
		ID:        uuid.NewString(),
		Owner:     u.ID,
		Pet:       petID,
		CreatedAt: s.now(),
	}

	var failed []error

	if err := s.users.AppendPet(ctx, u.ID, petID); err != nil {
		s.log.Error("adoption left inconsistent: pet claimed but user list not updated", map[string]any{
			"user_id": u.ID,
			"pet_id":  petID,
			"error":   err.Error(),
		})
		failed = append(failed, fmt.Errorf("append pet to user: %w", err))
	}

	if err := s.repo.Create(ctx, a); err != nil {
		s.log.Error("adoption left inconsistent: pet claimed but adoption record missing", map[string]any{
			"user_id": u.ID,
			"pet_id":  petID,
			"error":   err.Error(),
		})
		failed = append(failed, fmt.Errorf("create adoption record: %w", err))
	}

	if len(failed) > 0 {
		return Adoption{}, errors.Join(failed...)
	}
	return a, nil
}
