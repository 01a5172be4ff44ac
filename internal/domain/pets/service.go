package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("pet not found")
	ErrAlreadyAdopted = errors.New("pet already adopted")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name      string
	Specie    string
	BirthDate *time.Time
	Image     string
}

// Create valida los tres campos obligatorios (name, specie, birthDate).
// Toda mascota nace sin adoptar.
func (s *Service) Create(ctx context.Context, in CreateInput) (Pet, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Specie) == "" {
		return Pet{}, ErrInvalidInput
	}
	if in.BirthDate == nil {
		return Pet{}, ErrInvalidInput
	}

	p := Pet{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Specie:    strings.TrimSpace(in.Specie),
		BirthDate: *in.BirthDate,
		Adopted:   false,
		Image:     strings.TrimSpace(in.Image),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Pet, error) {
	return s.repo.List(ctx)
}

// UpdateInput usa punteros para update parcial: nil = no tocar.
// El flag adopted y el owner no se tocan por acá: solo los mueve la adopción.
type UpdateInput struct {
	Name      *string
	Specie    *string
	BirthDate *time.Time
	Image     *string
}

// Update mergea campos sobre la mascota existente. Id inexistente devuelve
// ErrNotFound: misma política que el módulo de usuarios.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Pet, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Specie != nil {
		if strings.TrimSpace(*in.Specie) == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Specie = strings.TrimSpace(*in.Specie)
	}
	if in.BirthDate != nil {
		p.BirthDate = *in.BirthDate
	}
	if in.Image != nil {
		p.Image = strings.TrimSpace(*in.Image)
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
