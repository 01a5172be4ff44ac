package users

import (
	"context"
	"errors"
	"strings"

	"adoptme/internal/auth"
	"adoptme/internal/platform/logger"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrEmailTaken   = errors.New("email already registered")
)

type Service struct {
	repo Repository
	log  logger.Logger
}

func NewService(repo Repository, log logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateInput usa punteros para update parcial: nil = no tocar.
type UpdateInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
	Role      *string
}

// Update mergea solo los campos provistos. Email se normaliza a minúsculas
// y mantiene la unicidad; password se re-hashea antes de guardar.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}

	if in.FirstName != nil {
		u.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		u.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Email != nil {
		email := NormalizeEmail(*in.Email)
		if email == "" {
			return User{}, ErrInvalidInput
		}
		if email != u.Email {
			if _, err := s.repo.GetByEmail(ctx, email); err == nil {
				return User{}, ErrEmailTaken
			} else if !errors.Is(err, ErrNotFound) {
				return User{}, err
			}
		}
		u.Email = email
	}
	if in.Password != nil {
		if strings.TrimSpace(*in.Password) == "" {
			return User{}, ErrInvalidInput
		}
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return User{}, err
		}
		u.PasswordHash = hash
	}
	if in.Role != nil {
		switch Role(*in.Role) {
		case RoleUser, RoleAdmin:
			u.Role = Role(*in.Role)
		default:
			return User{}, ErrInvalidInput
		}
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Delete borra el documento del usuario. No cascadea sobre mascotas ni
// adopciones: las referencias colgantes quedan registradas en el log.
func (s *Service) Delete(ctx context.Context, id string) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if len(u.Pets) > 0 {
		s.log.Warn("user deleted with adopted pets still referencing it", map[string]any{
			"user_id": id,
			"pets":    len(u.Pets),
		})
	}
	return nil
}

// AppendDocuments agrega los descriptores al final de la lista del usuario.
func (s *Service) AppendDocuments(ctx context.Context, id string, docs []Document) error {
	if len(docs) == 0 {
		return ErrInvalidInput
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.AppendDocuments(ctx, id, docs)
}

// NormalizeEmail baja a minúsculas y recorta espacios; la unicidad de email
// es case-insensitive en todo el sistema.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
