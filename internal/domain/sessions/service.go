package sessions

import (
	"context"
	"errors"
	"strings"
	"time"

	"adoptme/internal/auth"
	"adoptme/internal/domain/users"
	"adoptme/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrIncompleteValues  = errors.New("incomplete values")
	ErrUserExists        = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrIncorrectPassword = errors.New("incorrect password")
)

type Service struct {
	users  users.Repository
	tokens *auth.TokenIssuer
	log    logger.Logger
	now    func() time.Time
}

func NewService(usersRepo users.Repository, tokens *auth.TokenIssuer, log logger.Logger) *Service {
	return &Service{
		users:  usersRepo,
		tokens: tokens,
		log:    log,
		now:    time.Now,
	}
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Register crea la cuenta: password hasheada, rol user, documentos vacíos
// y last_connection seteada. Devuelve el id del usuario creado.
func (s *Service) Register(ctx context.Context, in RegisterInput) (string, error) {
	if strings.TrimSpace(in.FirstName) == "" ||
		strings.TrimSpace(in.LastName) == "" ||
		strings.TrimSpace(in.Email) == "" ||
		in.Password == "" {
		return "", ErrIncompleteValues
	}

	email := users.NormalizeEmail(in.Email)

	// Chequeo previo; el repo además rechaza el email duplicado al escribir.
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return "", ErrUserExists
	} else if !errors.Is(err, users.ErrNotFound) {
		return "", err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return "", err
	}

	u := users.User{
		ID:             uuid.NewString(),
		FirstName:      strings.TrimSpace(in.FirstName),
		LastName:       strings.TrimSpace(in.LastName),
		Email:          email,
		PasswordHash:   hash,
		Role:           users.RoleUser,
		LastConnection: s.now(),
		Documents:      []users.Document{},
		Pets:           []string{},
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			return "", ErrUserExists
		}
		return "", err
	}
	return u.ID, nil
}

// Login valida credenciales, actualiza last_connection y emite el token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return "", ErrIncompleteValues
	}

	u, err := s.users.GetByEmail(ctx, users.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	ok, err := auth.VerifyPassword(password, u.PasswordHash)
	if err != nil || !ok {
		return "", ErrIncorrectPassword
	}

	if err := s.users.UpdateLastConnection(ctx, u.ID, s.now()); err != nil {
		// La sesión es válida igual; el timestamp se pierde y queda en el log.
		s.log.Warn("login: failed to update last_connection", map[string]any{
			"user_id": u.ID,
			"error":   err.Error(),
		})
	}

	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	return s.tokens.Mint(u.ID, u.Email, string(u.Role), name)
}

// UnprotectedLogin valida credenciales y emite el token, sin tocar
// last_connection. Flujo de debug heredado, no el login real.
func (s *Service) UnprotectedLogin(ctx context.Context, email, password string) (string, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return "", ErrIncompleteValues
	}

	u, err := s.users.GetByEmail(ctx, users.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	ok, err := auth.VerifyPassword(password, u.PasswordHash)
	if err != nil || !ok {
		return "", ErrIncorrectPassword
	}

	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	return s.tokens.Mint(u.ID, u.Email, string(u.Role), name)
}

// UnprotectedCurrent resuelve el registro completo del usuario del token,
// no solo los claims.
func (s *Service) UnprotectedCurrent(ctx context.Context, token string) (users.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return users.User{}, err
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return users.User{}, ErrUserNotFound
		}
		return users.User{}, err
	}
	return u, nil
}

// Current resuelve la identidad del caller desde el token de la cookie.
func (s *Service) Current(token string) (auth.Claims, error) {
	return s.tokens.Verify(token)
}

// Logout actualiza last_connection best-effort. Nunca devuelve error:
// desde el punto de vista del cliente el logout siempre tiene éxito.
func (s *Service) Logout(ctx context.Context, token string) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return
	}

	if err := s.users.UpdateLastConnection(ctx, claims.UserID, s.now()); err != nil {
		s.log.Warn("logout: failed to update last_connection", map[string]any{
			"user_id": claims.UserID,
			"error":   err.Error(),
		})
	}
}
