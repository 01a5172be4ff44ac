package sessions_test

import (
	"context"
	"strings"
	"testing"
	"time"

	mem "adoptme/internal/adapters/storage/memory"
	"adoptme/internal/auth"
	"adoptme/internal/domain/sessions"
	"adoptme/internal/domain/users"
	"adoptme/internal/platform/logger"

	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*sessions.Service, users.Repository) {
	t.Helper()

	repo := mem.NewUserRepo()
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	return sessions.NewService(repo, tokens, logger.Nop()), repo
}

func validInput() sessions.RegisterInput {
	return sessions.RegisterInput{
		FirstName: "A",
		LastName:  "B",
		Email:     "a@b.com",
		Password:  "x",
	}
}

func TestRegister_StoredInvariants(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	before := time.Now()
	id, err := svc.Register(ctx, validInput())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	u, err := repo.GetByID(ctx, id)
	require.NoError(t, err)

	// Password hasheada, nunca en claro
	require.NotEqual(t, "x", u.PasswordHash)
	require.True(t, strings.HasPrefix(u.PasswordHash, "$argon2id$"))

	require.Equal(t, users.RoleUser, u.Role)
	require.Empty(t, u.Documents)
	require.Empty(t, u.Pets)
	require.False(t, u.LastConnection.Before(before.Truncate(time.Second)))
}

func TestRegister_IncompleteValues(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	cases := []sessions.RegisterInput{
		{LastName: "B", Email: "a@b.com", Password: "x"},
		{FirstName: "A", Email: "a@b.com", Password: "x"},
		{FirstName: "A", LastName: "B", Password: "x"},
		{FirstName: "A", LastName: "B", Email: "a@b.com"},
	}
	for _, in := range cases {
		_, err := svc.Register(ctx, in)
		require.ErrorIs(t, err, sessions.ErrIncompleteValues)
	}
}

func TestRegister_DuplicateEmailCaseInsensitive(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	in := validInput()
	in.Email = "A@B.COM"
	_, err = svc.Register(ctx, in)
	require.ErrorIs(t, err, sessions.ErrUserExists)
}

func TestLogin_Success(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	id, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	before := time.Now()
	token, err := svc.Login(ctx, "a@b.com", "x")
	require.NoError(t, err)

	// Token firmado de 3 segmentos con la identidad correcta
	require.Len(t, strings.Split(token, "."), 3)
	claims, err := svc.Current(token)
	require.NoError(t, err)
	require.Equal(t, id, claims.UserID)
	require.Equal(t, "a@b.com", claims.Email)
	require.Equal(t, "user", claims.Role)

	// last_connection actualizada
	u, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.False(t, u.LastConnection.Before(before.Truncate(time.Second)))
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Login(context.Background(), "nadie@test.com", "x")
	require.ErrorIs(t, err, sessions.ErrUserNotFound)
}

func TestLogin_IncorrectPassword(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	_, err = svc.Login(ctx, "a@b.com", "otra")
	require.ErrorIs(t, err, sessions.ErrIncorrectPassword)
}

func TestCurrent_InvalidToken(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Current("no.es.token")
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestUnprotectedCurrent_FullUser(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	id, err := svc.Register(ctx, validInput())
	require.NoError(t, err)
	require.NoError(t, repo.AppendPet(ctx, id, "p1"))

	token, err := svc.UnprotectedLogin(ctx, "a@b.com", "x")
	require.NoError(t, err)

	// Devuelve el registro completo, no solo los claims del token
	u, err := svc.UnprotectedCurrent(ctx, token)
	require.NoError(t, err)
	require.Equal(t, id, u.ID)
	require.Equal(t, []string{"p1"}, u.Pets)
}

func TestLogout_BestEffort(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	id, err := svc.Register(ctx, validInput())
	require.NoError(t, err)
	token, err := svc.Login(ctx, "a@b.com", "x")
	require.NoError(t, err)

	before := time.Now()
	svc.Logout(ctx, token)

	u, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.False(t, u.LastConnection.Before(before.Truncate(time.Second)))

	// Logout con token basura no hace nada y no panickea
	svc.Logout(ctx, "garbage")
}
