package users

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u User) error
	Delete(ctx context.Context, id string) error

	// UpdateLastConnection toca solo ese campo. Login/logout pasan por acá
	// para no pisar con un snapshot viejo un AppendPet concurrente.
	UpdateLastConnection(ctx context.Context, id string, t time.Time) error

	// AppendPet agrega petID al final de la lista del usuario.
	AppendPet(ctx context.Context, userID, petID string) error

	// AppendDocuments agrega descriptores a la lista existente (nunca reemplaza).
	AppendDocuments(ctx context.Context, userID string, docs []Document) error
}
