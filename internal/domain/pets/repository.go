package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	List(ctx context.Context) ([]Pet, error)
	Update(ctx context.Context, p Pet) error
	Delete(ctx context.Context, id string) error

	// ClaimForAdoption marca la mascota como adoptada por ownerID solo si
	// todavía no lo está. Debe ser un update condicional atómico: dos
	// requests concurrentes sobre la misma mascota no pueden ganar ambos.
	// Devuelve ErrNotFound si no existe, ErrAlreadyAdopted si perdió la carrera.
	ClaimForAdoption(ctx context.Context, petID, ownerID string) error
}
