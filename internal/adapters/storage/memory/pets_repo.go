package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"adoptme/internal/domain/pets"
)

type petRepo struct {
	mu   sync.RWMutex
	byID map[string]pets.Pet
}

func NewPetRepo() pets.Repository {
	return &petRepo{
		byID: make(map[string]pets.Pet),
	}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("pet already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *petRepo) List(ctx context.Context) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}

	// Orden estable por nombre (solo para consistencia en dev/tests)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})

	return out, nil
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.byID[p.ID]
	if !exists {
		return pets.ErrNotFound
	}

	// El estado de adopción lo escribe únicamente ClaimForAdoption; un
	// update con un snapshot viejo no puede revertirlo (mismo set de
	// columnas que el UPDATE de Postgres).
	p.Adopted = stored.Adopted
	p.Owner = stored.Owner

	r.byID[p.ID] = p
	return nil
}

// Delete es idempotente: borrar un id inexistente no es error.
func (r *petRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byID, id)
	return nil
}

// ClaimForAdoption hace el check-then-set bajo el write lock del repo:
// es el equivalente in-memory del update condicional de Postgres.
func (r *petRepo) ClaimForAdoption(ctx context.Context, petID, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, exists := r.byID[petID]
	if !exists {
		return pets.ErrNotFound
	}
	if p.Adopted {
		return pets.ErrAlreadyAdopted
	}

	p.Adopted = true
	p.Owner = ownerID
	r.byID[petID] = p
	return nil
}
