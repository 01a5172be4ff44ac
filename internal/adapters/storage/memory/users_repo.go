package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"adoptme/internal/domain/users"
)

type userRepo struct {
	mu   sync.RWMutex
	byID map[string]users.User
}

func NewUserRepo() users.Repository {
	return &userRepo{
		byID: make(map[string]users.User),
	}
}

func (r *userRepo) Create(ctx context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(u.ID) == "" {
		return errors.New("user id required")
	}
	if _, exists := r.byID[u.ID]; exists {
		return errors.New("user already exists")
	}
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return users.ErrEmailTaken
		}
	}

	r.byID[u.ID] = cloneUser(u)
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return users.User{}, users.ErrNotFound
}

func (r *userRepo) List(ctx context.Context) ([]users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]users.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, cloneUser(u))
	}

	// Orden estable por email (solo para consistencia en dev/tests)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Email < out[j].Email
	})

	return out, nil
}

func (r *userRepo) Update(ctx context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[u.ID]; !exists {
		return users.ErrNotFound
	}
	for id, existing := range r.byID {
		if id != u.ID && existing.Email == u.Email {
			return users.ErrEmailTaken
		}
	}

	r.byID[u.ID] = cloneUser(u)
	return nil
}

func (r *userRepo) UpdateLastConnection(ctx context.Context, id string, t time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, exists := r.byID[id]
	if !exists {
		return users.ErrNotFound
	}
	u.LastConnection = t
	r.byID[id] = u
	return nil
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return users.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *userRepo) AppendPet(ctx context.Context, userID, petID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, exists := r.byID[userID]
	if !exists {
		return users.ErrNotFound
	}
	u.Pets = append(u.Pets, petID)
	r.byID[userID] = u
	return nil
}

func (r *userRepo) AppendDocuments(ctx context.Context, userID string, docs []users.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, exists := r.byID[userID]
	if !exists {
		return users.ErrNotFound
	}
	u.Documents = append(u.Documents, docs...)
	r.byID[userID] = u
	return nil
}

// cloneUser copia los slices para que los callers no muten el estado del repo.
func cloneUser(u users.User) users.User {
	out := u
	out.Documents = append([]users.Document(nil), u.Documents...)
	out.Pets = append([]string(nil), u.Pets...)
	return out
}
