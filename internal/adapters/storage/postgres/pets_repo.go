package postgres

import (
	"context"
	"database/sql"
	"errors"

	"adoptme/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (id, name, specie, birth_date, adopted, owner_id, image)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		p.ID,
		p.Name,
		p.Specie,
		p.BirthDate,
		p.Adopted,
		toNullString(p.Owner),
		p.Image,
	)
	return err
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, specie, birth_date, adopted, owner_id, image
		FROM pets
		WHERE id = $1
	`, id)

	var p pets.Pet
	var owner sql.NullString
	if err := row.Scan(&p.ID, &p.Name, &p.Specie, &p.BirthDate, &p.Adopted, &owner, &p.Image); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	p.Owner = owner.String
	return p, nil
}

func (r *PetsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, specie, birth_date, adopted, owner_id, image
		FROM pets
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		var p pets.Pet
		var owner sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &p.Specie, &p.BirthDate, &p.Adopted, &owner, &p.Image); err != nil {
			return nil, err
		}
		p.Owner = owner.String
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET name = $2, specie = $3, birth_date = $4, image = $5
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.Specie,
		p.BirthDate,
		p.Image,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

// Delete es idempotente: borrar un id inexistente no es error.
func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	return err
}

// ClaimForAdoption es el update condicional atómico que sostiene el
// contrato de concurrencia: "adoptame si todavía nadie lo hizo".
// RowsAffected == 0 significa que no existe o que alguien ganó antes.
func (r *PetsRepo) ClaimForAdoption(ctx context.Context, petID, ownerID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET adopted = TRUE, owner_id = $2
		WHERE id = $1 AND adopted = FALSE
	`, petID, ownerID)
	if err != nil {
		return err
	}

	n, _ := res.RowsAffected()
	if n == 1 {
		return nil
	}

	// Distinguir "no existe" de "ya adoptada" para el mapeo de errores.
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM pets WHERE id = $1)`, petID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return pets.ErrNotFound
	}
	return pets.ErrAlreadyAdopted
}

func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
