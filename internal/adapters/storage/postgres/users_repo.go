package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"adoptme/internal/domain/users"

	"github.com/jackc/pgx/v5/pgconn"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

const userColumns = `id, first_name, last_name, email, password_hash, role, last_connection, documents, pets`

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	docs, petIDs, err := marshalUserLists(u)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		u.ID,
		u.FirstName,
		u.LastName,
		u.Email,
		u.PasswordHash,
		string(u.Role),
		u.LastConnection,
		docs,
		petIDs,
	)
	return mapUniqueViolation(err)
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, id)
	return scanUser(row)
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE email = $1
	`, email)
	return scanUser(row)
}

func (r *UsersRepo) List(ctx context.Context) ([]users.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+userColumns+` FROM users ORDER BY email ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]users.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UsersRepo) Update(ctx context.Context, u users.User) error {
	docs, petIDs, err := marshalUserLists(u)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET
			first_name = $2,
			last_name = $3,
			email = $4,
			password_hash = $5,
			role = $6,
			last_connection = $7,
			documents = $8,
			pets = $9
		WHERE id = $1
	`,
		u.ID,
		u.FirstName,
		u.LastName,
		u.Email,
		u.PasswordHash,
		string(u.Role),
		u.LastConnection,
		docs,
		petIDs,
	)
	if err != nil {
		return mapUniqueViolation(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return users.ErrNotFound
	}
	return nil
}

// UpdateLastConnection escribe solo esa columna: un login concurrente con
// una adopción en curso no puede pisar el array de pets.
func (r *UsersRepo) UpdateLastConnection(ctx context.Context, id string, t time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET last_connection = $2 WHERE id = $1
	`, id, t)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return users.ErrNotFound
	}
	return nil
}

func (r *UsersRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return users.ErrNotFound
	}
	return nil
}

// AppendPet agrega al final del array jsonb en una sola sentencia,
// sin read-modify-write desde el proceso.
func (r *UsersRepo) AppendPet(ctx context.Context, userID, petID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET pets = pets || to_jsonb($2::text) WHERE id = $1
	`, userID, petID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return users.ErrNotFound
	}
	return nil
}

func (r *UsersRepo) AppendDocuments(ctx context.Context, userID string, docs []users.Document) error {
	b, err := json.Marshal(docs)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET documents = documents || $2::jsonb WHERE id = $1
	`, userID, string(b))
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return users.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (users.User, error) {
	var u users.User
	var role string
	var docs, petIDs []byte

	if err := row.Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.PasswordHash,
		&role,
		&u.LastConnection,
		&docs,
		&petIDs,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, err
	}

	u.Role = users.Role(role)
	if err := json.Unmarshal(docs, &u.Documents); err != nil {
		return users.User{}, err
	}
	if err := json.Unmarshal(petIDs, &u.Pets); err != nil {
		return users.User{}, err
	}
	return u, nil
}

func marshalUserLists(u users.User) (docs string, petIDs string, err error) {
	if u.Documents == nil {
		u.Documents = []users.Document{}
	}
	if u.Pets == nil {
		u.Pets = []string{}
	}

	db, err := json.Marshal(u.Documents)
	if err != nil {
		return "", "", err
	}
	pb, err := json.Marshal(u.Pets)
	if err != nil {
		return "", "", err
	}
	return string(db), string(pb), nil
}

// mapUniqueViolation traduce el 23505 del índice único de email.
func mapUniqueViolation(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return users.ErrEmailTaken
	}
	return err
}
