package users

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hosseinmostafavi2079/roydadpro/internal/models"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/database"
)

// Store is the user persistence used by the handler.
type Store interface {
	List(ctx context.Context) ([]*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id int64) error
}

// Repository handles user persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a users repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const selectColumns = `id, username, password_hash, first_name, last_name, email, phone,
	is_organizer, is_active, organization_id, date_joined`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Password, &u.FirstName, &u.LastName, &u.Email, &u.Phone,
		&u.IsOrganizer, &u.IsActive, &u.OrganizationID, &u.DateJoined)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns all users ordered by id.
func (r *Repository) List(ctx context.Context) ([]*models.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+selectColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// GetByID returns a user by ID.
func (r *Repository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, database.Translate(err)
	}
	return u, nil
}

// GetByUsername returns a user by username.
func (r *Repository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM users WHERE username = $1`, username))
	if err != nil {
		return nil, database.Translate(err)
	}
	return u, nil
}

// Create inserts a user. u.Password must already be hashed.
func (r *Repository) Create(ctx context.Context, u *models.User) error {
	const q = `INSERT INTO users (username, password_hash, first_name, last_name, email, phone,
		is_organizer, is_active, organization_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, date_joined`
	err := r.pool.QueryRow(ctx, q, u.Username, u.Password, u.FirstName, u.LastName, u.Email, u.Phone,
		u.IsOrganizer, u.IsActive, u.OrganizationID).Scan(&u.ID, &u.DateJoined)
	return database.Translate(err)
}

// Update writes every mutable column, including the password hash.
func (r *Repository) Update(ctx context.Context, u *models.User) error {
	const q = `UPDATE users SET username = $2, password_hash = $3, first_name = $4, last_name = $5,
		email = $6, phone = $7, is_organizer = $8, is_active = $9, organization_id = $10
		WHERE id = $1
		RETURNING date_joined`
	err := r.pool.QueryRow(ctx, q, u.ID, u.Username, u.Password, u.FirstName, u.LastName, u.Email, u.Phone,
		u.IsOrganizer, u.IsActive, u.OrganizationID).Scan(&u.DateJoined)
	return database.Translate(err)
}

// Delete removes a user. Tickets owned by the user block the delete.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return database.TranslateDelete(err)
	}
	if tag.RowsAffected() == 0 {
		return database.ErrNotFound
	}
	return nil
}
