package organizations

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hosseinmostafavi2079/roydadpro/internal/models"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/database"
)

// Store is the organization persistence used by the handler.
type Store interface {
	List(ctx context.Context) ([]*models.Organization, error)
	GetByID(ctx context.Context, id int64) (*models.Organization, error)
	Create(ctx context.Context, org *models.Organization) error
	Update(ctx context.Context, org *models.Organization) error
	Delete(ctx context.Context, id int64) error
}

// Repository handles organization persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an organizations repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const selectColumns = `id, name, slug, logo, theme_color, font_family, created_at`

func scanOrganization(row pgx.Row) (*models.Organization, error) {
	var org models.Organization
	if err := row.Scan(&org.ID, &org.Name, &org.Slug, &org.Logo, &org.ThemeColor, &org.FontFamily, &org.CreatedAt); err != nil {
		return nil, err
	}
	return &org, nil
}

// List returns every organization ordered by name.
func (r *Repository) List(ctx context.Context) ([]*models.Organization, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+selectColumns+` FROM organizations ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	defer rows.Close()
	var list []*models.Organization
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, fmt.Errorf("scan organization: %w", err)
		}
		list = append(list, org)
	}
	return list, rows.Err()
}

// GetByID returns an organization by ID.
func (r *Repository) GetByID(ctx context.Context, id int64) (*models.Organization, error) {
	org, err := scanOrganization(r.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM organizations WHERE id = $1`, id))
	if err != nil {
		return nil, database.Translate(err)
	}
	return org, nil
}

// GetBySlug returns an organization by slug.
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*models.Organization, error) {
	org, err := scanOrganization(r.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM organizations WHERE slug = $1`, slug))
	if err != nil {
		return nil, database.Translate(err)
	}
	return org, nil
}

// Create inserts an organization and fills ID and CreatedAt.
func (r *Repository) Create(ctx context.Context, org *models.Organization) error {
	const q = `INSERT INTO organizations (name, slug, logo, theme_color, font_family)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, q, org.Name, org.Slug, org.Logo, org.ThemeColor, org.FontFamily).
		Scan(&org.ID, &org.CreatedAt)
	return database.Translate(err)
}

// Update writes every mutable column.
func (r *Repository) Update(ctx context.Context, org *models.Organization) error {
	const q = `UPDATE organizations SET name = $2, slug = $3, logo = $4, theme_color = $5, font_family = $6
		WHERE id = $1
		RETURNING created_at`
	err := r.pool.QueryRow(ctx, q, org.ID, org.Name, org.Slug, org.Logo, org.ThemeColor, org.FontFamily).
		Scan(&org.CreatedAt)
	return database.Translate(err)
}

// Delete removes an organization. Its users, instructors, categories and events go with it;
// tickets on those users or events block the delete.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM organizations WHERE id = $1`, id)
	if err != nil {
		return database.TranslateDelete(err)
	}
	if tag.RowsAffected() == 0 {
		return database.ErrNotFound
	}
	return nil
}
