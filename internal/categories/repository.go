package categories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hosseinmostafavi2079/roydadpro/internal/models"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/database"
)

// Store is the category persistence used by the handler.
type Store interface {
	List(ctx context.Context) ([]*models.Category, error)
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	Create(ctx context.Context, cat *models.Category) error
	Update(ctx context.Context, cat *models.Category) error
	Delete(ctx context.Context, id int64) error
}

// Repository handles category persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a categories repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) List(ctx context.Context) ([]*models.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, organization_id, title FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*models.Category
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.OrganizationID, &cat.Title); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &cat)
	}
	return list, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	var cat models.Category
	err := r.pool.QueryRow(ctx, `SELECT id, organization_id, title FROM categories WHERE id = $1`, id).
		Scan(&cat.ID, &cat.OrganizationID, &cat.Title)
	if err != nil {
		return nil, database.Translate(err)
	}
	return &cat, nil
}

func (r *Repository) Create(ctx context.Context, cat *models.Category) error {
	err := r.pool.QueryRow(ctx, `INSERT INTO categories (organization_id, title) VALUES ($1, $2) RETURNING id`,
		cat.OrganizationID, cat.Title).Scan(&cat.ID)
	return database.Translate(err)
}

// Update renames a category.
func (r *Repository) Update(ctx context.Context, cat *models.Category) error {
	tag, err := r.pool.Exec(ctx, `UPDATE categories SET title = $2 WHERE id = $1`, cat.ID, cat.Title)
	if err != nil {
		return database.Translate(err)
	}
	if tag.RowsAffected() == 0 {
		return database.ErrNotFound
	}
	return nil
}

// Delete removes a category; its events lose the category instead of being deleted.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return database.TranslateDelete(err)
	}
	if tag.RowsAffected() == 0 {
		return database.ErrNotFound
	}
	return nil
}
