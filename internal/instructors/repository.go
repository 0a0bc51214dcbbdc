package instructors

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hosseinmostafavi2079/roydadpro/internal/models"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/database"
)

// Store is the instructor persistence used by the handler.
type Store interface {
	List(ctx context.Context) ([]*models.Instructor, error)
	GetByID(ctx context.Context, id int64) (*models.Instructor, error)
	Create(ctx context.Context, in *models.Instructor) error
	Update(ctx context.Context, in *models.Instructor) error
	Delete(ctx context.Context, id int64) error
}

// Repository handles instructor persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an instructors repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const selectColumns = `id, organization_id, name, expertise, bio, image, courses_count`

func scanInstructor(row pgx.Row) (*models.Instructor, error) {
	var in models.Instructor
	if err := row.Scan(&in.ID, &in.OrganizationID, &in.Name, &in.Expertise, &in.Bio, &in.Image, &in.CoursesCount); err != nil {
		return nil, err
	}
	return &in, nil
}

// List returns all instructors of every organization.
func (r *Repository) List(ctx context.Context) ([]*models.Instructor, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+selectColumns+` FROM instructors ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list instructors: %w", err)
	}
	defer rows.Close()
	var list []*models.Instructor
	for rows.Next() {
		in, err := scanInstructor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan instructor: %w", err)
		}
		list = append(list, in)
	}
	return list, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*models.Instructor, error) {
	in, err := scanInstructor(r.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM instructors WHERE id = $1`, id))
	if err != nil {
		return nil, database.Translate(err)
	}
	return in, nil
}

func (r *Repository) Create(ctx context.Context, in *models.Instructor) error {
	const q = `INSERT INTO instructors (organization_id, name, expertise, bio, image, courses_count)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.pool.QueryRow(ctx, q, in.OrganizationID, in.Name, in.Expertise, in.Bio, in.Image, in.CoursesCount).Scan(&in.ID)
	return database.Translate(err)
}

// Update writes the mutable columns. The organization never changes.
func (r *Repository) Update(ctx context.Context, in *models.Instructor) error {
	const q = `UPDATE instructors SET name = $2, expertise = $3, bio = $4, image = $5, courses_count = $6
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, q, in.ID, in.Name, in.Expertise, in.Bio, in.Image, in.CoursesCount)
	if err != nil {
		return database.Translate(err)
	}
	if tag.RowsAffected() == 0 {
		return database.ErrNotFound
	}
	return nil
}

// Delete removes an instructor; events that referenced it keep existing with no instructor.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM instructors WHERE id = $1`, id)
	if err != nil {
		return database.TranslateDelete(err)
	}
	if tag.RowsAffected() == 0 {
		return database.ErrNotFound
	}
	return nil
}
