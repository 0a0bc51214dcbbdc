package events

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hosseinmostafavi2079/roydadpro/internal/models"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/database"
)

// ListFilter narrows an event listing. Search matches title, description or
// location as a case-insensitive substring.
type ListFilter struct {
	Search string
}

// Store is the event persistence used by the handler.
type Store interface {
	List(ctx context.Context, f ListFilter) ([]*models.Event, error)
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	Create(ctx context.Context, e *models.Event) error
	Update(ctx context.Context, e *models.Event) error
	Delete(ctx context.Context, id int64) error
}

// Repository handles event persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an events repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// DetailedColumns are the event columns followed by its organization, category
// and instructor. DetailedJoins supplies the o, c and i aliases for an events table aliased e.
const (
	DetailedColumns = `e.id, e.organization_id, e.title, e.category_id, e.instructor_id,
		e.start_datetime, e.date_display, e.time_display, e.is_virtual, e.location, e.meeting_link,
		e.price, e.capacity, e.registered_count, e.image, e.description, e.created_at,
		o.id, o.name, o.slug, o.logo, o.theme_color, o.font_family, o.created_at,
		c.id, c.organization_id, c.title,
		i.id, i.organization_id, i.name, i.expertise, i.bio, i.image, i.courses_count`
	DetailedJoins = `JOIN organizations o ON o.id = e.organization_id
		LEFT JOIN categories c ON c.id = e.category_id
		LEFT JOIN instructors i ON i.id = e.instructor_id`
)

const selectDetailed = `SELECT ` + DetailedColumns + ` FROM events e ` + DetailedJoins

// ScanDetailed scans DetailedColumns, optionally followed by extra destinations.
func ScanDetailed(row pgx.Row, extra ...any) (*models.Event, error) {
	var (
		e   models.Event
		org models.Organization

		catID    *int64
		catOrgID *int64
		catTitle *string

		insID        *int64
		insOrgID     *int64
		insName      *string
		insExpertise *string
		insBio       *string
		insImage     *string
		insCourses   *int
	)
	dest := []any{
		&e.ID, &e.OrganizationID, &e.Title, &e.CategoryID, &e.InstructorID,
		&e.StartDatetime, &e.DateDisplay, &e.TimeDisplay, &e.IsVirtual, &e.Location, &e.MeetingLink,
		&e.Price, &e.Capacity, &e.RegisteredCount, &e.Image, &e.Description, &e.CreatedAt,
		&org.ID, &org.Name, &org.Slug, &org.Logo, &org.ThemeColor, &org.FontFamily, &org.CreatedAt,
		&catID, &catOrgID, &catTitle,
		&insID, &insOrgID, &insName, &insExpertise, &insBio, &insImage, &insCourses,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	e.Organization = &org
	if catID != nil {
		e.Category = &models.Category{ID: *catID, OrganizationID: catOrgID, Title: deref(catTitle)}
	}
	if insID != nil {
		e.Instructor = &models.Instructor{
			ID:             *insID,
			OrganizationID: derefInt64(insOrgID),
			Name:           deref(insName),
			Expertise:      deref(insExpertise),
			Bio:            deref(insBio),
			Image:          deref(insImage),
		}
		if insCourses != nil {
			e.Instructor.CoursesCount = *insCourses
		}
	}
	return &e, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt64(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

// EscapeLike escapes LIKE wildcards so user input matches literally.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// List returns events newest start first.
func (r *Repository) List(ctx context.Context, f ListFilter) ([]*models.Event, error) {
	q := selectDetailed
	var args []any
	if strings.TrimSpace(f.Search) != "" {
		q += ` WHERE e.title ILIKE $1 ESCAPE '\' OR e.description ILIKE $1 ESCAPE '\' OR e.location ILIKE $1 ESCAPE '\'`
		args = append(args, "%"+EscapeLike(f.Search)+"%")
	}
	q += ` ORDER BY e.start_datetime DESC, e.id DESC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()
	var list []*models.Event
	for rows.Next() {
		e, err := ScanDetailed(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// GetByID returns an event with its details loaded.
func (r *Repository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	e, err := ScanDetailed(r.pool.QueryRow(ctx, selectDetailed+` WHERE e.id = $1`, id))
	if err != nil {
		return nil, database.Translate(err)
	}
	return e, nil
}

// Create inserts an event. registered_count always starts at zero.
func (r *Repository) Create(ctx context.Context, e *models.Event) error {
	const q = `INSERT INTO events (organization_id, title, category_id, instructor_id, start_datetime,
		date_display, time_display, is_virtual, location, meeting_link, price, capacity, image, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, registered_count, created_at`
	err := r.pool.QueryRow(ctx, q, e.OrganizationID, e.Title, e.CategoryID, e.InstructorID, e.StartDatetime,
		e.DateDisplay, e.TimeDisplay, e.IsVirtual, e.Location, e.MeetingLink, e.Price, e.Capacity, e.Image, e.Description).
		Scan(&e.ID, &e.RegisteredCount, &e.CreatedAt)
	return database.Translate(err)
}

// Update writes the client-writable columns. Organization and registered_count are left alone.
func (r *Repository) Update(ctx context.Context, e *models.Event) error {
	const q = `UPDATE events SET title = $2, category_id = $3, instructor_id = $4, start_datetime = $5,
		date_display = $6, time_display = $7, is_virtual = $8, location = $9, meeting_link = $10,
		price = $11, capacity = $12, image = $13, description = $14
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, q, e.ID, e.Title, e.CategoryID, e.InstructorID, e.StartDatetime,
		e.DateDisplay, e.TimeDisplay, e.IsVirtual, e.Location, e.MeetingLink, e.Price, e.Capacity, e.Image, e.Description)
	if err != nil {
		return database.Translate(err)
	}
	if tag.RowsAffected() == 0 {
		return database.ErrNotFound
	}
	return nil
}

// Delete removes an event. Tickets for the event block the delete.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return database.TranslateDelete(err)
	}
	if tag.RowsAffected() == 0 {
		return database.ErrNotFound
	}
	return nil
}
