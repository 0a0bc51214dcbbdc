package tickets

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hosseinmostafavi2079/roydadpro/internal/events"
	"github.com/hosseinmostafavi2079/roydadpro/internal/models"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/database"
)

// ListFilter narrows a ticket listing. A nil UserID lists every ticket.
type ListFilter struct {
	UserID *int64
}

// Store is the ticket persistence used by the service and handler.
type Store interface {
	List(ctx context.Context, f ListFilter) ([]*models.Ticket, error)
	GetByID(ctx context.Context, id int64) (*models.Ticket, error)
	Create(ctx context.Context, t *models.Ticket) error
	Update(ctx context.Context, t *models.Ticket) error
	Delete(ctx context.Context, id int64) error
}

// Repository handles ticket persistence and keeps events.registered_count in step.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a tickets repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const selectDetailed = `SELECT ` + events.DetailedColumns + `,
		t.id, t.user_id, t.event_id, t.ticket_code, t.status, t.price_paid, t.purchase_date, t.is_present
	FROM tickets t
	JOIN events e ON e.id = t.event_id
	` + events.DetailedJoins

func scanTicket(row pgx.Row) (*models.Ticket, error) {
	var t models.Ticket
	e, err := events.ScanDetailed(row,
		&t.ID, &t.UserID, &t.EventID, &t.TicketCode, &t.Status, &t.PricePaid, &t.PurchaseDate, &t.IsPresent)
	if err != nil {
		return nil, err
	}
	t.Event = e
	return &t, nil
}

// List returns tickets newest purchase first.
func (r *Repository) List(ctx context.Context, f ListFilter) ([]*models.Ticket, error) {
	q := selectDetailed
	var args []any
	if f.UserID != nil {
		q += ` WHERE t.user_id = $1`
		args = append(args, *f.UserID)
	}
	q += ` ORDER BY t.purchase_date DESC, t.id DESC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()
	var list []*models.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// GetByID returns a ticket with its event details.
func (r *Repository) GetByID(ctx context.Context, id int64) (*models.Ticket, error) {
	t, err := scanTicket(r.pool.QueryRow(ctx, selectDetailed+` WHERE t.id = $1`, id))
	if err != nil {
		return nil, database.Translate(err)
	}
	return t, nil
}

// Create inserts a ticket and counts it against the event in one transaction.
// purchase_date is assigned by the database.
func (r *Repository) Create(ctx context.Context, t *models.Ticket) error {
	return database.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		const q = `INSERT INTO tickets (user_id, event_id, ticket_code, status, price_paid, is_present)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, purchase_date`
		err := tx.QueryRow(ctx, q, t.UserID, t.EventID, t.TicketCode, t.Status, t.PricePaid, t.IsPresent).
			Scan(&t.ID, &t.PurchaseDate)
		if err != nil {
			return database.Translate(err)
		}
		return adjustRegistered(ctx, tx, t.EventID, seatDelta("", t.Status))
	})
}

// Update writes status, price_paid and is_present. The other columns are fixed at creation.
func (r *Repository) Update(ctx context.Context, t *models.Ticket) error {
	return database.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var prev models.TicketStatus
		var eventID int64
		err := tx.QueryRow(ctx, `SELECT status, event_id FROM tickets WHERE id = $1 FOR UPDATE`, t.ID).Scan(&prev, &eventID)
		if err != nil {
			return database.Translate(err)
		}
		_, err = tx.Exec(ctx, `UPDATE tickets SET status = $2, price_paid = $3, is_present = $4 WHERE id = $1`,
			t.ID, t.Status, t.PricePaid, t.IsPresent)
		if err != nil {
			return database.Translate(err)
		}
		return adjustRegistered(ctx, tx, eventID, seatDelta(prev, t.Status))
	})
}

// Delete removes a ticket and releases its seat unless it was already cancelled.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return database.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var status models.TicketStatus
		var eventID int64
		err := tx.QueryRow(ctx, `DELETE FROM tickets WHERE id = $1 RETURNING status, event_id`, id).Scan(&status, &eventID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return database.ErrNotFound
			}
			return database.TranslateDelete(err)
		}
		return adjustRegistered(ctx, tx, eventID, -seatDelta("", status))
	})
}

// seatDelta is the change in registered_count when a ticket moves from prev to next.
// An empty prev means the ticket did not exist.
func seatDelta(prev, next models.TicketStatus) int {
	holds := func(s models.TicketStatus) int {
		if s == "" || s == models.TicketCancelled {
			return 0
		}
		return 1
	}
	return holds(next) - holds(prev)
}

func adjustRegistered(ctx context.Context, tx pgx.Tx, eventID int64, delta int) error {
	if delta == 0 {
		return nil
	}
	_, err := tx.Exec(ctx, `UPDATE events SET registered_count = GREATEST(registered_count + $2, 0) WHERE id = $1`, eventID, delta)
	if err != nil {
		return fmt.Errorf("adjust registered_count: %w", err)
	}
	return nil
}
