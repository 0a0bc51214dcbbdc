package tickets

import (
	"time"

	"github.com/hosseinmostafavi2079/roydadpro/internal/events"
	"github.com/hosseinmostafavi2079/roydadpro/internal/models"
)

// Response is the wire shape of a ticket.
type Response struct {
	ID           int64               `json:"id"`
	User         int64               `json:"user"`
	Event        int64               `json:"event"`
	EventDetails *events.Response    `json:"event_details"`
	TicketCode   string              `json:"ticket_code"`
	Status       models.TicketStatus `json:"status"`
	PricePaid    int64               `json:"price_paid"`
	PurchaseDate time.Time           `json:"purchase_date"`
	IsPresent    bool                `json:"is_present"`
}

// NewResponse maps a ticket to its wire shape.
func NewResponse(t *models.Ticket) *Response {
	return &Response{
		ID:           t.ID,
		User:         t.UserID,
		Event:        t.EventID,
		EventDetails: events.NewResponse(t.Event),
		TicketCode:   t.TicketCode,
		Status:       t.Status,
		PricePaid:    t.PricePaid,
		PurchaseDate: t.PurchaseDate,
		IsPresent:    t.IsPresent,
	}
}

// CreateRequest is the purchase payload. user, ticket_code, status and
// purchase_date are assigned by the server.
type CreateRequest struct {
	Event     int64  `json:"event" form:"event" binding:"required,min=1"`
	PricePaid *int64 `json:"price_paid" form:"price_paid" binding:"required,min=0"`
}

// UpdateRequest holds the fields a ticket accepts after purchase. Event is
// accepted only when it matches the stored event.
type UpdateRequest struct {
	Event     *int64              `json:"event" form:"event"`
	Status    models.TicketStatus `json:"status" form:"status"`
	PricePaid *int64              `json:"price_paid" form:"price_paid" binding:"required,min=0"`
	IsPresent bool                `json:"is_present" form:"is_present"`
}

func updateFrom(t *models.Ticket) UpdateRequest {
	price := t.PricePaid
	return UpdateRequest{
		Status:    t.Status,
		PricePaid: &price,
		IsPresent: t.IsPresent,
	}
}

// check validates the request against the stored ticket and returns a message
// for the first invalid field.
func (r *UpdateRequest) check(t *models.Ticket) string {
	if r.Event != nil && *r.Event != t.EventID {
		return "event: cannot be changed after purchase"
	}
	if r.Status == "" {
		r.Status = t.Status
	}
	if !r.Status.Valid() {
		return `status: "` + string(r.Status) + `" is not a valid choice`
	}
	if r.Status == models.TicketPaid && t.Status != models.TicketPaid {
		return "status: payment confirmation cannot be set through the API"
	}
	return ""
}

func (r UpdateRequest) apply(t *models.Ticket) {
	t.Status = r.Status
	t.PricePaid = *r.PricePaid
	t.IsPresent = r.IsPresent
}
