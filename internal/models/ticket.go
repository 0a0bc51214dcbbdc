package models

import "time"

// TicketStatus tracks the payment state of a ticket.
type TicketStatus string

const (
	TicketPaid      TicketStatus = "paid"
	TicketPending   TicketStatus = "pending"
	TicketCancelled TicketStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketPaid, TicketPending, TicketCancelled:
		return true
	}
	return false
}

// Ticket links a user to an event. TicketCode, UserID, EventID and
// PurchaseDate never change after the row is created.
type Ticket struct {
	ID           int64
	UserID       int64
	EventID      int64
	TicketCode   string
	Status       TicketStatus
	PricePaid    int64
	PurchaseDate time.Time
	IsPresent    bool

	Event *Event
}
