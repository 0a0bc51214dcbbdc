package tickets

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/hosseinmostafavi2079/roydadpro/internal/models"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/database"
)

var shortCodePattern = regexp.MustCompile(`^[A-Z0-9]{8}$`)

func newTestService(store Store, attempts int) *Service {
	return NewService(store, attempts, noop.NewTracerProvider().Tracer("test"), zap.NewNop())
}

func sequence(codes ...string) func() string {
	i := 0
	return func() string {
		c := codes[i%len(codes)]
		i++
		return c
	}
}

func TestShortCodeFormat(t *testing.T) {
	for i := 0; i < 50; i++ {
		require.Regexp(t, shortCodePattern, ShortCode())
	}
	require.Regexp(t, `^[A-Z0-9]{12}$`, LongCode())
}

func TestPurchaseAssignsServerFields(t *testing.T) {
	store := newFakeStore(&models.Event{ID: 5})
	s := newTestService(store, 3)

	ticket, err := s.Purchase(context.Background(), 7, 5, 250000)
	require.NoError(t, err)
	require.Equal(t, int64(7), ticket.UserID)
	require.Equal(t, models.TicketPending, ticket.Status)
	require.Equal(t, int64(250000), ticket.PricePaid)
	require.Regexp(t, shortCodePattern, ticket.TicketCode)
	require.False(t, ticket.PurchaseDate.IsZero())
	require.Equal(t, 1, store.events[5].RegisteredCount)
}

func TestPurchaseRetriesOnCodeCollision(t *testing.T) {
	store := newFakeStore(&models.Event{ID: 5})
	store.seed(&models.Ticket{UserID: 1, EventID: 5, TicketCode: "AAAAAAAA", Status: models.TicketPending})

	s := newTestService(store, 3)
	s.shortCode = sequence("AAAAAAAA", "AAAAAAAA", "BBBBBBBB")

	ticket, err := s.Purchase(context.Background(), 2, 5, 0)
	require.NoError(t, err)
	require.Equal(t, "BBBBBBBB", ticket.TicketCode)
	require.Equal(t, 3, store.creates)
}

func TestPurchaseFallsBackToLongCode(t *testing.T) {
	store := newFakeStore(&models.Event{ID: 5})
	store.seed(&models.Ticket{UserID: 1, EventID: 5, TicketCode: "AAAAAAAA", Status: models.TicketPending})

	s := newTestService(store, 2)
	s.shortCode = sequence("AAAAAAAA")
	s.longCode = sequence("CCCCCCCCCCCC")

	ticket, err := s.Purchase(context.Background(), 2, 5, 0)
	require.NoError(t, err)
	require.Equal(t, "CCCCCCCCCCCC", ticket.TicketCode)
	require.Equal(t, 3, store.creates)
}

func TestPurchaseCodeExhausted(t *testing.T) {
	store := newFakeStore(&models.Event{ID: 5})
	store.seed(&models.Ticket{UserID: 1, EventID: 5, TicketCode: "AAAAAAAA", Status: models.TicketPending})
	store.seed(&models.Ticket{UserID: 1, EventID: 5, TicketCode: "CCCCCCCCCCCC", Status: models.TicketPending})

	s := newTestService(store, 2)
	s.shortCode = sequence("AAAAAAAA")
	s.longCode = sequence("CCCCCCCCCCCC")

	_, err := s.Purchase(context.Background(), 2, 5, 0)
	require.ErrorIs(t, err, ErrCodeExhausted)
	require.Equal(t, 3, store.creates)
}

func TestPurchaseUnknownEventNotRetried(t *testing.T) {
	store := newFakeStore()
	s := newTestService(store, 3)

	_, err := s.Purchase(context.Background(), 2, 99, 0)
	require.ErrorIs(t, err, database.ErrInvalidReference)
	require.Equal(t, 1, store.creates)
}

func TestSeatDelta(t *testing.T) {
	tests := []struct {
		prev, next models.TicketStatus
		want       int
	}{
		{"", models.TicketPending, 1},
		{"", models.TicketCancelled, 0},
		{models.TicketPending, models.TicketCancelled, -1},
		{models.TicketCancelled, models.TicketPending, 1},
		{models.TicketPending, models.TicketPaid, 0},
		{models.TicketPaid, models.TicketCancelled, -1},
		{models.TicketCancelled, models.TicketCancelled, 0},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, seatDelta(tt.prev, tt.next), "%q -> %q", tt.prev, tt.next)
	}
}
