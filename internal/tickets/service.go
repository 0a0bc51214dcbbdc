package tickets

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/hosseinmostafavi2079/roydadpro/internal/models"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/database"
)

// ErrCodeExhausted is returned when every generated ticket code collided.
// The purchase can be retried by the client.
var ErrCodeExhausted = errors.New("could not allocate a unique ticket code")

const codeField = "ticket_code"

// ShortCode returns an 8-character uppercase code cut from a random UUID.
func ShortCode() string {
	return strings.ToUpper(uuid.New().String()[:8])
}

// LongCode returns a 12-character uppercase code, used after short codes keep colliding.
func LongCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:12])
}

// Service implements the purchase flow.
type Service struct {
	store     Store
	attempts  int
	shortCode func() string
	longCode  func() string
	tracer    trace.Tracer
	logger    *zap.Logger
}

// NewService creates a purchase service that tries up to attempts short codes.
func NewService(store Store, attempts int, tracer trace.Tracer, logger *zap.Logger) *Service {
	if attempts < 1 {
		attempts = 1
	}
	return &Service{
		store:     store,
		attempts:  attempts,
		shortCode: ShortCode,
		longCode:  LongCode,
		tracer:    tracer,
		logger:    logger,
	}
}

// Purchase creates a pending ticket for userID on eventID. The buyer, code and
// purchase date are always assigned here, never taken from the client.
func (s *Service) Purchase(ctx context.Context, userID, eventID, pricePaid int64) (*models.Ticket, error) {
	ctx, span := s.tracer.Start(ctx, "tickets.Purchase", trace.WithAttributes(
		attribute.Int64("user.id", userID),
		attribute.Int64("event.id", eventID),
	))
	defer span.End()

	for attempt := 1; attempt <= s.attempts+1; attempt++ {
		code := s.shortCode()
		if attempt > s.attempts {
			code = s.longCode()
		}
		t := &models.Ticket{
			UserID:     userID,
			EventID:    eventID,
			TicketCode: code,
			Status:     models.TicketPending,
			PricePaid:  pricePaid,
		}
		err := s.store.Create(ctx, t)
		if err == nil {
			span.SetAttributes(attribute.Int("ticket.code_attempts", attempt), attribute.Int64("ticket.id", t.ID))
			return t, nil
		}
		if !isCodeCollision(err) {
			if !errors.Is(err, database.ErrInvalidReference) {
				span.RecordError(err)
				span.SetStatus(codes.Error, "create ticket")
			}
			return nil, err
		}
		s.logger.Warn("ticket code collision, regenerating",
			zap.Int("attempt", attempt),
			zap.Int64("event_id", eventID),
		)
	}

	span.SetStatus(codes.Error, ErrCodeExhausted.Error())
	s.logger.Error("ticket code space exhausted", zap.Int64("event_id", eventID), zap.Int("attempts", s.attempts+1))
	return nil, ErrCodeExhausted
}

func isCodeCollision(err error) bool {
	var conflict *database.ConflictError
	return errors.As(err, &conflict) && conflict.Field == codeField
}
