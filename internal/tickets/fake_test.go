package tickets

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hosseinmostafavi2079/roydadpro/internal/models"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/database"
)

type fakeStore struct {
	mu      sync.Mutex
	nextID  int64
	rows    map[int64]*models.Ticket
	events  map[int64]*models.Event
	creates int
}

func newFakeStore(events ...*models.Event) *fakeStore {
	f := &fakeStore{rows: map[int64]*models.Ticket{}, events: map[int64]*models.Event{}}
	for _, e := range events {
		f.events[e.ID] = e
	}
	return f
}

func (f *fakeStore) detailed(t *models.Ticket) *models.Ticket {
	cp := *t
	if e, ok := f.events[t.EventID]; ok {
		ev := *e
		cp.Event = &ev
	}
	return &cp
}

func (f *fakeStore) List(_ context.Context, filter ListFilter) ([]*models.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Ticket
	for _, t := range f.rows {
		if filter.UserID != nil && t.UserID != *filter.UserID {
			continue
		}
		out = append(out, f.detailed(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeStore) GetByID(_ context.Context, id int64) (*models.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.rows[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return f.detailed(t), nil
}

func (f *fakeStore) Create(_ context.Context, t *models.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if _, ok := f.events[t.EventID]; !ok {
		return database.ErrInvalidReference
	}
	for _, other := range f.rows {
		if other.TicketCode == t.TicketCode {
			return &database.ConflictError{Field: "ticket_code"}
		}
	}
	f.nextID++
	t.ID = f.nextID
	t.PurchaseDate = time.Now().UTC()
	cp := *t
	cp.Event = nil
	f.rows[t.ID] = &cp
	f.events[t.EventID].RegisteredCount += seatDelta("", t.Status)
	return nil
}

func (f *fakeStore) Update(_ context.Context, t *models.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	prev, ok := f.rows[t.ID]
	if !ok {
		return database.ErrNotFound
	}
	f.events[prev.EventID].RegisteredCount += seatDelta(prev.Status, t.Status)
	prev.Status = t.Status
	prev.PricePaid = t.PricePaid
	prev.IsPresent = t.IsPresent
	return nil
}

func (f *fakeStore) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.rows[id]
	if !ok {
		return database.ErrNotFound
	}
	f.events[t.EventID].RegisteredCount -= seatDelta("", t.Status)
	delete(f.rows, id)
	return nil
}

// seed stores a ticket directly, bypassing code generation.
func (f *fakeStore) seed(t *models.Ticket) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	t.ID = f.nextID
	cp := *t
	f.rows[t.ID] = &cp
}
