package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"openmic/internal/domain"
	"openmic/internal/domain/entities"
	"openmic/internal/infrastructure/memory"
	"openmic/internal/ports/output"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []output.Notification
}

func (r *recordingNotifier) Notify(_ context.Context, n output.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return nil
}

func (r *recordingNotifier) kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.sent))
	for i, n := range r.sent {
		out[i] = n.Kind
	}
	return out
}

type fixture struct {
	t       *testing.T
	ctx     context.Context
	store   *memory.Store
	notes   *recordingNotifier
	now     time.Time
	signups *SignupService
	events  *EventService
	host    entities.User
	venue   entities.Venue
	users   int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	notes := &recordingNotifier{}
	now := time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	signups := NewSignupService(store.Signups(), store.Events(), store.Users(), store, notes)
	signups.now = clock
	events := NewEventService(store.Events(), store.Venues(), store.Signups(), store.Users(), notes)
	events.now = clock

	f := &fixture{
		t:       t,
		ctx:     context.Background(),
		store:   store,
		notes:   notes,
		now:     now,
		signups: signups,
		events:  events,
	}
	f.host = f.user("Host")
	f.venue = entities.Venue{OwnerID: f.host.ID, Name: "The Cellar"}
	require.NoError(t, store.Venues().Create(f.ctx, &f.venue))
	return f
}

func (f *fixture) user(name string) entities.User {
	f.t.Helper()
	f.users++
	u := entities.User{Email: fmt.Sprintf("user%d@example.com", f.users), DisplayName: name}
	require.NoError(f.t, f.store.Users().Create(f.ctx, &u))
	return u
}

// openEvent creates a published event whose signup window contains now.
func (f *fixture) openEvent(maxPerformers int) entities.Event {
	f.t.Helper()
	e := entities.Event{
		HostID:         f.host.ID,
		VenueID:        f.venue.ID,
		Title:          "Open Mic",
		StartsAt:       f.now.Add(48 * time.Hour),
		MaxPerformers:  maxPerformers,
		SignupOpens:    f.now.Add(-time.Hour),
		SignupDeadline: f.now.Add(24 * time.Hour),
		Status:         domain.EventPublished,
	}
	require.NoError(f.t, f.store.Events().Create(f.ctx, &e))
	return e
}

func (f *fixture) orders(eventID uint) map[uint]int {
	f.t.Helper()
	rows, err := f.store.Signups().FindByEventID(f.ctx, eventID)
	require.NoError(f.t, err)
	out := make(map[uint]int, len(rows))
	for _, row := range rows {
		out[row.ID] = row.PerformanceOrder
	}
	return out
}

var errInjected = errors.New("injected write failure")

// failingTx wraps a Transactor so that the n-th SetPerformanceOrder inside a
// transaction fails.
type failingTx struct {
	inner  output.Transactor
	failOn int
}

func (f failingTx) WithinTx(ctx context.Context, fn func(ctx context.Context, signups output.SignupRepository) error) error {
	return f.inner.WithinTx(ctx, func(ctx context.Context, signups output.SignupRepository) error {
		return fn(ctx, &failingSignups{SignupRepository: signups, failOn: f.failOn})
	})
}

type failingSignups struct {
	output.SignupRepository
	calls  int
	failOn int
}

func (f *failingSignups) SetPerformanceOrder(ctx context.Context, eventID, signupID uint, order int) (bool, error) {
	f.calls++
	if f.calls == f.failOn {
		return false, errInjected
	}
	return f.SignupRepository.SetPerformanceOrder(ctx, eventID, signupID, order)
}
