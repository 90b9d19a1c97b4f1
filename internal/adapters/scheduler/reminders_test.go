package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"openmic/internal/domain"
	"openmic/internal/domain/entities"
	"openmic/internal/ports/input"
)

type fakeEvents struct {
	input.EventUseCase
	events   []entities.Event
	reminded []uint
	fail     map[uint]error

	// recipients per event; absent means one
	recipients map[uint]int
}

func (f *fakeEvents) ListEvents(context.Context) ([]entities.Event, error) {
	return f.events, nil
}

func (f *fakeEvents) SendReminders(_ context.Context, callerID, eventID uint, _ string) (int, error) {
	if err := f.fail[eventID]; err != nil {
		return 0, err
	}
	n, ok := f.recipients[eventID]
	if !ok {
		n = 1
	}
	if n > 0 {
		f.reminded = append(f.reminded, eventID)
	}
	return n, nil
}

func TestReminders_SendsOnceInsideLeadWindow(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	events := &fakeEvents{events: []entities.Event{
		{ID: 1, HostID: 9, Status: domain.EventPublished, StartsAt: now.Add(6 * time.Hour)},
		{ID: 2, HostID: 9, Status: domain.EventPublished, StartsAt: now.Add(72 * time.Hour)},
		{ID: 3, HostID: 9, Status: domain.EventDraft, StartsAt: now.Add(6 * time.Hour)},
		{ID: 4, HostID: 9, Status: domain.EventPublished, StartsAt: now.Add(-time.Hour)},
	}}
	r := NewReminders(events, 24*time.Hour, time.Minute, "en")
	r.now = func() time.Time { return now }

	assert.Equal(t, 1, r.Tick(context.Background()))
	assert.Equal(t, 0, r.Tick(context.Background()))
	assert.Equal(t, []uint{1}, events.reminded)
}

func TestReminders_RetriesAfterFailure(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	events := &fakeEvents{
		events: []entities.Event{{ID: 1, HostID: 9, Status: domain.EventPublished, StartsAt: now.Add(time.Hour)}},
		fail:   map[uint]error{1: errors.New("store down")},
	}
	r := NewReminders(events, 24*time.Hour, time.Minute, "en")
	r.now = func() time.Time { return now }

	assert.Equal(t, 0, r.Tick(context.Background()))

	delete(events.fail, 1)
	assert.Equal(t, 1, r.Tick(context.Background()))
}

func TestReminders_EmptyEventIsRetried(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	events := &fakeEvents{
		events:     []entities.Event{{ID: 1, HostID: 9, Status: domain.EventPublished, StartsAt: now.Add(time.Hour)}},
		recipients: map[uint]int{1: 0},
	}
	r := NewReminders(events, 24*time.Hour, time.Minute, "en")
	r.now = func() time.Time { return now }

	assert.Equal(t, 0, r.Tick(context.Background()))
	assert.Empty(t, events.reminded)

	events.recipients[1] = 2
	assert.Equal(t, 1, r.Tick(context.Background()))
	assert.Equal(t, 0, r.Tick(context.Background()))
	assert.Equal(t, []uint{1}, events.reminded)
}
