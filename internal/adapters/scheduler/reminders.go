// Package scheduler runs periodic background jobs against the use cases.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"openmic/internal/domain"
	"openmic/internal/ports/input"
)

// Reminders emails confirmed performers once, when a published event enters
// the lead window before its start. An event with no recipients is checked
// again on the next tick.
type Reminders struct {
	events   input.EventUseCase
	lead     time.Duration
	interval time.Duration
	locale   string
	now      func() time.Time

	mu   sync.Mutex
	sent map[uint]bool
}

func NewReminders(events input.EventUseCase, lead, interval time.Duration, locale string) *Reminders {
	return &Reminders{
		events:   events,
		lead:     lead,
		interval: interval,
		locale:   locale,
		now:      time.Now,
		sent:     make(map[uint]bool),
	}
}

// Run ticks every interval until ctx is done.
func (r *Reminders) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Tick(ctx)
		}
	}
}

// Tick sends the reminders that are due and returns how many events were handled.
func (r *Reminders) Tick(ctx context.Context) int {
	events, err := r.events.ListEvents(ctx)
	if err != nil {
		slog.Error("scheduler: list events", "error", err)
		return 0
	}
	now := r.now()
	handled := 0
	for _, event := range events {
		if event.Status != domain.EventPublished || event.StartsAt.IsZero() {
			continue
		}
		if !event.StartsAt.After(now) || event.StartsAt.Sub(now) > r.lead {
			continue
		}
		if r.alreadySent(event.ID) {
			continue
		}
		count, err := r.events.SendReminders(ctx, event.HostID, event.ID, r.locale)
		if err != nil {
			slog.Warn("scheduler: send reminders", "event_id", event.ID, "error", err)
			continue
		}
		if count == 0 {
			// nobody to remind yet; later signups inside the window still get one
			continue
		}
		r.markSent(event.ID)
		handled++
		slog.Info("scheduler: reminders sent", "event_id", event.ID, "recipients", count)
	}
	return handled
}

func (r *Reminders) alreadySent(eventID uint) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sent[eventID]
}

func (r *Reminders) markSent(eventID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent[eventID] = true
}
