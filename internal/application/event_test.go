package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openmic/internal/domain"
	"openmic/internal/ports/input"
	"openmic/internal/ports/output"
)

func ptr[T any](v T) *T { return &v }

func TestCreateEvent_DefaultsToDraft(t *testing.T) {
	f := newFixture(t)

	event, err := f.events.CreateEvent(f.ctx, f.host.ID, input.EventInput{
		VenueID:  f.venue.ID,
		Title:    "  Open Mic  ",
		StartsAt: f.now.Add(24 * time.Hour),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.EventDraft, event.Status)
	assert.Equal(t, "Open Mic", event.Title)
	assert.Equal(t, f.host.ID, event.HostID)
}

func TestCreateEvent_Validation(t *testing.T) {
	f := newFixture(t)
	base := input.EventInput{VenueID: f.venue.ID, Title: "Open Mic"}

	tests := []struct {
		name string
		edit func(*input.EventInput)
		want error
	}{
		{"unknown venue", func(in *input.EventInput) { in.VenueID = 999 }, domain.ErrVenueNotFound},
		{"missing title", func(in *input.EventInput) { in.Title = " " }, domain.ErrValidation},
		{"negative capacity", func(in *input.EventInput) { in.MaxPerformers = -1 }, domain.ErrValidation},
		{"capacity beyond int32", func(in *input.EventInput) { in.MaxPerformers = 1<<32 + 1 }, domain.ErrValidation},
		{"unknown status", func(in *input.EventInput) { in.Status = "archived" }, domain.ErrValidation},
		{"deadline before opening", func(in *input.EventInput) {
			in.SignupOpens = f.now.Add(time.Hour)
			in.SignupDeadline = f.now
		}, domain.ErrInvalidSignupDates},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.edit(&in)
			_, err := f.events.CreateEvent(f.ctx, f.host.ID, in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUpdateEvent_CannotGoBelowConfirmedCount(t *testing.T) {
	f := newFixture(t)
	event := f.openEvent(3)
	f.mustRegister(event.ID, f.user("A").ID)
	f.mustRegister(event.ID, f.user("B").ID)

	_, err := f.events.UpdateEvent(f.ctx, f.host.ID, event.ID, input.EventUpdate{MaxPerformers: ptr(1)})
	assert.ErrorIs(t, err, domain.ErrCannotReduceSlots)

	updated, err := f.events.UpdateEvent(f.ctx, f.host.ID, event.ID, input.EventUpdate{MaxPerformers: ptr(2), Status: ptr(domain.EventCompleted)})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.MaxPerformers)
	assert.Equal(t, domain.EventCompleted, updated.Status)

	_, err = f.events.UpdateEvent(f.ctx, f.host.ID, event.ID, input.EventUpdate{MaxPerformers: ptr(domain.MaxCapacity + 1)})
	assert.ErrorIs(t, err, domain.ErrValidation)

	unlimited, err := f.events.UpdateEvent(f.ctx, f.host.ID, event.ID, input.EventUpdate{MaxPerformers: ptr(0)})
	require.NoError(t, err)
	assert.Equal(t, 0, unlimited.MaxPerformers)
}

func TestUpdateEvent_HostOnly(t *testing.T) {
	f := newFixture(t)
	event := f.openEvent(0)

	_, err := f.events.UpdateEvent(f.ctx, f.user("Ana").ID, event.ID, input.EventUpdate{Title: ptr("Mine")})

	assert.ErrorIs(t, err, domain.ErrNotEventHost)
}

func TestListEventsByHost(t *testing.T) {
	f := newFixture(t)
	f.openEvent(0)
	f.openEvent(0)

	mine, err := f.events.ListEventsByHost(f.ctx, f.host.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	none, err := f.events.ListEventsByHost(f.ctx, f.host.ID+100)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSendInvitations(t *testing.T) {
	f := newFixture(t)
	event := f.openEvent(0)

	err := f.events.SendInvitations(f.ctx, f.host.ID, event.ID, nil, "", "en")
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = f.events.SendInvitations(f.ctx, f.host.ID, event.ID, []string{"a@example.com", "b@example.com"}, " Bring a friend ", "fr")
	require.NoError(t, err)

	require.Len(t, f.notes.sent, 1)
	n := f.notes.sent[0]
	assert.Equal(t, output.NotifyInvitation, n.Kind)
	assert.Equal(t, "fr", n.Locale)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, n.Recipients)
	assert.Equal(t, "Bring a friend", n.Message)
	assert.Equal(t, f.venue.ID, n.Venue.ID)
}

func TestSendReminders_SkipsManualPerformers(t *testing.T) {
	f := newFixture(t)
	event := f.openEvent(0)
	ana := f.user("Ana")
	f.mustRegister(event.ID, ana.ID)
	_, err := f.signups.AddManual(f.ctx, f.host.ID, input.ManualPerformer{EventID: event.ID, PerformerName: "Walk-in"})
	require.NoError(t, err)

	sent, err := f.events.SendReminders(f.ctx, f.host.ID, event.ID, "en")
	require.NoError(t, err)

	assert.Equal(t, 1, sent)
	last := f.notes.sent[len(f.notes.sent)-1]
	assert.Equal(t, output.NotifyReminder, last.Kind)
	assert.Equal(t, []string{ana.Email}, last.Recipients)
}

func TestSendReminders_NoRecipientsSendsNothing(t *testing.T) {
	f := newFixture(t)
	event := f.openEvent(0)

	sent, err := f.events.SendReminders(f.ctx, f.host.ID, event.ID, "en")

	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Empty(t, f.notes.sent)
}
