package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openmic/internal/domain"
	"openmic/internal/domain/entities"
	"openmic/internal/ports/input"
	"openmic/internal/ports/output"
)

func (f *fixture) register(eventID, userID uint) (*entities.Signup, error) {
	return f.signups.Register(f.ctx, input.RegisterSignup{EventID: eventID, UserID: userID, PerformanceName: "Set"})
}

func (f *fixture) mustRegister(eventID, userID uint) *entities.Signup {
	f.t.Helper()
	s, err := f.register(eventID, userID)
	require.NoError(f.t, err)
	return s
}

func ids(signups []entities.Signup) []uint {
	out := make([]uint, len(signups))
	for i, s := range signups {
		out[i] = s.ID
	}
	return out
}

func TestRegister_CreatesConfirmedUnorderedSignup(t *testing.T) {
	f := newFixture(t)
	event := f.openEvent(0)
	ana := f.user("Ana")

	signup := f.mustRegister(event.ID, ana.ID)

	assert.NotZero(t, signup.ID)
	assert.Equal(t, domain.StatusConfirmed, signup.Status)
	assert.Equal(t, "Ana", signup.PerformerName)
	assert.False(t, signup.HasOrder())
	assert.Equal(t, f.now, signup.CreatedAt)
	assert.Equal(t, []string{output.NotifySignupCreated}, f.notes.kinds())
	assert.Equal(t, []string{f.host.Email}, f.notes.sent[0].Recipients)
}

func TestRegister_SecondRegistrationIsDuplicate(t *testing.T) {
	f := newFixture(t)
	event := f.openEvent(0)
	ana := f.user("Ana")
	f.mustRegister(event.ID, ana.ID)

	_, err := f.register(event.ID, ana.ID)

	assert.ErrorIs(t, err, domain.ErrDuplicateSignup)
}

func TestRegister_UnknownEvent(t *testing.T) {
	f := newFixture(t)
	ana := f.user("Ana")

	_, err := f.register(404, ana.ID)

	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestRegister_EventFullAtCapacity(t *testing.T) {
	f := newFixture(t)
	event := f.openEvent(1)
	f.mustRegister(event.ID, f.user("Ana").ID)

	_, err := f.register(event.ID, f.user("Bob").ID)

	assert.ErrorIs(t, err, domain.ErrEventFull)
}

func TestRegister_UnlimitedCapacity(t *testing.T) {
	f := newFixture(t)
	event := f.openEvent(0)

	for i := 0; i < 5; i++ {
		f.mustRegister(event.ID, f.user("Performer").ID)
	}
}

func TestRegister_SignupWindow(t *testing.T) {
	f := newFixture(t)
	event := f.openEvent(0)
	ana := f.user("Ana")

	f.signups.now = func() time.Time { return event.SignupOpens.Add(-time.Minute) }
	_, err := f.register(event.ID, ana.ID)
	assert.ErrorIs(t, err, domain.ErrSignupsNotOpen)

	f.signups.now = func() time.Time { return event.SignupDeadline.Add(time.Minute) }
	_, err = f.register(event.ID, ana.ID)
	assert.ErrorIs(t, err, domain.ErrSignupsClosed)

	f.signups.now = func() time.Time { return event.SignupDeadline }
	_, err = f.register(event.ID, ana.ID)
	assert.NoError(t, err)
}

func TestRegister_CapacityFreedByCancel(t *testing.T) {
	f := newFixture(t)
	event := f.openEvent(2)
	a, b, c := f.user("A"), f.user("B"), f.user("C")
	f.mustRegister(event.ID, a.ID)
	f.mustRegister(event.ID, b.ID)

	_, err := f.register(event.ID, c.ID)
	require.ErrorIs(t, err, domain.ErrEventFull)

	require.NoError(t, f.signups.Cancel(f.ctx, event.ID, a.ID))

	signup, err := f.register(event.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, signup.Status)
}

func TestCancel_MissingSignupIsNotFound(t *testing.T) {
	f := newFixture(t)
	event := f.openEvent(0)

	err := f.signups.Cancel(f.ctx, event.ID, f.user("Ana").ID)

	assert.ErrorIs(t, err, domain.ErrSignupNotFound)
}

func TestCancelByID_OwnerOrHostOnly(t *testing.T) {
	f := newFixture(t)
	event := f.openEvent(0)
	ana, bob := f.user("Ana"), f.user("Bob")
	anaSignup := f.mustRegister(event.ID, ana.ID)
	bobSignup := f.mustRegister(event.ID, bob.ID)

	assert.ErrorIs(t, f.signups.CancelByID(f.ctx, bob.ID, anaSignup.ID), domain.ErrNotSignupOwner)
	assert.NoError(t, f.signups.CancelByID(f.ctx, ana.ID, anaSignup.ID))
	assert.NoError(t, f.signups.CancelByID(f.ctx, f.host.ID, bobSignup.ID))
	assert.ErrorIs(t, f.signups.CancelByID(f.ctx, ana.ID, anaSignup.ID), domain.ErrSignupNotFound)
	assert.Contains(t, f.notes.kinds(), output.NotifySignupCancelled)
}

func TestReorder_AssignsOrdersInListSequence(t *testing.T) {
	f := newFixture(t)
	event := f.openEvent(0)
	s1 := f.mustRegister(event.ID, f.user("One").ID)
	s2 := f.mustRegister(event.ID, f.user("Two").ID)
	s3 := f.mustRegister(event.ID, f.user("Three").ID)

	got, err := f.signups.Reorder(f.ctx, f.host.ID, event.ID, []uint{s3.ID, s1.ID, s2.ID})
	require.NoError(t, err)
	assert.Equal(t, []uint{s3.ID, s1.ID, s2.ID}, ids(got))

	listed, err := f.signups.ListOrdered(f.ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{s3.ID, s1.ID, s2.ID}, ids(listed))
	assert.Equal(t, []int{1, 2, 3}, []int{listed[0].PerformanceOrder, listed[1].PerformanceOrder, listed[2].PerformanceOrder})
}

func TestReorder_IsAtomic(t *testing.T) {
	f := newFixture(t)
	event := f.openEvent(0)
	s1 := f.mustRegister(event.ID, f.user("One").ID)
	s2 := f.mustRegister(event.ID, f.user("Two").ID)
	s3 := f.mustRegister(event.ID, f.user("Three").ID)
	_, err := f.signups.Reorder(f.ctx, f.host.ID, event.ID, []uint{s1.ID, s2.ID, s3.ID})
	require.NoError(t, err)
	before, err := f.signups.ListOrdered(f.ctx, event.ID)
	require.NoError(t, err)

	f.signups.tx = failingTx{inner: f.store, failOn: 3}
	_, err = f.signups.Reorder(f.ctx, f.host.ID, event.ID, []uint{s3.ID, s1.ID, s2.ID})
	require.ErrorIs(t, err, errInjected)

	after, err := f.signups.ListOrdered(f.ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestReorder_OmittedSignupsKeepTheirOrder(t *testing.T) {
	f := newFixture(t)
	event := f.openEvent(0)
	s1 := f.mustRegister(event.ID, f.user("One").ID)
	s2 := f.mustRegister(event.ID, f.user("Two").ID)
	s3 := f.mustRegister(event.ID, f.user("Three").ID)
	_, err := f.signups.Reorder(f.ctx, f.host.ID, event.ID, []uint{s1.ID, s2.ID, s3.ID})
	require.NoError(t, err)

	_, err = f.signups.Reorder(f.ctx, f.host.ID, event.ID, []uint{s3.ID})
	require.NoError(t, err)

	// s1 and s3 both hold order 1 now; gaps and collisions are not compacted.
	assert.Equal(t, map[uint]int{s1.ID: 1, s2.ID: 2, s3.ID: 1}, f.orders(event.ID))
}

func TestReorder_IgnoresSignupsOfOtherEvents(t *testing.T) {
	f := newFixture(t)
	event := f.openEvent(0)
	other := f.openEvent(0)
	mine := f.mustRegister(event.ID, f.user("Mine").ID)
	foreign := f.mustRegister(other.ID, f.user("Foreign").ID)

	_, err := f.signups.Reorder(f.ctx, f.host.ID, event.ID, []uint{foreign.ID, mine.ID})
	require.NoError(t, err)

	assert.Equal(t, map[uint]int{mine.ID: 2}, f.orders(event.ID))
	assert.Equal(t, map[uint]int{foreign.ID: 0}, f.orders(other.ID))
}

func TestReorder_RejectsBadInput(t *testing.T) {
	f := newFixture(t)
	event := f.openEvent(0)
	s1 := f.mustRegister(event.ID, f.user("One").ID)

	_, err := f.signups.Reorder(f.ctx, f.host.ID, event.ID, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.signups.Reorder(f.ctx, f.host.ID, event.ID, []uint{s1.ID, s1.ID})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.signups.Reorder(f.ctx, f.user("Intruder").ID, event.ID, []uint{s1.ID})
	assert.ErrorIs(t, err, domain.ErrNotEventHost)
}

func TestListOrdered_NullsLastThenCreation(t *testing.T) {
	f := newFixture(t)
	event := f.openEvent(0)
	first := f.mustRegister(event.ID, f.user("First").ID)
	f.signups.now = func() time.Time { return f.now.Add(time.Minute) }
	second := f.mustRegister(event.ID, f.user("Second").ID)
	f.signups.now = func() time.Time { return f.now.Add(2 * time.Minute) }
	third := f.mustRegister(event.ID, f.user("Third").ID)

	_, err := f.signups.Reorder(f.ctx, f.host.ID, event.ID, []uint{third.ID})
	require.NoError(t, err)

	listed, err := f.signups.ListOrdered(f.ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{third.ID, first.ID, second.ID}, ids(listed))
}

func TestFinish_RoundTrip(t *testing.T) {
	f := newFixture(t)
	event := f.openEvent(0)
	signup := f.mustRegister(event.ID, f.user("Ana").ID)

	finished, err := f.signups.MarkFinished(f.ctx, f.host.ID, signup.ID)
	require.NoError(t, err)
	assert.True(t, finished.IsFinished)
	assert.Equal(t, f.now, finished.FinishedAt)

	later := f.now.Add(time.Hour)
	f.signups.now = func() time.Time { return later }
	again, err := f.signups.MarkFinished(f.ctx, f.host.ID, signup.ID)
	require.NoError(t, err)
	assert.Equal(t, later, again.FinishedAt)

	restored, err := f.signups.UnmarkFinished(f.ctx, f.host.ID, signup.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsFinished)
	assert.True(t, restored.FinishedAt.IsZero())

	stored, err := f.signups.GetSignup(f.ctx, signup.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsFinished)
	assert.True(t, stored.FinishedAt.IsZero())
}

func TestFinish_HostOnly(t *testing.T) {
	f := newFixture(t)
	event := f.openEvent(0)
	ana := f.user("Ana")
	signup := f.mustRegister(event.ID, ana.ID)

	_, err := f.signups.MarkFinished(f.ctx, ana.ID, signup.ID)

	assert.ErrorIs(t, err, domain.ErrNotEventHost)
}

// Several performers may be flagged current at once; nothing enforces a
// single current performer per event.
func TestSetCurrentPerformer_NotExclusive(t *testing.T) {
	f := newFixture(t)
	event := f.openEvent(0)
	a := f.mustRegister(event.ID, f.user("A").ID)
	b := f.mustRegister(event.ID, f.user("B").ID)

	_, err := f.signups.SetCurrentPerformer(f.ctx, f.host.ID, a.ID, true)
	require.NoError(t, err)
	_, err = f.signups.SetCurrentPerformer(f.ctx, f.host.ID, b.ID, true)
	require.NoError(t, err)

	listed, err := f.signups.ListOrdered(f.ctx, event.ID)
	require.NoError(t, err)
	assert.True(t, listed[0].IsCurrentPerformer)
	assert.True(t, listed[1].IsCurrentPerformer)

	cleared, err := f.signups.SetCurrentPerformer(f.ctx, f.host.ID, a.ID, false)
	require.NoError(t, err)
	assert.False(t, cleared.IsCurrentPerformer)
}

func TestAddManual_AppendsAfterMaxOrder(t *testing.T) {
	f := newFixture(t)
	event := f.openEvent(0)
	var listed []uint
	for i := 0; i < 4; i++ {
		listed = append(listed, f.mustRegister(event.ID, f.user("P").ID).ID)
	}
	_, err := f.signups.Reorder(f.ctx, f.host.ID, event.ID, listed)
	require.NoError(t, err)

	manual, err := f.signups.AddManual(f.ctx, f.host.ID, input.ManualPerformer{EventID: event.ID, PerformerName: "Walk-in"})
	require.NoError(t, err)

	assert.Equal(t, 5, manual.PerformanceOrder)
	assert.True(t, manual.IsManual())
	assert.Equal(t, domain.StatusConfirmed, manual.Status)
}

func TestAddManual_FirstGetsOrderOne(t *testing.T) {
	f := newFixture(t)
	event := f.openEvent(0)

	manual, err := f.signups.AddManual(f.ctx, f.host.ID, input.ManualPerformer{EventID: event.ID, PerformerName: "Walk-in"})
	require.NoError(t, err)

	assert.Equal(t, 1, manual.PerformanceOrder)
}

func TestAddManual_Validation(t *testing.T) {
	f := newFixture(t)
	event := f.openEvent(0)

	_, err := f.signups.AddManual(f.ctx, f.host.ID, input.ManualPerformer{EventID: event.ID, PerformerName: "  "})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.signups.AddManual(f.ctx, f.user("Ana").ID, input.ManualPerformer{EventID: event.ID, PerformerName: "X"})
	assert.ErrorIs(t, err, domain.ErrNotEventHost)
}

func TestListForUser(t *testing.T) {
	f := newFixture(t)
	ana := f.user("Ana")
	e1, e2 := f.openEvent(0), f.openEvent(0)
	f.mustRegister(e1.ID, ana.ID)
	f.mustRegister(e2.ID, ana.ID)
	f.mustRegister(e1.ID, f.user("Bob").ID)

	mine, err := f.signups.ListForUser(f.ctx, ana.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}
