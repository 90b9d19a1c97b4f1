package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"openmic/internal/domain"
)

func TestCheckSignupWindow(t *testing.T) {
	opens := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	deadline := opens.Add(48 * time.Hour)
	event := Event{SignupOpens: opens, SignupDeadline: deadline}

	tests := []struct {
		name string
		now  time.Time
		want error
	}{
		{"before opening", opens.Add(-time.Second), domain.ErrSignupsNotOpen},
		{"at opening", opens, nil},
		{"inside window", opens.Add(time.Hour), nil},
		{"at deadline", deadline, nil},
		{"after deadline", deadline.Add(time.Second), domain.ErrSignupsClosed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, event.CheckSignupWindow(tt.now))
		})
	}

	assert.NoError(t, (&Event{}).CheckSignupWindow(opens), "unset window is always open")
}

func TestIsFull(t *testing.T) {
	assert.False(t, (&Event{MaxPerformers: 0}).IsFull(1000))
	assert.False(t, (&Event{MaxPerformers: 2}).IsFull(1))
	assert.True(t, (&Event{MaxPerformers: 2}).IsFull(2))
}

func TestIsHost(t *testing.T) {
	e := Event{HostID: 7}
	assert.True(t, e.IsHost(7))
	assert.False(t, e.IsHost(8))
	assert.False(t, (&Event{}).IsHost(0))
}

func TestSortByPerformanceOrder(t *testing.T) {
	t0 := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	signups := []Signup{
		{ID: 1, CreatedAt: t0.Add(2 * time.Minute)},
		{ID: 2, PerformanceOrder: 2, CreatedAt: t0},
		{ID: 3, CreatedAt: t0},
		{ID: 4, PerformanceOrder: 1, CreatedAt: t0.Add(time.Hour)},
		{ID: 5, PerformanceOrder: 1, CreatedAt: t0},
	}

	SortByPerformanceOrder(signups)

	got := make([]uint, len(signups))
	for i, s := range signups {
		got[i] = s.ID
	}
	assert.Equal(t, []uint{5, 4, 2, 3, 1}, got)
}

func TestMaxPerformanceOrder(t *testing.T) {
	assert.Zero(t, MaxPerformanceOrder(nil))
	assert.Equal(t, 4, MaxPerformanceOrder([]Signup{{PerformanceOrder: 2}, {}, {PerformanceOrder: 4}}))
}
