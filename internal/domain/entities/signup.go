package entities

import (
	"cmp"
	"slices"
	"time"
)

// Signup is a performer's registration for an event.
type Signup struct {
	ID                 uint
	EventID            uint
	UserID             uint // 0 = added manually by the host
	PerformerName      string
	PerformanceName    string
	PerformanceType    string
	Notes              string
	Status             string
	PerformanceOrder   int // 0 = not ordered yet
	IsCurrentPerformer bool
	IsFinished         bool
	FinishedAt         time.Time // zero = not finished
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsManual reports whether the signup was added by the host without a user account.
func (s *Signup) IsManual() bool {
	return s.UserID == 0
}

// HasOrder reports whether a performance order has been assigned.
func (s *Signup) HasOrder() bool {
	return s.PerformanceOrder > 0
}

// SortByPerformanceOrder sorts signups by performance order ascending,
// unordered signups last, ties broken by creation time.
func SortByPerformanceOrder(signups []Signup) {
	slices.SortStableFunc(signups, func(a, b Signup) int {
		switch {
		case a.HasOrder() && !b.HasOrder():
			return -1
		case !a.HasOrder() && b.HasOrder():
			return 1
		}
		if c := cmp.Compare(a.PerformanceOrder, b.PerformanceOrder); c != 0 {
			return c
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
}

// MaxPerformanceOrder returns the highest order assigned among signups, 0 if none.
func MaxPerformanceOrder(signups []Signup) int {
	highest := 0
	for _, s := range signups {
		highest = max(highest, s.PerformanceOrder)
	}
	return highest
}
