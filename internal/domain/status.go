package domain

// Signup statuses. Only confirmed signups count toward capacity and ordering.
const (
	StatusConfirmed = "confirmed"
	StatusWaitlist  = "waitlist"
	StatusCancelled = "cancelled"
)

// Event statuses, set manually by the host.
const (
	EventDraft     = "draft"
	EventPublished = "published"
	EventCancelled = "cancelled"
	EventCompleted = "completed"
)

// MaxCapacity bounds event and venue capacities; both are stored as INTEGER.
const MaxCapacity = 100000

// ValidEventStatus reports whether s is a known event status.
func ValidEventStatus(s string) bool {
	switch s {
	case EventDraft, EventPublished, EventCancelled, EventCompleted:
		return true
	}
	return false
}
