package output

import (
	"context"

	"openmic/internal/domain/entities"
)

// Notification kinds.
const (
	NotifyInvitation      = "invitation"
	NotifyReminder        = "reminder"
	NotifyPasswordReset   = "password_reset"
	NotifySignupCreated   = "signup_created"
	NotifySignupCancelled = "signup_cancelled"
)

// Notification is a message about an event or an account. Fields unused by a
// kind are left empty.
type Notification struct {
	Kind       string
	Locale     string
	Recipients []string
	Event      *entities.Event
	Venue      *entities.Venue
	Signup     *entities.Signup
	Token      string
	Message    string
}

// Notifier delivers notifications. Implementations ignore kinds they do not handle.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
