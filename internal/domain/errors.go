package domain

import "errors"

// Kind groups domain errors by how a transport should surface them.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindRule
	KindUnauthorized
	KindForbidden
	KindConflict
)

// Error is a domain error with a stable machine-readable code.
type Error struct {
	code string
	kind Kind
	msg  string
}

func (e *Error) Error() string { return e.msg }

// Code returns the stable identifier used for translations and API payloads.
func (e *Error) Code() string { return e.code }

// Kind returns the error category.
func (e *Error) Kind() Kind { return e.kind }

func newError(kind Kind, code, msg string) *Error {
	return &Error{code: code, kind: kind, msg: msg}
}

// Domain errors.
var (
	ErrInternal           = newError(KindInternal, "internal", "internal error")
	ErrValidation         = newError(KindValidation, "validation_failed", "invalid request")
	ErrEventNotFound      = newError(KindNotFound, "event_not_found", "event not found")
	ErrVenueNotFound      = newError(KindNotFound, "venue_not_found", "venue not found")
	ErrSignupNotFound     = newError(KindNotFound, "signup_not_found", "signup not found")
	ErrUserNotFound       = newError(KindNotFound, "user_not_found", "user not found")
	ErrDuplicateSignup    = newError(KindRule, "duplicate_signup", "already signed up for this event")
	ErrEventFull          = newError(KindRule, "event_full", "event is full")
	ErrSignupsNotOpen     = newError(KindRule, "signups_not_open", "signups are not open yet")
	ErrSignupsClosed      = newError(KindRule, "signups_closed", "signups are closed")
	ErrCannotReduceSlots  = newError(KindRule, "cannot_reduce_slots", "max performers is below the confirmed signup count")
	ErrInvalidSignupDates = newError(KindValidation, "invalid_signup_window", "signup deadline is before signup opening")
	ErrUnauthorized       = newError(KindUnauthorized, "unauthorized", "missing or invalid token")
	ErrInvalidCredentials = newError(KindUnauthorized, "invalid_credentials", "invalid email or password")
	ErrNotEventHost       = newError(KindForbidden, "not_event_host", "only the event host can perform this action")
	ErrNotSignupOwner     = newError(KindForbidden, "not_signup_owner", "only the performer or the host can cancel this signup")
	ErrEmailTaken         = newError(KindConflict, "email_taken", "email already registered")
	ErrInvalidResetToken  = newError(KindRule, "invalid_reset_token", "reset token is invalid or expired")
)

// Code extracts the domain error code from err, looking through wrapped errors.
// It returns "" when err is not a domain error.
func Code(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.code
	}
	return ""
}

// KindOf returns the kind of the domain error wrapped by err, KindInternal otherwise.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.kind
	}
	return KindInternal
}
