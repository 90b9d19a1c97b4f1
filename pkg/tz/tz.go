package tz

import (
	"log/slog"
	"time"
)

// Load returns the named IANA location (e.g. "Europe/Paris"), or UTC when
// the name is empty or unknown to the system tz database.
func Load(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		slog.Warn("tz: unknown location, using UTC", "name", name, "error", err)
		return time.UTC
	}
	return loc
}

// Format renders t in loc with layout, "" for the zero time.
func Format(t time.Time, loc *time.Location, layout string) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format(layout)
}
