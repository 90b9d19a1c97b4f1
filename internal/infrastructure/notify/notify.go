// Package notify composes output.Notifier implementations.
package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"openmic/internal/ports/output"
)

var (
	_ output.Notifier = Multi(nil)
	_ output.Notifier = (*Async)(nil)
	_ output.Notifier = Noop{}
)

// Multi delivers to every notifier and joins their errors.
type Multi []output.Notifier

func (m Multi) Notify(ctx context.Context, n output.Notification) error {
	var errs []error
	for _, notifier := range m {
		if err := notifier.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Noop drops every notification.
type Noop struct{}

func (Noop) Notify(context.Context, output.Notification) error { return nil }

// Async delivers in the background so request handlers never wait on SMTP or
// webhooks. Failures are logged, never returned.
type Async struct {
	next    output.Notifier
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewAsync(next output.Notifier, timeout time.Duration) *Async {
	return &Async{next: next, timeout: timeout}
}

func (a *Async) Notify(ctx context.Context, n output.Notification) error {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.timeout)
		defer cancel()
		if err := a.next.Notify(ctx, n); err != nil {
			slog.Error("notification failed", "kind", n.Kind, "recipients", len(n.Recipients), "error", err)
		}
	}()
	return nil
}

// Wait blocks until in-flight deliveries finish.
func (a *Async) Wait() {
	a.wg.Wait()
}
