package core

import (
	"context"
	"sync"
	"time"
)

// Severity selects how a notification is styled.
type Severity string

const (
	SeveritySuccess Severity = "success"
	// SeverityError is also used for completed destructive actions such as
	// deleting a row, not only for failures.
	SeverityError Severity = "error"
)

// Notification is a single toast message.
type Notification struct {
	Message  string
	Severity Severity
	Code     string // support code, empty for plain confirmations
	At       time.Time
}

// Notifier receives user-facing notifications.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, n Notification)

// Notify implements Notifier.
func (f NotifierFunc) Notify(ctx context.Context, n Notification) {
	f(ctx, n)
}

// discardNotifier drops everything. Used when no sink is configured.
var discardNotifier = NotifierFunc(func(context.Context, Notification) {})

// DefaultNotifyDuration is how long a toast stays visible.
const DefaultNotifyDuration = 3 * time.Second

// Toasts holds the one notification currently shown to a session.
// A new notification replaces the old one immediately; the current one
// disappears once its display duration has elapsed.
type Toasts struct {
	mu       sync.Mutex
	current  *Notification
	duration time.Duration
	now      func() time.Time
}

// NewToasts creates a toast holder with the given display duration.
func NewToasts(duration time.Duration) *Toasts {
	if duration <= 0 {
		duration = DefaultNotifyDuration
	}
	return &Toasts{duration: duration, now: time.Now}
}

// Notify implements Notifier.
func (t *Toasts) Notify(_ context.Context, n Notification) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if n.At.IsZero() {
		n.At = t.now()
	}
	t.current = &n
}

// Current returns the visible notification, if any.
func (t *Toasts) Current() (Notification, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current == nil {
		return Notification{}, false
	}
	if t.now().Sub(t.current.At) >= t.duration {
		t.current = nil
		return Notification{}, false
	}
	return *t.current, true
}

// Dismiss clears the visible notification.
func (t *Toasts) Dismiss() {
	t.mu.Lock()
	t.current = nil
	t.mu.Unlock()
}

// Remaining reports how much longer the current notification is visible.
func (t *Toasts) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current == nil {
		return 0
	}
	left := t.duration - t.now().Sub(t.current.At)
	if left < 0 {
		return 0
	}
	return left
}

func success(msg string) Notification {
	return Notification{Message: msg, Severity: SeveritySuccess}
}

func failure(msg UserMessage) Notification {
	return Notification{Message: msg.Message, Severity: SeverityError, Code: msg.Code}
}
