package core

import (
	"context"
	"sync"
	"time"
)

// ActiveCardsTable is the store for the active cards register.
type ActiveCardsTable = Table[ActiveCardRow, ActiveCardField]

// RecipientsTable is the store for the recipients register.
type RecipientsTable = Table[RecipientRow, RecipientField]

// Workspace is everything one browser session edits: both registers, the
// selected tab and the visible toast. Nothing in it outlives the session.
type Workspace struct {
	ID         string
	Active     *ActiveCardsTable
	Recipients *RecipientsTable
	Toasts     *Toasts

	mu       sync.Mutex
	current  Register
	lastSeen time.Time
	now      func() time.Time
}

// WorkspaceOptions tune a new workspace. Zero values use defaults.
type WorkspaceOptions struct {
	NotifyDuration time.Duration
	Clock          func() time.Time
}

// NewWorkspace creates a workspace with MinRows blank rows per register.
func NewWorkspace(id string, opts WorkspaceOptions) *Workspace {
	now := opts.Clock
	if now == nil {
		now = time.Now
	}

	toasts := NewToasts(opts.NotifyDuration)
	toasts.now = now
	ids := NewIDSourceWithClock(now)

	return &Workspace{
		ID:         id,
		Active:     NewTable[ActiveCardRow, ActiveCardField](ids, NewActiveCardRow, MinRows, toasts),
		Recipients: NewTable[RecipientRow, RecipientField](ids, NewRecipientRow, MinRows, toasts),
		Toasts:     toasts,
		current:    DefaultRegister,
		lastSeen:   now(),
		now:        now,
	}
}

// Notify implements Notifier by showing a toast.
func (w *Workspace) Notify(ctx context.Context, n Notification) {
	w.Toasts.Notify(ctx, n)
}

// Current returns the selected tab.
func (w *Workspace) Current() Register {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Select switches the selected tab.
func (w *Workspace) Select(r Register) {
	w.mu.Lock()
	w.current = r
	w.mu.Unlock()
}

// Touch records activity on the workspace.
func (w *Workspace) Touch() {
	w.mu.Lock()
	w.lastSeen = w.now()
	w.mu.Unlock()
}

// IdleFor reports how long the workspace has been unused.
func (w *Workspace) IdleFor() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.now().Sub(w.lastSeen)
}

// Attachment finds the attachment of a row in the given register.
func (w *Workspace) Attachment(reg Register, id int64) (*Attachment, bool) {
	switch reg {
	case ActiveCards:
		if row, ok := w.Active.Row(id); ok && row.Attachment != nil {
			return row.Attachment, true
		}
	case Recipients:
		if row, ok := w.Recipients.Row(id); ok && row.Attachment != nil {
			return row.Attachment, true
		}
	}
	return nil, false
}
