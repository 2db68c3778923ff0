package core

import (
	"context"
	"fmt"
	"sync"
)

// Row is the behaviour the table store needs from a register row.
// R is the concrete row type and F its field enum.
type Row[R any, F any] interface {
	RowID() int64
	AttachmentRef() *Attachment
	HasContent() bool
	Get(F) string
	With(F, string) R
	WithAttachment(*Attachment) R
}

// Confirmer asks the user to approve a destructive action.
// It blocks until the user answers.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// Confirmed is a Confirmer whose answer is already known, e.g. from a form
// that ran the browser prompt before submitting.
type Confirmed bool

// Confirm implements Confirmer.
func (c Confirmed) Confirm(context.Context, string) bool { return bool(c) }

// Table is the ordered row collection of one register.
// It is the only writer of its rows; callers get copies.
type Table[R Row[R, F], F any] struct {
	mu     sync.Mutex
	rows   []R
	ids    *IDSource
	blank  func(id int64) R
	notify Notifier
}

// NewTable creates a table pre-filled with initial blank rows.
func NewTable[R Row[R, F], F any](ids *IDSource, blank func(id int64) R, initial int, notify Notifier) *Table[R, F] {
	if notify == nil {
		notify = discardNotifier
	}
	t := &Table[R, F]{
		ids:    ids,
		blank:  blank,
		notify: notify,
	}
	t.rows = blankRows(ids, blank, initial)
	return t
}

// blankRows builds n empty rows with consecutive ids.
func blankRows[R any](ids *IDSource, blank func(int64) R, n int) []R {
	if n <= 0 {
		return nil
	}
	base := ids.Reserve(n)
	rows := make([]R, n)
	for i := range rows {
		rows[i] = blank(base + int64(i))
	}
	return rows
}

// AddRow appends a blank row with a fresh id and returns it.
func (t *Table[R, F]) AddRow(ctx context.Context) R {
	t.mu.Lock()
	row := t.blank(t.ids.Next())
	t.rows = append(t.rows, row)
	t.mu.Unlock()

	t.notify.Notify(ctx, success(MsgRowAdded))
	return row
}

// UpdateField sets one field on the row with the given id.
// Returns false and leaves the table unchanged if no row matches.
func (t *Table[R, F]) UpdateField(id int64, field F, value string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexOf(id)
	if i < 0 {
		return false
	}
	t.rows[i] = t.rows[i].With(field, value)
	return true
}

// SetAttachment replaces (or with nil, clears) the attachment of a row.
// Returns false if no row matches.
func (t *Table[R, F]) SetAttachment(id int64, a *Attachment) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexOf(id)
	if i < 0 {
		return false
	}
	t.rows[i] = t.rows[i].WithAttachment(a)
	return true
}

// DeleteRow removes a row after the confirmer approves.
// A declined prompt changes nothing and emits nothing.
func (t *Table[R, F]) DeleteRow(ctx context.Context, id int64, c Confirmer) bool {
	if c == nil || !c.Confirm(ctx, PromptDeleteRow) {
		return false
	}

	t.mu.Lock()
	i := t.indexOf(id)
	if i < 0 {
		t.mu.Unlock()
		return false
	}
	t.rows = append(t.rows[:i:i], t.rows[i+1:]...)
	t.mu.Unlock()

	t.notify.Notify(ctx, Notification{Message: MsgRowDeleted, Severity: SeverityError})
	return true
}

// ReplaceAll swaps the whole collection. Rows must carry distinct ids.
func (t *Table[R, F]) ReplaceAll(rows []R) error {
	seen := make(map[int64]struct{}, len(rows))
	for _, r := range rows {
		if _, dup := seen[r.RowID()]; dup {
			return fmt.Errorf("%w: %d", ErrDuplicateRowID, r.RowID())
		}
		seen[r.RowID()] = struct{}{}
	}

	next := make([]R, len(rows))
	copy(next, rows)

	t.mu.Lock()
	t.rows = next
	t.mu.Unlock()
	return nil
}

// Rows returns a snapshot of the collection in display order.
func (t *Table[R, F]) Rows() []R {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]R, len(t.rows))
	copy(out, t.rows)
	return out
}

// Row returns the row with the given id.
func (t *Table[R, F]) Row(id int64) (R, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexOf(id)
	if i < 0 {
		var zero R
		return zero, false
	}
	return t.rows[i], true
}

// Len returns the number of rows.
func (t *Table[R, F]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.rows)
}

// IDs returns a fresh-id source shared with this table.
func (t *Table[R, F]) IDs() *IDSource {
	return t.ids
}

// indexOf must be called with mu held.
func (t *Table[R, F]) indexOf(id int64) int {
	for i, r := range t.rows {
		if r.RowID() == id {
			return i
		}
	}
	return -1
}
