package core

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of action being audited.
type AuditAction string

const (
	ActionRowAdd        AuditAction = "row_add"
	ActionCellEdit      AuditAction = "cell_edit"
	ActionAttachmentSet AuditAction = "attachment_set"
	ActionRowDelete     AuditAction = "row_delete"
	ActionImport        AuditAction = "import"
	ActionExport        AuditAction = "export"
)

// AuditSeverity represents the severity level of an audit entry.
type AuditSeverity string

const (
	SeverityLow      AuditSeverity = "low"
	SeverityMedium   AuditSeverity = "medium"
	SeverityHigh     AuditSeverity = "high"
	SeverityCritical AuditSeverity = "critical"
)

// AuditEntry represents a single audit log entry.
type AuditEntry struct {
	ID           string        `json:"id"`
	Action       AuditAction   `json:"action"`
	Severity     AuditSeverity `json:"severity"`
	Register     Register      `json:"register"`
	SessionID    string        `json:"sessionId,omitempty"`
	IPAddress    string        `json:"ipAddress,omitempty"`
	UserAgent    string        `json:"userAgent,omitempty"`
	RowID        int64         `json:"rowId,omitempty"`
	Field        string        `json:"field,omitempty"`
	OldValue     string        `json:"oldValue,omitempty"`
	NewValue     string        `json:"newValue,omitempty"`
	RowsAffected int           `json:"rowsAffected,omitempty"`
	FileName     string        `json:"fileName,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// AuditLogParams contains parameters for creating an audit log entry.
// Session, IP and user agent are taken from the context.
type AuditLogParams struct {
	Action       AuditAction
	Register     Register
	RowID        int64
	Field        string
	OldValue     string
	NewValue     string
	RowsAffected int
	FileName     string
}

// AuditSink stores audit entries. Recent filters by session before applying
// limit; an empty sessionID matches every session.
type AuditSink interface {
	Record(ctx context.Context, e AuditEntry) error
	Recent(ctx context.Context, sessionID string, limit int) ([]AuditEntry, error)
}

// determineSeverity returns the appropriate severity for an action.
func determineSeverity(action AuditAction) AuditSeverity {
	switch action {
	case ActionImport:
		return SeverityCritical
	case ActionRowDelete:
		return SeverityHigh
	case ActionExport, ActionRowAdd:
		return SeverityLow
	default:
		return SeverityMedium
	}
}

// newAuditEntry fills in id, severity, time and request metadata.
func newAuditEntry(ctx context.Context, p AuditLogParams) AuditEntry {
	return AuditEntry{
		ID:           uuid.NewString(),
		Action:       p.Action,
		Severity:     determineSeverity(p.Action),
		Register:     p.Register,
		SessionID:    SessionIDFromContext(ctx),
		IPAddress:    GetIPAddressFromContext(ctx),
		UserAgent:    GetUserAgentFromContext(ctx),
		RowID:        p.RowID,
		Field:        p.Field,
		OldValue:     p.OldValue,
		NewValue:     p.NewValue,
		RowsAffected: p.RowsAffected,
		FileName:     p.FileName,
		CreatedAt:    time.Now().UTC(),
	}
}

// Auditor records entries to a sink. Sink failures are logged and never
// reach the user: the edit already happened.
type Auditor struct {
	sink AuditSink
}

// NewAuditor creates an auditor. A nil sink uses an in-memory log.
func NewAuditor(sink AuditSink) *Auditor {
	if sink == nil {
		sink = NewMemoryAuditLog(DefaultAuditCapacity)
	}
	return &Auditor{sink: sink}
}

// Log records one entry.
func (a *Auditor) Log(ctx context.Context, p AuditLogParams) {
	e := newAuditEntry(ctx, p)
	if err := a.sink.Record(ctx, e); err != nil {
		slog.WarnContext(ctx, "audit write failed",
			"action", e.Action,
			"register", e.Register,
			"row", e.RowID,
			"error", err,
		)
	}
}

// Recent returns the newest entries of one session, newest first.
// An empty sessionID returns entries of every session.
func (a *Auditor) Recent(ctx context.Context, sessionID string, limit int) ([]AuditEntry, error) {
	return a.sink.Recent(ctx, sessionID, limit)
}

// DefaultAuditCapacity is the size of the in-memory audit ring.
const DefaultAuditCapacity = 1000

// DefaultHistoryLimit is the number of entries Recent returns for limit <= 0.
const DefaultHistoryLimit = 50

// MemoryAuditLog keeps the most recent entries in a fixed ring.
type MemoryAuditLog struct {
	mu      sync.Mutex
	entries []AuditEntry
	next    int
	full    bool
}

// NewMemoryAuditLog creates a ring holding up to capacity entries.
func NewMemoryAuditLog(capacity int) *MemoryAuditLog {
	if capacity <= 0 {
		capacity = DefaultAuditCapacity
	}
	return &MemoryAuditLog{entries: make([]AuditEntry, capacity)}
}

// Record implements AuditSink.
func (m *MemoryAuditLog) Record(_ context.Context, e AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[m.next] = e
	m.next = (m.next + 1) % len(m.entries)
	if m.next == 0 {
		m.full = true
	}
	return nil
}

// Recent implements AuditSink.
func (m *MemoryAuditLog) Recent(_ context.Context, sessionID string, limit int) ([]AuditEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	size := m.next
	if m.full {
		size = len(m.entries)
	}

	out := make([]AuditEntry, 0, min(limit, size))
	for i := 0; i < size && len(out) < limit; i++ {
		e := m.entries[(m.next-1-i+len(m.entries))%len(m.entries)]
		if sessionID != "" && e.SessionID != sessionID {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
