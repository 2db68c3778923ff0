package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

const createAuditTable = `
CREATE TABLE IF NOT EXISTS card_audit_log (
	id            UUID PRIMARY KEY,
	action        TEXT NOT NULL,
	severity      TEXT NOT NULL,
	register      TEXT NOT NULL,
	session_id    TEXT,
	ip_address    TEXT,
	user_agent    TEXT,
	row_id        BIGINT,
	field         TEXT,
	old_value     TEXT,
	new_value     TEXT,
	rows_affected INTEGER,
	file_name     TEXT,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const insertAuditEntry = `
INSERT INTO card_audit_log (
	id, action, severity, register, session_id, ip_address, user_agent,
	row_id, field, old_value, new_value, rows_affected, file_name, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

const selectRecentAudit = `
SELECT id::text, action, severity, register, session_id, ip_address, user_agent,
	row_id, field, old_value, new_value, rows_affected, file_name, created_at
FROM card_audit_log
WHERE $1::text = '' OR session_id = $1::text
ORDER BY created_at DESC
LIMIT $2`

// PgAuditLog writes audit entries to PostgreSQL.
// It only ever stores operation metadata; register contents are not saved.
type PgAuditLog struct {
	db DBTX
}

// NewPgAuditLog creates a Postgres-backed audit sink.
func NewPgAuditLog(db DBTX) *PgAuditLog {
	return &PgAuditLog{db: db}
}

// EnsureSchema creates the audit table if it does not exist.
func (p *PgAuditLog) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, createAuditTable); err != nil {
		return fmt.Errorf("create audit table: %w", err)
	}
	return nil
}

// Record implements AuditSink.
func (p *PgAuditLog) Record(ctx context.Context, e AuditEntry) error {
	_, err := p.db.Exec(ctx, insertAuditEntry,
		e.ID,
		string(e.Action),
		string(e.Severity),
		string(e.Register),
		toPgText(e.SessionID),
		toPgText(e.IPAddress),
		toPgText(e.UserAgent),
		toPgInt8(e.RowID),
		toPgText(e.Field),
		toPgText(e.OldValue),
		toPgText(e.NewValue),
		toPgInt4(e.RowsAffected),
		toPgText(e.FileName),
		pgtype.Timestamptz{Time: e.CreatedAt, Valid: true},
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// Recent implements AuditSink.
func (p *PgAuditLog) Recent(ctx context.Context, sessionID string, limit int) ([]AuditEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	rows, err := p.db.Query(ctx, selectRecentAudit, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var (
			e                                  AuditEntry
			action, severity, register         string
			session, ip, ua, field, oldV, newV pgtype.Text
			fileName                           pgtype.Text
			rowID                              pgtype.Int8
			affected                           pgtype.Int4
			createdAt                          pgtype.Timestamptz
		)
		if err := rows.Scan(&e.ID, &action, &severity, &register, &session, &ip, &ua,
			&rowID, &field, &oldV, &newV, &affected, &fileName, &createdAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		e.Action = AuditAction(action)
		e.Severity = AuditSeverity(severity)
		e.Register = Register(register)
		e.SessionID = session.String
		e.IPAddress = ip.String
		e.UserAgent = ua.String
		e.RowID = rowID.Int64
		e.Field = field.String
		e.OldValue = oldV.String
		e.NewValue = newV.String
		e.RowsAffected = int(affected.Int32)
		e.FileName = fileName.String
		e.CreatedAt = createdAt.Time
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read audit log: %w", err)
	}
	return entries, nil
}

// Helper functions for type conversion

func toPgText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

func toPgInt4(i int) pgtype.Int4 {
	if i == 0 {
		return pgtype.Int4{Valid: false}
	}
	return pgtype.Int4{Int32: int32(i), Valid: true}
}

func toPgInt8(i int64) pgtype.Int8 {
	if i == 0 {
		return pgtype.Int8{Valid: false}
	}
	return pgtype.Int8{Int64: i, Valid: true}
}
