package core

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// fakeDB records the statements it is given and answers queries from rows.
type fakeDB struct {
	execSQL   []string
	execArgs  [][]any
	execErr   error
	querySQL  string
	queryArgs []any
	queryErr  error
	rows      [][]any
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	f.execSQL = append(f.execSQL, sql)
	f.execArgs = append(f.execArgs, args)
	return pgconn.CommandTag{}, f.execErr
}

func (f *fakeDB) Query(_ context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	f.querySQL = sql
	f.queryArgs = args
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return &fakeRows{data: f.rows, pos: -1}, nil
}

func (f *fakeDB) QueryRow(context.Context, string, ...interface{}) pgx.Row {
	return nil
}

type fakeRows struct {
	data   [][]any
	pos    int
	closed bool
}

func (r *fakeRows) Close() { r.closed = true }
func (r *fakeRows) Err() error { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte { return nil }
func (r *fakeRows) Conn() *pgx.Conn { return nil }

func (r *fakeRows) Next() bool {
	r.pos++
	return r.pos < len(r.data)
}

func (r *fakeRows) Values() ([]any, error) {
	return r.data[r.pos], nil
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.pos]
	if len(dest) != len(row) {
		return errors.New("column count mismatch")
	}
	for i, v := range row {
		reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(v))
	}
	return nil
}

func TestPgAuditLog_EnsureSchema(t *testing.T) {
	db := &fakeDB{}
	if err := NewPgAuditLog(db).EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	if len(db.execSQL) != 1 || !strings.Contains(db.execSQL[0], "CREATE TABLE IF NOT EXISTS card_audit_log") {
		t.Errorf("unexpected statements: %q", db.execSQL)
	}

	db = &fakeDB{execErr: errors.New("permission denied")}
	err := NewPgAuditLog(db).EnsureSchema(context.Background())
	if err == nil || !strings.Contains(err.Error(), "create audit table") {
		t.Errorf("EnsureSchema error = %v", err)
	}
}

func TestPgAuditLog_Record(t *testing.T) {
	db := &fakeDB{}
	at := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	e := AuditEntry{
		ID:        "7d0c8f2e-1b7a-4a52-9a44-3c2f7c1d9e10",
		Action:    ActionCellEdit,
		Severity:  SeverityMedium,
		Register:  Recipients,
		SessionID: "sess-1",
		RowID:     4,
		Field:     "notes",
		NewValue:  "x",
		CreatedAt: at,
	}
	if err := NewPgAuditLog(db).Record(context.Background(), e); err != nil {
		t.Fatalf("Record: %v", err)
	}

	args := db.execArgs[0]
	if len(args) != 14 {
		t.Fatalf("insert got %d args, want 14", len(args))
	}
	if args[1] != string(ActionCellEdit) {
		t.Errorf("action arg = %v", args[1])
	}
	if got := args[4].(pgtype.Text); !got.Valid || got.String != "sess-1" {
		t.Errorf("session arg = %+v", got)
	}
	if got := args[5].(pgtype.Text); got.Valid {
		t.Errorf("empty ip should be NULL, got %+v", got)
	}
	if got := args[7].(pgtype.Int8); !got.Valid || got.Int64 != 4 {
		t.Errorf("row arg = %+v", got)
	}
	if got := args[11].(pgtype.Int4); got.Valid {
		t.Errorf("zero rows_affected should be NULL, got %+v", got)
	}
	if got := args[13].(pgtype.Timestamptz); !got.Time.Equal(at) {
		t.Errorf("created_at arg = %+v", got)
	}

	db.execErr = errors.New("connection reset")
	if err := NewPgAuditLog(db).Record(context.Background(), e); err == nil || !errors.Is(err, db.execErr) {
		t.Errorf("Record error = %v, want wrapped exec error", err)
	}
}

func TestPgAuditLog_RecentFiltersBySession(t *testing.T) {
	at := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	db := &fakeDB{rows: [][]any{{
		"7d0c8f2e-1b7a-4a52-9a44-3c2f7c1d9e10",
		string(ActionImport),
		string(SeverityCritical),
		string(ActiveCards),
		pgtype.Text{String: "sess-a", Valid: true},
		pgtype.Text{String: "10.0.0.7", Valid: true},
		pgtype.Text{},
		pgtype.Int8{},
		pgtype.Text{},
		pgtype.Text{},
		pgtype.Text{},
		pgtype.Int4{Int32: 3, Valid: true},
		pgtype.Text{String: "cards.xlsx", Valid: true},
		pgtype.Timestamptz{Time: at, Valid: true},
	}}}

	got, err := NewPgAuditLog(db).Recent(context.Background(), "sess-a", 25)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if !strings.Contains(db.querySQL, "session_id = $1") {
		t.Errorf("query does not filter by session: %s", db.querySQL)
	}
	if len(db.queryArgs) != 2 || db.queryArgs[0] != "sess-a" || db.queryArgs[1] != 25 {
		t.Errorf("query args = %v, want [sess-a 25]", db.queryArgs)
	}
	if len(got) != 1 {
		t.Fatalf("Recent returned %d entries", len(got))
	}
	e := got[0]
	if e.Action != ActionImport || e.Register != ActiveCards || e.SessionID != "sess-a" {
		t.Errorf("entry = %+v", e)
	}
	if e.RowsAffected != 3 || e.FileName != "cards.xlsx" || !e.CreatedAt.Equal(at) {
		t.Errorf("entry = %+v", e)
	}
	if e.UserAgent != "" || e.RowID != 0 {
		t.Errorf("NULL columns should map to zero values: %+v", e)
	}
}

func TestPgAuditLog_RecentDefaultsAndErrors(t *testing.T) {
	db := &fakeDB{}
	if _, err := NewPgAuditLog(db).Recent(context.Background(), "", 0); err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if db.queryArgs[0] != "" || db.queryArgs[1] != DefaultHistoryLimit {
		t.Errorf("query args = %v, want all sessions with default limit", db.queryArgs)
	}

	db.queryErr = errors.New("relation does not exist")
	_, err := NewPgAuditLog(db).Recent(context.Background(), "sess-a", 5)
	if err == nil || !errors.Is(err, db.queryErr) || !strings.Contains(err.Error(), "query audit log") {
		t.Errorf("Recent error = %v", err)
	}
}
