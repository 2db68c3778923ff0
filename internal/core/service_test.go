package core

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
)

// fakeCodec keeps the last written sheet and returns canned records.
type fakeCodec struct {
	written  *Sheet
	records  []Record
	readErr  error
	writeErr error
}

func (f *fakeCodec) Write(w io.Writer, s Sheet) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.written = &s
	_, err := w.Write([]byte("xlsx"))
	return err
}

func (f *fakeCodec) Read(io.ReaderAt, int64) ([]Record, error) {
	return f.records, f.readErr
}

func newTestService(codec SheetCodec) (*Service, *Workspace, *MemoryAuditLog) {
	mem := NewMemoryAuditLog(100)
	svc := NewService(NewSessionStore(WorkspaceOptions{}), codec, NewTransferLimiter(1, 0), NewAuditor(mem), ServiceConfig{})
	ws, _ := svc.Sessions().Open("")
	return svc, ws, mem
}

func toast(t *testing.T, ws *Workspace) Notification {
	t.Helper()
	n, ok := ws.Toasts.Current()
	if !ok {
		t.Fatal("expected a visible toast")
	}
	return n
}

func TestService_UpdateField(t *testing.T) {
	ctx := context.Background()
	svc, ws, mem := newTestService(&fakeCodec{})
	id := ws.Recipients.Rows()[0].ID

	if err := svc.UpdateField(ctx, ws, Recipients, id, "recipientName", "ليلى"); err != nil {
		t.Fatalf("UpdateField: %v", err)
	}
	row, _ := ws.Recipients.Row(id)
	if row.RecipientName != "ليلى" {
		t.Errorf("RecipientName = %q", row.RecipientName)
	}

	entries, _ := mem.Recent(ctx, "", 1)
	if len(entries) != 1 || entries[0].Action != ActionCellEdit || entries[0].NewValue != "ليلى" {
		t.Errorf("audit = %+v", entries)
	}

	err := svc.UpdateField(ctx, ws, ActiveCards, ws.Active.Rows()[0].ID, "recipientName", "x")
	if !errors.Is(err, ErrUnknownField) {
		t.Errorf("err = %v, want ErrUnknownField", err)
	}
	if toast(t, ws).Code != "REG002" {
		t.Error("unknown field should show REG002")
	}

	if err := svc.UpdateField(ctx, ws, Recipients, -5, "notes", "x"); err != nil {
		t.Errorf("unknown row id should be a silent no-op, got %v", err)
	}
}

func TestService_AddAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, ws, _ := newTestService(&fakeCodec{})

	id, err := svc.AddRow(ctx, ws, ActiveCards)
	if err != nil {
		t.Fatalf("AddRow: %v", err)
	}
	if toast(t, ws).Message != MsgRowAdded {
		t.Error("missing add toast")
	}

	removed, err := svc.DeleteRow(ctx, ws, ActiveCards, id, Confirmed(false))
	if err != nil || removed {
		t.Fatalf("declined delete: removed=%v err=%v", removed, err)
	}
	removed, _ = svc.DeleteRow(ctx, ws, ActiveCards, id, Confirmed(true))
	if !removed {
		t.Fatal("confirmed delete did not remove the row")
	}
	if n := toast(t, ws); n.Message != MsgRowDeleted || n.Severity != SeverityError {
		t.Errorf("delete toast = %+v", n)
	}

	if _, err := svc.AddRow(ctx, ws, Register("bogus")); !errors.Is(err, ErrUnknownRegister) {
		t.Errorf("err = %v, want ErrUnknownRegister", err)
	}
}

func TestService_SetAttachment(t *testing.T) {
	ctx := context.Background()
	svc, ws, _ := newTestService(&fakeCodec{})
	id := ws.Active.Rows()[0].ID

	err := svc.SetAttachment(ctx, ws, ActiveCards, id, FileUpload{Name: "virus.exe", Data: []byte("MZ")})
	if !errors.Is(err, ErrUnsupportedFile) {
		t.Errorf("err = %v, want ErrUnsupportedFile", err)
	}

	big := make([]byte, DefaultMaxAttachmentSize+1)
	err = svc.SetAttachment(ctx, ws, ActiveCards, id, FileUpload{Name: "big.pdf", Data: big})
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("err = %v, want ErrFileTooLarge", err)
	}

	if err := svc.SetAttachment(ctx, ws, ActiveCards, id, FileUpload{Name: "Scan.PDF", ContentType: "application/pdf", Data: []byte("%PDF")}); err != nil {
		t.Fatalf("SetAttachment: %v", err)
	}
	a, err := svc.Attachment(ws, ActiveCards, id)
	if err != nil {
		t.Fatalf("Attachment: %v", err)
	}
	if a.Name != "Scan.PDF" || a.Size != 4 || a.ID == "" {
		t.Errorf("attachment = %+v", a)
	}

	if err := svc.SetAttachment(ctx, ws, ActiveCards, id, FileUpload{}); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := svc.Attachment(ws, ActiveCards, id); !errors.Is(err, ErrRowNotFound) {
		t.Errorf("cleared attachment still found: %v", err)
	}
}

func TestService_SetAttachmentUnknownRowIsNoop(t *testing.T) {
	ctx := context.Background()
	svc, ws, mem := newTestService(&fakeCodec{})

	uploads := []FileUpload{
		{Name: "scan.pdf", ContentType: "application/pdf", Data: []byte("%PDF")},
		{},
	}
	for _, reg := range []Register{ActiveCards, Recipients} {
		for _, f := range uploads {
			if err := svc.SetAttachment(ctx, ws, reg, 424242, f); err != nil {
				t.Errorf("SetAttachment(%s, %q) = %v, want nil", reg, f.Name, err)
			}
		}
	}
	if n, ok := ws.Toasts.Current(); ok {
		t.Errorf("unexpected toast %+v", n)
	}
	if entries, _ := mem.Recent(ctx, "", 10); len(entries) != 0 {
		t.Errorf("unexpected audit entries %+v", entries)
	}
}

func TestService_Export(t *testing.T) {
	ctx := context.Background()
	codec := &fakeCodec{}
	svc, ws, _ := newTestService(codec)
	ws.Active.UpdateField(ws.Active.Rows()[0].ID, ActiveCardType, "زائر")

	name, data, err := svc.Export(ctx, ws, ActiveCards)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if name != "Active_Cards.xlsx" || string(data) != "xlsx" {
		t.Errorf("Export = %q, %q", name, data)
	}
	if codec.written == nil || len(codec.written.Records) != 1 {
		t.Errorf("written sheet = %+v", codec.written)
	}
	if toast(t, ws).Message != MsgExported {
		t.Error("missing export toast")
	}

	codec.writeErr = errors.New("disk full")
	if _, _, err := svc.Export(ctx, ws, ActiveCards); !errors.Is(err, ErrExportFailed) {
		t.Errorf("err = %v, want ErrExportFailed", err)
	}
	if toast(t, ws).Code != "EXP001" {
		t.Error("export failure should show EXP001")
	}
}

func TestService_Import(t *testing.T) {
	ctx := context.Background()
	file := bytes.NewReader([]byte("ignored by the fake codec"))

	t.Run("three records become fifteen rows", func(t *testing.T) {
		codec := &fakeCodec{records: []Record{
			{HeaderRecipientName: TextCell("أ")},
			{HeaderRecipientName: TextCell("ب")},
			{HeaderRecipientName: TextCell("ج")},
		}}
		svc, ws, mem := newTestService(codec)

		if err := svc.Import(ctx, ws, Recipients, "list.xlsx", file, file.Size()); err != nil {
			t.Fatalf("Import: %v", err)
		}
		rows := ws.Recipients.Rows()
		if len(rows) != MinRows || rows[2].RecipientName != "ج" {
			t.Errorf("rows = %d, third name %q", len(rows), rows[2].RecipientName)
		}
		if toast(t, ws).Message != MsgImported {
			t.Error("missing import toast")
		}
		if ws.Active.Len() != MinRows {
			t.Error("import touched the other register")
		}
		entries, _ := mem.Recent(ctx, "", 1)
		if entries[0].Action != ActionImport || entries[0].RowsAffected != 3 {
			t.Errorf("audit = %+v", entries[0])
		}
	})

	t.Run("empty file leaves table unchanged", func(t *testing.T) {
		svc, ws, _ := newTestService(&fakeCodec{})
		ws.Active.UpdateField(ws.Active.Rows()[0].ID, ActiveCardNotes, "keep")
		before := ws.Active.Rows()

		err := svc.Import(ctx, ws, ActiveCards, "empty.xlsx", file, file.Size())
		if !errors.Is(err, ErrEmptyImport) {
			t.Fatalf("err = %v, want ErrEmptyImport", err)
		}
		after := ws.Active.Rows()
		if len(after) != len(before) || after[0].Notes != "keep" {
			t.Error("table changed by an empty import")
		}
		if n := toast(t, ws); n.Message != "الملف فارغ أو لا يحتوي على بيانات صالحة" {
			t.Errorf("toast = %q", n.Message)
		}
	})

	t.Run("unreadable file", func(t *testing.T) {
		svc, ws, _ := newTestService(&fakeCodec{readErr: errors.New("zip: not a valid zip file")})
		err := svc.Import(ctx, ws, ActiveCards, "old.xls", file, file.Size())
		if !errors.Is(err, ErrMalformedImport) {
			t.Fatalf("err = %v, want ErrMalformedImport", err)
		}
		if toast(t, ws).Code != "IMP002" {
			t.Error("expected IMP002 toast")
		}
	})

	t.Run("wrong extension", func(t *testing.T) {
		svc, ws, _ := newTestService(&fakeCodec{})
		if err := svc.Import(ctx, ws, ActiveCards, "list.csv", file, file.Size()); !errors.Is(err, ErrUnsupportedFile) {
			t.Errorf("err = %v, want ErrUnsupportedFile", err)
		}
	})

	t.Run("no file", func(t *testing.T) {
		svc, ws, _ := newTestService(&fakeCodec{})
		if err := svc.Import(ctx, ws, ActiveCards, "", nil, 0); !errors.Is(err, ErrNoFile) {
			t.Errorf("err = %v, want ErrNoFile", err)
		}
	})

	t.Run("busy", func(t *testing.T) {
		svc, ws, _ := newTestService(&fakeCodec{records: []Record{{HeaderNotes: TextCell("x")}}})
		if err := svc.Limiter().Acquire(ctx); err != nil {
			t.Fatalf("could not take the only slot: %v", err)
		}
		defer svc.Limiter().Release()

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		if err := svc.Import(cctx, ws, ActiveCards, "a.xlsx", file, file.Size()); err == nil {
			t.Error("import ran without a transfer slot")
		}
	})
}
