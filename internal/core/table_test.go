package core

import (
	"context"
	"math/rand"
	"testing"
	"time"
)

// recorder collects notifications for assertions.
type recorder struct {
	got []Notification
}

func (r *recorder) Notify(_ context.Context, n Notification) {
	r.got = append(r.got, n)
}

func (r *recorder) last() Notification {
	if len(r.got) == 0 {
		return Notification{}
	}
	return r.got[len(r.got)-1]
}

func newActiveTable(n *recorder) *ActiveCardsTable {
	ids := NewIDSourceWithClock(fixedClock(time.UnixMilli(1_700_000_000_000)))
	return NewTable[ActiveCardRow, ActiveCardField](ids, NewActiveCardRow, MinRows, n)
}

func TestTable_InitialRows(t *testing.T) {
	tbl := newActiveTable(&recorder{})

	rows := tbl.Rows()
	if len(rows) != MinRows {
		t.Fatalf("initial rows = %d, want %d", len(rows), MinRows)
	}
	for _, r := range rows {
		if r.HasContent() || r.Attachment != nil {
			t.Errorf("initial row %d not blank: %+v", r.ID, r)
		}
	}
}

func TestTable_AddRow(t *testing.T) {
	rec := &recorder{}
	tbl := newActiveTable(rec)

	row := tbl.AddRow(context.Background())

	rows := tbl.Rows()
	if len(rows) != MinRows+1 {
		t.Fatalf("rows = %d, want %d", len(rows), MinRows+1)
	}
	if rows[len(rows)-1].ID != row.ID {
		t.Errorf("new row not appended at the end")
	}
	if got := rec.last(); got.Message != MsgRowAdded || got.Severity != SeveritySuccess {
		t.Errorf("notification = %+v, want success %q", got, MsgRowAdded)
	}
}

func TestTable_UpdateField(t *testing.T) {
	tbl := newActiveTable(&recorder{})
	id := tbl.Rows()[2].ID

	if !tbl.UpdateField(id, ActiveCardNumber, "A-17") {
		t.Fatal("UpdateField returned false for an existing row")
	}
	row, ok := tbl.Row(id)
	if !ok {
		t.Fatal("row vanished")
	}
	if row.Get(ActiveCardNumber) != "A-17" {
		t.Errorf("CardNumber = %q, want %q", row.CardNumber, "A-17")
	}
	if row.CardType != "" || row.Notes != "" {
		t.Errorf("other fields changed: %+v", row)
	}
}

func TestTable_UpdateFieldUnknownID(t *testing.T) {
	tbl := newActiveTable(&recorder{})
	before := tbl.Rows()

	if tbl.UpdateField(-1, ActiveCardNotes, "x") {
		t.Error("UpdateField returned true for an unknown id")
	}

	after := tbl.Rows()
	if len(after) != len(before) {
		t.Fatalf("row count changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("row %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestTable_SetAttachment(t *testing.T) {
	tbl := newActiveTable(&recorder{})
	id := tbl.Rows()[0].ID
	a := &Attachment{Name: "scan.pdf"}

	if !tbl.SetAttachment(id, a) {
		t.Fatal("SetAttachment returned false")
	}
	if row, _ := tbl.Row(id); row.AttachmentRef() != a {
		t.Errorf("attachment not stored")
	}

	tbl.SetAttachment(id, nil)
	if row, _ := tbl.Row(id); row.Attachment != nil {
		t.Errorf("attachment not cleared")
	}
}

// askingConfirmer remembers the prompt and gives a fixed answer.
type askingConfirmer struct {
	prompt string
	answer bool
}

func (c *askingConfirmer) Confirm(_ context.Context, prompt string) bool {
	c.prompt = prompt
	return c.answer
}

func TestTable_DeleteRow(t *testing.T) {
	ctx := context.Background()

	t.Run("declined changes nothing", func(t *testing.T) {
		rec := &recorder{}
		tbl := newActiveTable(rec)
		id := tbl.Rows()[0].ID

		declined := &askingConfirmer{}
		if tbl.DeleteRow(ctx, id, declined) {
			t.Error("DeleteRow returned true after decline")
		}
		if declined.prompt != PromptDeleteRow {
			t.Errorf("prompt = %q, want %q", declined.prompt, PromptDeleteRow)
		}
		if tbl.Len() != MinRows {
			t.Errorf("Len = %d, want %d", tbl.Len(), MinRows)
		}
		if len(rec.got) != 0 {
			t.Errorf("declined delete emitted %d notifications", len(rec.got))
		}
	})

	t.Run("confirmed removes the row", func(t *testing.T) {
		rec := &recorder{}
		tbl := newActiveTable(rec)
		id := tbl.Rows()[4].ID

		if !tbl.DeleteRow(ctx, id, Confirmed(true)) {
			t.Fatal("DeleteRow returned false")
		}
		if _, ok := tbl.Row(id); ok {
			t.Error("row still present")
		}
		if tbl.Len() != MinRows-1 {
			t.Errorf("Len = %d, want %d", tbl.Len(), MinRows-1)
		}
		if got := rec.last(); got.Message != MsgRowDeleted || got.Severity != SeverityError {
			t.Errorf("notification = %+v", got)
		}
	})

	t.Run("nil confirmer is a decline", func(t *testing.T) {
		tbl := newActiveTable(&recorder{})
		if tbl.DeleteRow(ctx, tbl.Rows()[0].ID, nil) {
			t.Error("DeleteRow with nil confirmer returned true")
		}
	})
}

func TestTable_DeleteKeepsOrder(t *testing.T) {
	tbl := newActiveTable(&recorder{})
	rows := tbl.Rows()

	tbl.DeleteRow(context.Background(), rows[1].ID, Confirmed(true))

	got := tbl.Rows()
	if got[0].ID != rows[0].ID || got[1].ID != rows[2].ID {
		t.Errorf("order not preserved after delete")
	}
}

func TestTable_IDsUniqueAcrossAddDelete(t *testing.T) {
	ctx := context.Background()
	tbl := newActiveTable(&recorder{})
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 300; i++ {
		rows := tbl.Rows()
		if len(rows) > 0 && rng.Intn(3) == 0 {
			tbl.DeleteRow(ctx, rows[rng.Intn(len(rows))].ID, Confirmed(true))
			continue
		}
		tbl.AddRow(ctx)
	}

	seen := make(map[int64]bool)
	for _, r := range tbl.Rows() {
		if seen[r.ID] {
			t.Fatalf("duplicate id %d", r.ID)
		}
		seen[r.ID] = true
	}
}

func TestTable_ReplaceAll(t *testing.T) {
	tbl := newActiveTable(&recorder{})

	t.Run("duplicate ids rejected", func(t *testing.T) {
		before := tbl.Rows()
		err := tbl.ReplaceAll([]ActiveCardRow{{ID: 1}, {ID: 1}})
		if err == nil {
			t.Fatal("expected ErrDuplicateRowID")
		}
		if len(tbl.Rows()) != len(before) {
			t.Error("table changed after rejected ReplaceAll")
		}
	})

	t.Run("swap", func(t *testing.T) {
		in := []ActiveCardRow{{ID: 10, CardType: "زائر"}, {ID: 11}}
		if err := tbl.ReplaceAll(in); err != nil {
			t.Fatalf("ReplaceAll: %v", err)
		}
		in[0].CardType = "changed by caller"

		rows := tbl.Rows()
		if len(rows) != 2 || rows[0].CardType != "زائر" {
			t.Errorf("rows = %+v", rows)
		}
	})
}

func TestTable_RowsIsSnapshot(t *testing.T) {
	tbl := newActiveTable(&recorder{})
	rows := tbl.Rows()
	rows[0].Notes = "mutated"

	if got, _ := tbl.Row(rows[0].ID); got.Notes != "" {
		t.Error("mutating a snapshot changed the table")
	}
}
