package core

import (
	"math"
	"testing"
)

// ----------------------------------------------------------------------------
// CellString Tests
// ----------------------------------------------------------------------------

func TestCellString(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want string
	}{
		{name: "empty cell", cell: Cell{}, want: ""},
		{name: "text", cell: TextCell("بطاقة زائر"), want: "بطاقة زائر"},
		{name: "empty text", cell: TextCell(""), want: ""},
		{name: "integer number", cell: NumberCell(12345), want: "12345"},
		{name: "large card number", cell: NumberCell(4111111111111111), want: "4111111111111111"},
		{name: "fraction", cell: NumberCell(12.5), want: "12.5"},
		{name: "negative", cell: NumberCell(-7), want: "-7"},

		// Falsy values become empty
		{name: "zero", cell: NumberCell(0), want: ""},
		{name: "NaN", cell: NumberCell(math.NaN()), want: ""},
		{name: "false", cell: BoolCell(false), want: ""},
		{name: "true", cell: BoolCell(true), want: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CellString(tt.cell); got != tt.want {
				t.Errorf("CellString(%+v) = %q, want %q", tt.cell, got, tt.want)
			}
		})
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1, "1"},
		{100, "100"},
		{1e15, "1000000000000000"},
		{0.25, "0.25"},
		{3.14159, "3.14159"},
		{math.Inf(1), ""},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// ----------------------------------------------------------------------------
// CellDate Tests
// ----------------------------------------------------------------------------

func TestCellDate(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want string
	}{
		{name: "iso text", cell: TextCell("2024-03-15"), want: "2024-03-15"},
		{name: "slashed text kept", cell: TextCell("2024/03/15"), want: "2024/03/15"},
		{name: "day first kept", cell: TextCell("05/01/2024"), want: "05/01/2024"},
		{name: "padding kept", cell: TextCell(" 2024-03-15 "), want: " 2024-03-15 "},
		{name: "excel serial", cell: NumberCell(45366), want: "2024-03-15"},
		{name: "excel serial with time", cell: NumberCell(45366.75), want: "2024-03-15"},
		{name: "free text kept", cell: TextCell("منتصف مارس"), want: "منتصف مارس"},
		{name: "empty", cell: Cell{}, want: ""},
		{name: "zero serial", cell: NumberCell(0), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CellDate(tt.cell); got != tt.want {
				t.Errorf("CellDate(%+v) = %q, want %q", tt.cell, got, tt.want)
			}
		})
	}
}

func TestRecordLookup(t *testing.T) {
	rec := Record{
		HeaderCardNumber: NumberCell(12345),
		HeaderNotes:      TextCell("ملاحظة"),
	}

	if got := rec.Text(HeaderCardNumber); got != "12345" {
		t.Errorf("Text(card number) = %q, want %q", got, "12345")
	}
	if got := rec.Text(HeaderNotes); got != "ملاحظة" {
		t.Errorf("Text(notes) = %q", got)
	}
	if got := rec.Text(HeaderCardCode); got != "" {
		t.Errorf("Text(missing) = %q, want empty", got)
	}
}

func TestCleanHeader(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"نوع البطاقة", "نوع البطاقة"},
		{"  نوع البطاقة  ", "نوع البطاقة"},
		{"\ufeffم", "م"},
		{"نوع\u00a0البطاقة", "نوع البطاقة"},
	}

	for _, tt := range tests {
		if got := CleanHeader(tt.in); got != tt.want {
			t.Errorf("CleanHeader(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
