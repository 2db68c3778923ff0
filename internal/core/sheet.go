package core

// sheet.go defines the tabular shape exchanged with the spreadsheet codec.
//
// The codec turns a Sheet into workbook bytes on export and turns the first
// worksheet of an uploaded workbook into []Record on import. Cells keep the
// kind the workbook stored them as, so the reconciler can coerce explicitly.

// CellKind is the stored type of a spreadsheet cell.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
	CellBool
)

// Cell is a single typed value.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
	Bool   bool
}

// TextCell builds a text cell. The empty string yields an empty cell.
func TextCell(s string) Cell {
	if s == "" {
		return Cell{Kind: CellEmpty}
	}
	return Cell{Kind: CellText, Text: s}
}

// NumberCell builds a numeric cell.
func NumberCell(f float64) Cell {
	return Cell{Kind: CellNumber, Number: f}
}

// BoolCell builds a boolean cell.
func BoolCell(b bool) Cell {
	return Cell{Kind: CellBool, Bool: b}
}

// Record is one data row keyed by header text.
type Record map[string]Cell

// Column is a header with its display width in character units.
type Column struct {
	Header string
	Width  float64
}

// Sheet is an ordered table ready to be written as a worksheet.
type Sheet struct {
	Name        string
	Columns     []Column
	Records     []Record
	RightToLeft bool
}

// Headers returns the column headers in order.
func (s Sheet) Headers() []string {
	out := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = c.Header
	}
	return out
}

// Widths returns the column width hints in header order.
func (s Sheet) Widths() []float64 {
	out := make([]float64, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = c.Width
	}
	return out
}

// Artifact is an export ready for a writer: a file name plus its sheet.
type Artifact struct {
	FileName string
	Sheet    Sheet
}
