// Package xlsx reads and writes register workbooks in the Office Open XML
// spreadsheet format.
//
// Only the first worksheet is read. Its first non-empty row is the header
// row; every later row becomes a record keyed by header text, so column
// order does not matter. Writing produces a single right-to-left sheet with
// the register's column widths.
package xlsx

import (
	"errors"
	"fmt"
	"io"

	"github.com/JonMunkholm/cardregisters/internal/core"
	"github.com/unidoc/unioffice"
	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/unidoc/unioffice/spreadsheet/reference"
)

// ErrNoSheets is returned for a workbook without worksheets.
var ErrNoSheets = errors.New("workbook has no sheets")

// Codec implements core.SheetCodec on top of unioffice.
type Codec struct{}

// New returns a codec.
func New() *Codec {
	return &Codec{}
}

var _ core.SheetCodec = (*Codec)(nil)

// Write encodes s as an xlsx workbook.
func (c *Codec) Write(w io.Writer, s core.Sheet) error {
	wb := spreadsheet.New()
	sheet := wb.AddSheet()
	sheet.SetName(s.Name)

	if s.RightToLeft {
		sheet.InitialView().X().RightToLeftAttr = unioffice.Bool(true)
	}

	for i, width := range s.Widths() {
		if width <= 0 {
			continue
		}
		x := sheet.Column(uint32(i + 1)).X()
		x.WidthAttr = unioffice.Float64(width)
		x.CustomWidthAttr = unioffice.Bool(true)
	}

	header := sheet.AddRow()
	for _, col := range s.Columns {
		header.AddCell().SetString(col.Header)
	}

	for _, rec := range s.Records {
		row := sheet.AddRow()
		for _, col := range s.Columns {
			cell := row.AddCell()
			v := rec[col.Header]
			switch v.Kind {
			case core.CellText:
				cell.SetString(v.Text)
			case core.CellNumber:
				cell.SetNumber(v.Number)
			case core.CellBool:
				cell.SetBool(v.Bool)
			}
		}
	}

	if err := wb.Save(w); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// Read decodes the first worksheet of an xlsx workbook into records.
// Rows with no values are skipped.
func (c *Codec) Read(r io.ReaderAt, size int64) ([]core.Record, error) {
	wb, err := spreadsheet.Read(r, size)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}

	sheets := wb.Sheets()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	var (
		headers map[int]string
		records []core.Record
	)
	for _, row := range sheets[0].Rows() {
		cells := readRow(row)
		if len(cells) == 0 {
			continue
		}

		if headers == nil {
			headers = make(map[int]string, len(cells))
			for idx, v := range cells {
				if h := core.CleanHeader(core.CellString(v)); h != "" {
					headers[idx] = h
				}
			}
			continue
		}

		rec := make(core.Record, len(cells))
		for idx, v := range cells {
			h, ok := headers[idx]
			if !ok {
				continue
			}
			if _, dup := rec[h]; dup {
				continue
			}
			rec[h] = v
		}
		if len(rec) > 0 {
			records = append(records, rec)
		}
	}

	return records, nil
}

// readRow returns the non-empty cells of row keyed by zero-based column.
func readRow(row spreadsheet.Row) map[int]core.Cell {
	out := make(map[int]core.Cell)
	for _, cell := range row.Cells() {
		colName, err := cell.Column()
		if err != nil {
			continue
		}
		idx := int(reference.ColumnToIndex(colName))

		v := readCell(cell)
		if v.Kind == core.CellEmpty {
			continue
		}
		out[idx] = v
	}
	return out
}

func readCell(cell spreadsheet.Cell) core.Cell {
	switch {
	case cell.IsBool():
		b, err := cell.GetValueAsBool()
		if err != nil {
			return core.TextCell(cell.GetString())
		}
		return core.BoolCell(b)
	case cell.IsNumber():
		f, err := cell.GetValueAsNumber()
		if err != nil {
			return core.TextCell(cell.GetString())
		}
		return core.NumberCell(f)
	default:
		return core.TextCell(cell.GetString())
	}
}
