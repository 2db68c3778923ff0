package core

// convert.go turns typed spreadsheet cells into the text fields rows store.
//
// Spreadsheet readers decide cell types on their own: a card number typed
// into Excel comes back as a number, a date as a serial day count. Every
// field is text in the row model, so each value passes through one of the
// functions here before it is stored.

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// excelEpoch is day zero of the 1900 date system as Excel counts it.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// CellString converts a cell to the text stored in a row.
// Empty cells and falsy values (empty text, zero, false) become "".
func CellString(c Cell) string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		if c.Number == 0 || math.IsNaN(c.Number) {
			return ""
		}
		return FormatNumber(c.Number)
	case CellBool:
		if !c.Bool {
			return ""
		}
		return "true"
	default:
		return ""
	}
}

// FormatNumber renders a number the way a user typed it: integers without a
// decimal point or exponent, fractions with the shortest exact digits.
func FormatNumber(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return ""
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// CellDate converts a receipt date cell to text. Serial day numbers become
// YYYY-MM-DD; text is kept exactly as typed.
func CellDate(c Cell) string {
	switch c.Kind {
	case CellNumber:
		if c.Number <= 0 || math.IsNaN(c.Number) || math.IsInf(c.Number, 0) {
			return CellString(c)
		}
		days := int(math.Floor(c.Number))
		return excelEpoch.AddDate(0, 0, days).Format(time.DateOnly)
	default:
		return CellString(c)
	}
}

// lookup returns the cell stored under header, or an empty cell.
func (r Record) lookup(header string) Cell {
	if c, ok := r[header]; ok {
		return c
	}
	return Cell{}
}

// Text returns the text for header after coercion.
func (r Record) Text(header string) string {
	return CellString(r.lookup(header))
}

// Date returns the normalized date for header.
func (r Record) Date(header string) string {
	return CellDate(r.lookup(header))
}

// CleanHeader removes artifacts spreadsheet tools leave around header text:
// surrounding whitespace, a byte order mark and non-breaking spaces.
func CleanHeader(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.TrimSpace(s)
}
