package core

import "fmt"

// Register identifies one of the two independent tables.
type Register string

const (
	ActiveCards Register = "active-cards"
	Recipients  Register = "recipients"
)

// DefaultRegister is the tab a new workspace opens on.
const DefaultRegister = Recipients

// ParseRegister resolves a route key to a Register.
func ParseRegister(key string) (Register, error) {
	switch Register(key) {
	case ActiveCards, Recipients:
		return Register(key), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRegister, key)
}

// Orientation is the printed page orientation.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// Localized column headers shared by export and import.
const (
	HeaderSeq           = "م"
	HeaderRecipientName = "اسم المستلم"
	HeaderDepartment    = "الادارة"
	HeaderReceiptDate   = "تاريخ الاستلام"
	HeaderCardType      = "نوع البطاقة"
	HeaderCardNumber    = "رقم البطاقة"
	HeaderCardCode      = "كود البطاقة"
	HeaderDuration      = "مدة البطاقة"
	HeaderAttachment    = "اسم المرفق"
	HeaderNotes         = "الملاحظات"
)

// NoAttachment is exported in place of a missing attachment name.
const NoAttachment = "لا يوجد"

// MinRows is the number of rows a freshly opened or imported register shows.
const MinRows = 15

// ColumnDef describes one column of a register as shown and exported.
// Field is the wire name of the bound row field; it is empty for the
// sequence and attachment columns.
type ColumnDef struct {
	Header string
	Width  float64
	Field  string
}

// RegisterInfo contains display information about a register.
type RegisterInfo struct {
	Key         Register
	Title       string // page heading
	TabLabel    string // navigation label
	FileName    string // export file name
	Orientation Orientation
	Columns     []ColumnDef
}

// Headers returns the export headers in order.
func (i RegisterInfo) Headers() []string {
	out := make([]string, len(i.Columns))
	for n, c := range i.Columns {
		out[n] = c.Header
	}
	return out
}

// sheetColumns converts the column definitions to writer columns.
func (i RegisterInfo) sheetColumns() []Column {
	out := make([]Column, len(i.Columns))
	for n, c := range i.Columns {
		out[n] = Column{Header: c.Header, Width: c.Width}
	}
	return out
}

// EditableColumns returns the columns bound to a text field, in order.
func (i RegisterInfo) EditableColumns() []ColumnDef {
	var out []ColumnDef
	for _, c := range i.Columns {
		if c.Field != "" {
			out = append(out, c)
		}
	}
	return out
}
