package core

import "fmt"

// ActiveCardField names an editable text field of ActiveCardRow.
type ActiveCardField int

const (
	ActiveCardType ActiveCardField = iota
	ActiveCardNumber
	ActiveCardCode
	ActiveCardNotes
)

// activeCardFieldNames holds the wire names used by forms and routes.
var activeCardFieldNames = map[ActiveCardField]string{
	ActiveCardType:   "cardType",
	ActiveCardNumber: "cardNumber",
	ActiveCardCode:   "cardCode",
	ActiveCardNotes:  "notes",
}

func (f ActiveCardField) String() string {
	if name, ok := activeCardFieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("ActiveCardField(%d)", int(f))
}

// ParseActiveCardField resolves a wire name to a field.
func ParseActiveCardField(name string) (ActiveCardField, error) {
	for f, n := range activeCardFieldNames {
		if n == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Get returns the value of field f.
func (r ActiveCardRow) Get(f ActiveCardField) string {
	switch f {
	case ActiveCardType:
		return r.CardType
	case ActiveCardNumber:
		return r.CardNumber
	case ActiveCardCode:
		return r.CardCode
	case ActiveCardNotes:
		return r.Notes
	}
	return ""
}

// With returns a copy of r with field f set to v.
// An out-of-range f leaves the row unchanged.
func (r ActiveCardRow) With(f ActiveCardField, v string) ActiveCardRow {
	switch f {
	case ActiveCardType:
		r.CardType = v
	case ActiveCardNumber:
		r.CardNumber = v
	case ActiveCardCode:
		r.CardCode = v
	case ActiveCardNotes:
		r.Notes = v
	}
	return r
}

// RecipientField names an editable text field of RecipientRow.
type RecipientField int

const (
	RecipientName RecipientField = iota
	RecipientDepartment
	RecipientReceiptDate
	RecipientCardType
	RecipientCardNumber
	RecipientCardCode
	RecipientDuration
	RecipientNotes
)

var recipientFieldNames = map[RecipientField]string{
	RecipientName:        "recipientName",
	RecipientDepartment:  "department",
	RecipientReceiptDate: "receiptDate",
	RecipientCardType:    "cardType",
	RecipientCardNumber:  "cardNumber",
	RecipientCardCode:    "cardCode",
	RecipientDuration:    "duration",
	RecipientNotes:       "notes",
}

func (f RecipientField) String() string {
	if name, ok := recipientFieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("RecipientField(%d)", int(f))
}

// ParseRecipientField resolves a wire name to a field.
func ParseRecipientField(name string) (RecipientField, error) {
	for f, n := range recipientFieldNames {
		if n == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Get returns the value of field f.
func (r RecipientRow) Get(f RecipientField) string {
	switch f {
	case RecipientName:
		return r.RecipientName
	case RecipientDepartment:
		return r.Department
	case RecipientReceiptDate:
		return r.ReceiptDate
	case RecipientCardType:
		return r.CardType
	case RecipientCardNumber:
		return r.CardNumber
	case RecipientCardCode:
		return r.CardCode
	case RecipientDuration:
		return r.Duration
	case RecipientNotes:
		return r.Notes
	}
	return ""
}

// With returns a copy of r with field f set to v.
func (r RecipientRow) With(f RecipientField, v string) RecipientRow {
	switch f {
	case RecipientName:
		r.RecipientName = v
	case RecipientDepartment:
		r.Department = v
	case RecipientReceiptDate:
		r.ReceiptDate = v
	case RecipientCardType:
		r.CardType = v
	case RecipientCardNumber:
		r.CardNumber = v
	case RecipientCardCode:
		r.CardCode = v
	case RecipientDuration:
		r.Duration = v
	case RecipientNotes:
		r.Notes = v
	}
	return r
}
