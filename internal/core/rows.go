package core

// Attachment is a file the user picked for a single row.
// Only Name ever leaves the workspace through an export.
type Attachment struct {
	ID          string
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

// attachmentName returns the attachment's display name or the empty string.
func attachmentName(a *Attachment) string {
	if a == nil {
		return ""
	}
	return a.Name
}

// ActiveCardRow is one line of the active visitor cards register.
type ActiveCardRow struct {
	ID         int64
	CardType   string
	CardNumber string
	CardCode   string
	Attachment *Attachment
	Notes      string
}

// NewActiveCardRow returns a blank row with the given id.
func NewActiveCardRow(id int64) ActiveCardRow {
	return ActiveCardRow{ID: id}
}

// RowID implements Row.
func (r ActiveCardRow) RowID() int64 { return r.ID }

// AttachmentRef implements Row.
func (r ActiveCardRow) AttachmentRef() *Attachment { return r.Attachment }

// WithAttachment returns a copy of r with the attachment replaced.
func (r ActiveCardRow) WithAttachment(a *Attachment) ActiveCardRow {
	r.Attachment = a
	return r
}

// HasContent reports whether any field that marks the row as filled in is set.
// Active cards count card type, number, code and notes.
func (r ActiveCardRow) HasContent() bool {
	return r.CardType != "" || r.CardNumber != "" || r.CardCode != "" || r.Notes != ""
}

// RecipientRow is one line of the card recipients register.
type RecipientRow struct {
	ID            int64
	RecipientName string
	Department    string
	ReceiptDate   string // YYYY-MM-DD or empty
	CardType      string
	CardNumber    string
	CardCode      string
	Duration      string
	Attachment    *Attachment
	Notes         string
}

// NewRecipientRow returns a blank row with the given id.
func NewRecipientRow(id int64) RecipientRow {
	return RecipientRow{ID: id}
}

// RowID implements Row.
func (r RecipientRow) RowID() int64 { return r.ID }

// AttachmentRef implements Row.
func (r RecipientRow) AttachmentRef() *Attachment { return r.Attachment }

// WithAttachment returns a copy of r with the attachment replaced.
func (r RecipientRow) WithAttachment(a *Attachment) RecipientRow {
	r.Attachment = a
	return r
}

// HasContent reports whether the row carries a name, department, card type,
// card number or notes. Card code, duration and receipt date alone do not
// count; exports have always behaved this way.
func (r RecipientRow) HasContent() bool {
	return r.RecipientName != "" || r.Department != "" || r.CardType != "" ||
		r.CardNumber != "" || r.Notes != ""
}
