package core

// reconcile.go rebuilds a register from imported spreadsheet records.
//
// Each record is read by header text, so column order in the file does not
// matter and unknown columns are ignored. Attachments never survive an
// import: the file only ever carried the attachment's name. All rows of one
// import share a single reserved id range, and short imports are padded with
// blank rows up to MinRows.

// ReconcileActiveCards maps imported records to active card rows.
// Returns ErrEmptyImport if there are no records.
func ReconcileActiveCards(records []Record, ids *IDSource) ([]ActiveCardRow, error) {
	if len(records) == 0 {
		return nil, ErrEmptyImport
	}

	base := ids.Reserve(paddedLen(len(records)))
	rows := make([]ActiveCardRow, 0, paddedLen(len(records)))
	for i, rec := range records {
		rows = append(rows, ActiveCardRow{
			ID:         base + int64(i),
			CardType:   rec.Text(HeaderCardType),
			CardNumber: rec.Text(HeaderCardNumber),
			CardCode:   rec.Text(HeaderCardCode),
			Notes:      rec.Text(HeaderNotes),
		})
	}
	for i := len(rows); i < MinRows; i++ {
		rows = append(rows, NewActiveCardRow(base+int64(i)))
	}
	return rows, nil
}

// ReconcileRecipients maps imported records to recipient rows.
// Returns ErrEmptyImport if there are no records.
func ReconcileRecipients(records []Record, ids *IDSource) ([]RecipientRow, error) {
	if len(records) == 0 {
		return nil, ErrEmptyImport
	}

	base := ids.Reserve(paddedLen(len(records)))
	rows := make([]RecipientRow, 0, paddedLen(len(records)))
	for i, rec := range records {
		rows = append(rows, RecipientRow{
			ID:            base + int64(i),
			RecipientName: rec.Text(HeaderRecipientName),
			Department:    rec.Text(HeaderDepartment),
			ReceiptDate:   rec.Date(HeaderReceiptDate),
			CardType:      rec.Text(HeaderCardType),
			CardNumber:    rec.Text(HeaderCardNumber),
			CardCode:      rec.Text(HeaderCardCode),
			Duration:      rec.Text(HeaderDuration),
			Notes:         rec.Text(HeaderNotes),
		})
	}
	for i := len(rows); i < MinRows; i++ {
		rows = append(rows, NewRecipientRow(base+int64(i)))
	}
	return rows, nil
}

// paddedLen is the final row count for n imported records.
func paddedLen(n int) int {
	if n < MinRows {
		return MinRows
	}
	return n
}
