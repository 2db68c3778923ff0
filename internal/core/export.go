package core

// SheetName is the worksheet name used for every export.
const SheetName = "Sheet1"

// ExportActiveCards projects the active cards register into an artifact.
// Rows without content are skipped and the sequence column is renumbered
// over the rows that remain.
func ExportActiveCards(rows []ActiveCardRow) Artifact {
	info := MustInfo(ActiveCards)

	var records []Record
	for _, r := range rows {
		if !r.HasContent() {
			continue
		}
		records = append(records, Record{
			HeaderSeq:        NumberCell(float64(len(records) + 1)),
			HeaderCardType:   TextCell(r.CardType),
			HeaderCardNumber: TextCell(r.CardNumber),
			HeaderCardCode:   TextCell(r.CardCode),
			HeaderAttachment: TextCell(exportedAttachment(r.Attachment)),
			HeaderNotes:      TextCell(r.Notes),
		})
	}

	return newArtifact(info, records)
}

// ExportRecipients projects the recipients register into an artifact.
func ExportRecipients(rows []RecipientRow) Artifact {
	info := MustInfo(Recipients)

	var records []Record
	for _, r := range rows {
		if !r.HasContent() {
			continue
		}
		records = append(records, Record{
			HeaderSeq:           NumberCell(float64(len(records) + 1)),
			HeaderRecipientName: TextCell(r.RecipientName),
			HeaderDepartment:    TextCell(r.Department),
			HeaderReceiptDate:   TextCell(r.ReceiptDate),
			HeaderCardType:      TextCell(r.CardType),
			HeaderCardNumber:    TextCell(r.CardNumber),
			HeaderCardCode:      TextCell(r.CardCode),
			HeaderDuration:      TextCell(r.Duration),
			HeaderAttachment:    TextCell(exportedAttachment(r.Attachment)),
			HeaderNotes:         TextCell(r.Notes),
		})
	}

	return newArtifact(info, records)
}

func newArtifact(info RegisterInfo, records []Record) Artifact {
	return Artifact{
		FileName: info.FileName,
		Sheet: Sheet{
			Name:        SheetName,
			Columns:     info.sheetColumns(),
			Records:     records,
			RightToLeft: true,
		},
	}
}

func exportedAttachment(a *Attachment) string {
	if name := attachmentName(a); name != "" {
		return name
	}
	return NoAttachment
}
