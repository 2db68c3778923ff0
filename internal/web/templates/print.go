package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/cardregisters/internal/core"
)

// PrintPage renders a read-only copy of the register sized for paper.
// Active cards print portrait, recipients landscape.
func PrintPage(p PageData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &writer{w: w}
		h.raw(`<!DOCTYPE html><html lang="ar" dir="rtl"><head><meta charset="utf-8"><title>`)
		h.text(p.Register.Title)
		h.raw(`</title><style>`)
		h.raw(`@page { size: A4 ` + string(p.Register.Orientation) + `; margin: 10mm; }`)
		h.raw(`body { font-family: "Segoe UI", Tahoma, sans-serif; font-size: 12px; }`)
		h.raw(`table { width: 100%; border-collapse: collapse; } th, td { border: 1px solid #000; padding: 4px; text-align: center; }`)
		h.raw(`th { background: #eee; } h1, h2 { text-align: center; margin: 4px 0; }`)
		h.raw(`</style></head><body onload="window.print()">`)

		h.raw(`<h1>`)
		h.text(Organization)
		h.raw(`</h1><h2>`)
		h.text(p.Register.Title)
		h.raw(`</h2><table><thead><tr>`)
		for _, col := range p.Register.Columns {
			h.raw(`<th>`)
			h.text(col.Header)
			h.raw(`</th>`)
		}
		h.raw(`</tr></thead><tbody>`)

		for _, row := range p.Rows {
			h.raw(`<tr>`)
			for _, col := range p.Register.Columns {
				h.raw(`<td>`)
				switch col.Header {
				case core.HeaderSeq:
					h.text(strconv.Itoa(row.Seq))
				case core.HeaderAttachment:
					h.text(row.AttachmentName)
				default:
					h.text(row.Cells[col.Header].Value)
				}
				h.raw(`</td>`)
			}
			h.raw(`</tr>`)
		}
		h.raw(`</tbody></table></body></html>`)
		return h.err
	})
}
