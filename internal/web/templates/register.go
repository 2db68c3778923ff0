package templates

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/cardregisters/internal/core"
)

// AttachmentAccept is the file picker filter for row attachments.
const AttachmentAccept = ".jpg,.jpeg,.png,.pdf,.doc,.docx,.xls,.xlsx"

// ImportAccept is the file picker filter for imports.
const ImportAccept = ".xlsx,.xls"

// RegisterPage renders the tabbed register editor.
func RegisterPage(p PageData) templ.Component {
	return Layout(p.Register.Title, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &writer{w: w}
		base := "/registers/" + string(p.Register.Key)

		h.raw(`<nav class="tabs">`)
		for _, tab := range p.Tabs {
			h.raw(`<a`)
			h.attr("href", "/registers/"+string(tab.Key))
			if tab.Key == p.Register.Key {
				h.raw(` class="active"`)
			}
			h.raw(`>`)
			h.text(tab.TabLabel)
			h.raw(`</a>`)
		}
		h.raw(`</nav>`)

		toolbar(h, base, p.Register.FileName)

		h.raw(`<table><thead><tr>`)
		for _, col := range p.Register.Columns {
			h.raw(`<th>`)
			h.text(col.Header)
			h.raw(`</th>`)
		}
		h.raw(`<th>حذف</th></tr></thead><tbody>`)
		for _, row := range p.Rows {
			tableRow(h, base, p.Register, row)
		}
		h.raw(`</tbody></table>`)

		if p.Toast != nil {
			toast(h, base, *p.Toast)
		}
		return h.err
	}))
}

// exportScript downloads the workbook in the background and then reloads the
// page, so the toast set by the export is shown. Error responses are pages,
// not workbooks, and only trigger the reload.
const exportScript = `<script>
function exportRegister(link) {
	fetch(link.href, {credentials: "same-origin"}).then(function (r) {
		if (!r.ok || (r.headers.get("Content-Type") || "").indexOf("spreadsheetml") < 0) return;
		return r.blob().then(function (b) {
			var a = document.createElement("a");
			a.href = URL.createObjectURL(b);
			a.download = link.dataset.file;
			document.body.appendChild(a);
			a.click();
			a.remove();
		});
	}).finally(function () { setTimeout(function () { location.reload(); }, 100); });
	return false;
}
</script>`

func toolbar(h *writer, base, exportFile string) {
	h.raw(`<div class="toolbar">`)

	h.raw(`<form method="post"`)
	h.attr("action", base+"/rows")
	h.raw(`><button type="submit">إضافة صف جديد</button></form>`)

	h.raw(`<a class="button"`)
	h.attr("href", base+"/export")
	h.attr("data-file", exportFile)
	h.raw(` onclick="return exportRegister(this)">تصدير</a>`)
	h.raw(exportScript)

	h.raw(`<form method="post" enctype="multipart/form-data"`)
	h.attr("action", base+"/import")
	h.raw(`><label class="button">استيراد<input type="file" name="file" hidden`)
	h.attr("accept", ImportAccept)
	h.raw(` onchange="this.form.submit()"></label></form>`)

	h.raw(`<a class="button" target="_blank"`)
	h.attr("href", base+"/print")
	h.raw(`>طباعة</a>`)

	h.raw(`</div>`)
}

func tableRow(h *writer, base string, info core.RegisterInfo, row RowView) {
	rowBase := base + "/rows/" + strconv.FormatInt(row.ID, 10)

	h.raw(`<tr>`)
	for _, col := range info.Columns {
		switch {
		case col.Header == core.HeaderSeq:
			h.raw(`<td class="seq">`)
			h.text(strconv.Itoa(row.Seq))
			h.raw(`</td>`)
		case col.Header == core.HeaderAttachment:
			attachmentCell(h, rowBase, row)
		default:
			cell := row.Cells[col.Header]
			h.raw(`<td><form method="post"`)
			h.attr("action", rowBase+"/fields/"+cell.Field)
			h.raw(`><input name="value"`)
			if cell.Date {
				h.raw(` type="date"`)
			} else {
				h.raw(` type="text"`)
			}
			h.attr("value", cell.Value)
			h.attr("aria-label", col.Header)
			h.raw(` onchange="this.form.submit()"></form></td>`)
		}
	}

	h.raw(`<td><form method="post"`)
	h.attr("action", rowBase+"/delete")
	h.raw(`><input type="hidden" name="confirm" value="no">`)
	h.raw(`<button type="submit" class="danger" onclick="`)
	h.text(fmt.Sprintf("this.form.confirm.value = window.confirm(%q) ? 'yes' : 'no'", core.PromptDeleteRow))
	h.raw(`">حذف</button></form></td>`)
	h.raw(`</tr>`)
}

func attachmentCell(h *writer, rowBase string, row RowView) {
	h.raw(`<td><form method="post" enctype="multipart/form-data"`)
	h.attr("action", rowBase+"/attachment")
	h.raw(`><label`)
	if row.HasAttachment() {
		h.attr("title", row.AttachmentName)
	} else {
		h.attr("title", "إرفاق ملف")
	}
	h.raw(`>📎<input type="file" name="file" hidden`)
	h.attr("accept", AttachmentAccept)
	h.raw(` onchange="this.form.submit()"></label></form>`)
	if row.HasAttachment() {
		h.raw(`<a`)
		h.attr("href", rowBase+"/attachment")
		h.raw(`>`)
		h.text(row.AttachmentName)
		h.raw(`</a>`)
	}
	h.raw(`</td>`)
}

func toast(h *writer, base string, t ToastView) {
	class := "toast error"
	if t.Success {
		class = "toast success"
	}
	h.raw(`<div id="toast" role="status"`)
	h.attr("class", class)
	h.raw(`><form method="post"`)
	h.attr("action", base+"/toast/dismiss")
	h.raw(`><button type="submit" class="close" aria-label="إغلاق">×</button></form>`)
	h.raw(`<strong>`)
	h.text(t.Title())
	h.raw(`</strong>`)
	h.text(t.Message)
	if t.Code != "" {
		h.raw(` <small>(`)
		h.text(t.Code)
		h.raw(`)</small>`)
	}
	h.raw(`</div>`)
	h.raw(fmt.Sprintf(`<script>setTimeout(function(){var t=document.getElementById("toast");if(t)t.remove();},%d);</script>`,
		t.Remaining.Milliseconds()))
}
