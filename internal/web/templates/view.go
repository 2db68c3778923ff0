// Package templates renders the register pages.
//
// Components are plain templ.Component values so handlers render them the
// same way as generated templ code: Component.Render(ctx, w).
package templates

import (
	"io"
	"time"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/cardregisters/internal/core"
)

// AppTitle is shown in the header and the browser tab.
const AppTitle = "نظام تسجيل أسماء المستلمين لبطاقات الزوار"

// Organization is shown under the title.
const Organization = "إدارة الخدمات العامة / قسم إدارة المرافق"

// CellView is one editable field of a row.
type CellView struct {
	Field string // wire name, used in the form action
	Value string
	Date  bool
}

// RowView is one table line as the page shows it.
type RowView struct {
	ID             int64
	Seq            int
	Cells          map[string]CellView // keyed by column header
	AttachmentName string
}

// HasAttachment reports whether the row has a file attached.
func (r RowView) HasAttachment() bool { return r.AttachmentName != "" }

// ToastView is the visible notification.
type ToastView struct {
	Message   string
	Code      string
	Success   bool
	Remaining time.Duration
}

// Title returns the toast heading.
func (t ToastView) Title() string {
	if t.Success {
		return "نجاح"
	}
	return "تنبيه"
}

// NewToastView converts a notification.
func NewToastView(n core.Notification, remaining time.Duration) *ToastView {
	return &ToastView{
		Message:   n.Message,
		Code:      n.Code,
		Success:   n.Severity == core.SeveritySuccess,
		Remaining: remaining,
	}
}

// PageData is everything the register page needs.
type PageData struct {
	Register core.RegisterInfo
	Tabs     []core.RegisterInfo
	Rows     []RowView
	Toast    *ToastView
}

// writer accumulates the first write error so markup can be emitted
// without checking every call.
type writer struct {
	w   io.Writer
	err error
}

func (h *writer) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *writer) text(s string) {
	h.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with value escaped.
func (h *writer) attr(name, value string) {
	h.raw(" " + name + "=\"")
	h.text(value)
	h.raw("\"")
}
