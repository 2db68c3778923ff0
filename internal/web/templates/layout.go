package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const baseStyle = `
body { font-family: "Segoe UI", Tahoma, sans-serif; margin: 0; background: #f3f4f6; color: #1f2937; }
header { background: #1e3a8a; color: #fff; padding: 16px 24px; }
header h1 { margin: 0; font-size: 20px; }
header p { margin: 4px 0 0; font-size: 13px; opacity: .85; }
main { padding: 16px 24px; }
nav.tabs { display: flex; gap: 8px; margin-bottom: 12px; }
nav.tabs a { padding: 8px 16px; border-radius: 6px; background: #e5e7eb; color: #1f2937; text-decoration: none; }
nav.tabs a.active { background: #2563eb; color: #fff; }
.toolbar { display: flex; gap: 8px; margin-bottom: 12px; flex-wrap: wrap; align-items: center; }
.toolbar form { margin: 0; }
button, .button { padding: 6px 14px; border: 0; border-radius: 6px; background: #2563eb; color: #fff; cursor: pointer; font-size: 14px; text-decoration: none; }
button.danger { background: #dc2626; }
table { width: 100%; border-collapse: collapse; background: #fff; }
th, td { border: 1px solid #d1d5db; padding: 0; text-align: center; font-size: 14px; }
th { background: #eff6ff; padding: 6px; }
td input[type=text], td input[type=date] { width: 100%; box-sizing: border-box; border: 0; padding: 6px; background: transparent; font: inherit; }
td form { margin: 0; }
.seq { width: 40px; color: #6b7280; }
.toast { position: fixed; top: 16px; left: 16px; min-width: 260px; padding: 12px 16px; border-radius: 8px; color: #fff; box-shadow: 0 4px 12px rgba(0,0,0,.2); }
.toast.success { background: #16a34a; }
.toast.error { background: #dc2626; }
.toast strong { display: block; margin-bottom: 4px; }
.toast small { opacity: .8; }
.toast form { float: left; margin: 0; }
.toast .close { background: none; border: 0; color: inherit; font-size: 18px; line-height: 1; padding: 0 0 0 8px; cursor: pointer; }
.alert { background: #fef2f2; border: 1px solid #fecaca; color: #991b1b; padding: 16px; border-radius: 8px; }
footer { text-align: center; font-size: 12px; color: #6b7280; padding: 16px; }
`

// Layout wraps body in the application shell.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &writer{w: w}
		h.raw(`<!DOCTYPE html><html lang="ar" dir="rtl"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(title)
		h.raw(`</title><style>` + baseStyle + `</style></head><body>`)
		h.raw(`<header><h1>`)
		h.text(AppTitle)
		h.raw(`</h1><p>`)
		h.text(Organization)
		h.raw(`</p></header><main>`)
		if h.err != nil {
			return h.err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		h.raw(`</main><footer>اعداد وتصميم / خالد الجفري<br>ساهر للخدمات الذكية</footer></body></html>`)
		return h.err
	})
}

// ErrorAlert renders a user-facing error with its support code.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &writer{w: w}
		h.raw(`<div class="alert" role="alert"><strong>`)
		h.text(message)
		h.raw(`</strong>`)
		if action != "" {
			h.raw(`<p>`)
			h.text(action)
			h.raw(`</p>`)
		}
		if code != "" {
			h.raw(`<small>`)
			h.text(code)
			h.raw(`</small>`)
		}
		h.raw(`</div>`)
		return h.err
	})
}

// ErrorPage is ErrorAlert inside the layout with a link home.
func ErrorPage(message, action, code string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := ErrorAlert(message, action, code).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `<p><a class="button" href="/">الرئيسية</a></p>`)
		return err
	})
	return Layout(AppTitle, body)
}
