package web

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/cardregisters/internal/core"
	"github.com/JonMunkholm/cardregisters/internal/logging"
	"github.com/JonMunkholm/cardregisters/internal/web/templates"
)

// maxAuditLimit caps the limit query parameter of the audit log.
const maxAuditLimit = 500

// handleHome sends the browser to the tab it last had open.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r.Context())
	http.Redirect(w, r, registerPath(ws.Current()), http.StatusSeeOther)
}

// handleRegister renders the editor for one register and makes it the
// selected tab.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r.Context())
	reg := registerFrom(r.Context())

	ws.Select(reg)
	s.render(w, r, templates.RegisterPage(s.pageData(ws, reg, true)))
}

// handlePrint renders the printable copy of a register.
func (s *Server) handlePrint(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r.Context())
	reg := registerFrom(r.Context())

	s.render(w, r, templates.PrintPage(s.pageData(ws, reg, false)))
}

// handleDismissToast hides the visible notification before it expires.
func (s *Server) handleDismissToast(w http.ResponseWriter, r *http.Request) {
	workspaceFrom(r.Context()).Toasts.Dismiss()
	s.finish(w, r, nil, map[string]string{"status": "dismissed"})
}

// handleHealth reports liveness plus session and transfer load.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status":    "ok",
		"sessions":  s.service.Sessions().Len(),
		"transfers": s.service.Limiter().Status(),
	})
}

// handleAuditLog returns the most recent audit entries of the caller's
// session, newest first.
func (s *Server) handleAuditLog(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r.Context())

	limit := core.DefaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxAuditLimit)
	}

	entries, err := s.service.Audit().Recent(r.Context(), ws.ID, limit)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []core.AuditEntry{}
	}
	writeJSON(w, map[string]any{"entries": entries})
}

// render writes an HTML component.
func (s *Server) render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render failed", "error", err)
	}
}

// finish completes a mutating request. Browsers go back to the register
// page, where the toast shows the outcome; JSON clients get payload or the
// error.
func (s *Server) finish(w http.ResponseWriter, r *http.Request, err error, payload any) {
	reg := registerFrom(r.Context())

	if err != nil {
		if wantsJSON(r) || isAddressingError(err) {
			s.respondError(w, r, err, statusFor(err))
			return
		}
		logging.ForRegister(r.Context(), reg).Warn("operation failed", "path", r.URL.Path, "error", err)
	}

	if err == nil && wantsJSON(r) {
		writeJSON(w, payload)
		return
	}
	http.Redirect(w, r, registerPath(reg), http.StatusSeeOther)
}

// pageData builds the view model. With withToast the visible toast is
// included.
func (s *Server) pageData(ws *core.Workspace, reg core.Register, withToast bool) templates.PageData {
	info := core.MustInfo(reg)
	p := templates.PageData{
		Register: info,
		Tabs:     core.Registers(),
	}

	switch reg {
	case core.ActiveCards:
		p.Rows = rowViews(ws.Active.Rows(), info, core.ParseActiveCardField)
	case core.Recipients:
		p.Rows = rowViews(ws.Recipients.Rows(), info, core.ParseRecipientField)
	default:
		slog.Warn("page requested for unknown register", "register", reg)
	}

	if withToast {
		if n, ok := ws.Toasts.Current(); ok {
			p.Toast = templates.NewToastView(n, ws.Toasts.Remaining())
		}
	}
	return p
}

// rowViews converts rows in display order. Seq numbers start at 1.
func rowViews[R core.Row[R, F], F any](rows []R, info core.RegisterInfo, parse func(string) (F, error)) []templates.RowView {
	editable := info.EditableColumns()
	out := make([]templates.RowView, len(rows))

	for i, row := range rows {
		v := templates.RowView{
			ID:    row.RowID(),
			Seq:   i + 1,
			Cells: make(map[string]templates.CellView, len(editable)),
		}
		if a := row.AttachmentRef(); a != nil {
			v.AttachmentName = a.Name
		}
		for _, col := range editable {
			f, err := parse(col.Field)
			if err != nil {
				continue
			}
			v.Cells[col.Header] = templates.CellView{
				Field: col.Field,
				Value: row.Get(f),
				Date:  col.Field == core.RecipientReceiptDate.String(),
			}
		}
		out[i] = v
	}
	return out
}

func registerPath(reg core.Register) string {
	return "/registers/" + string(reg)
}
