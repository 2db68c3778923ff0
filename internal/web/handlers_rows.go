package web

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/cardregisters/internal/core"
)

// multipartMemory is how much of a multipart body is kept in memory before
// spilling to temporary files.
const multipartMemory = 32 << 20

// multipartOverhead allows for form boundaries and headers on top of the
// file itself.
const multipartOverhead = 1 << 20

// handleAddRow appends a blank row.
func (s *Server) handleAddRow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ws := workspaceFrom(ctx)
	reg := registerFrom(ctx)

	id, err := s.service.AddRow(ctx, ws, reg)
	s.finish(w, r, err, map[string]int64{"id": id})
}

// handleUpdateField stores one edited cell. The new value is the "value"
// form field.
func (s *Server) handleUpdateField(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ws := workspaceFrom(ctx)
	reg := registerFrom(ctx)

	id, err := rowIDParam(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}

	field := chi.URLParam(r, "field")
	err = s.service.UpdateField(ctx, ws, reg, id, field, r.FormValue("value"))
	s.finish(w, r, err, map[string]string{"status": "ok"})
}

// handleSetAttachment attaches the uploaded "file" to a row. Submitting the
// form without a file clears the attachment.
func (s *Server) handleSetAttachment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ws := workspaceFrom(ctx)
	reg := registerFrom(ctx)

	id, err := rowIDParam(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}

	maxSize := s.service.Config().MaxAttachmentSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		s.finish(w, r, s.service.Reject(ctx, ws, uploadError(err)), nil)
		return
	}

	var upload core.FileUpload
	file, header, err := r.FormFile("file")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		// clear
	case err != nil:
		s.finish(w, r, s.service.Reject(ctx, ws, uploadError(err)), nil)
		return
	default:
		defer file.Close()
		data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
		if err != nil {
			s.finish(w, r, s.service.Reject(ctx, ws, fmt.Errorf("read attachment: %w", err)), nil)
			return
		}
		upload = core.FileUpload{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		}
	}

	err = s.service.SetAttachment(ctx, ws, reg, id, upload)
	s.finish(w, r, err, map[string]string{"attachment": upload.Name})
}

// handleDownloadAttachment sends a row's attachment back to the browser.
func (s *Server) handleDownloadAttachment(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r.Context())
	reg := registerFrom(r.Context())

	id, err := rowIDParam(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}

	a, err := s.service.Attachment(ws, reg, id)
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}

	contentType := a.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", contentDisposition(a.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(a.Data)))
	_, _ = w.Write(a.Data)
}

// handleDeleteRow removes a row. The page asks for confirmation in the
// browser and posts the answer as confirm=yes.
func (s *Server) handleDeleteRow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ws := workspaceFrom(ctx)
	reg := registerFrom(ctx)

	id, err := rowIDParam(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}

	confirmed := core.Confirmed(r.FormValue("confirm") == "yes")
	removed, err := s.service.DeleteRow(ctx, ws, reg, id, confirmed)
	s.finish(w, r, err, map[string]bool{"removed": removed})
}

// rowIDParam parses the {id} route parameter.
func rowIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", core.ErrRowNotFound, raw)
	}
	return id, nil
}

// uploadError translates multipart parsing errors into core errors.
func uploadError(err error) error {
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		return fmt.Errorf("%w: over %d bytes", core.ErrFileTooLarge, tooBig.Limit)
	}
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return core.ErrNoFile
	}
	return fmt.Errorf("%w: %v", core.ErrNoFile, err)
}

// contentDisposition builds an attachment header; non-ASCII names are
// encoded per RFC 2231.
func contentDisposition(name string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": name}); v != "" {
		return v
	}
	return "attachment"
}
