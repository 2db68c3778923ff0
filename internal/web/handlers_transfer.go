package web

import (
	"net/http"
	"strconv"

	"github.com/JonMunkholm/cardregisters/internal/logging"
)

// xlsxContentType is the MIME type of exported workbooks.
const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// handleExport downloads the register as a workbook.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ws := workspaceFrom(ctx)
	reg := registerFrom(ctx)

	name, data, err := s.service.Export(ctx, ws, reg)
	if err != nil {
		s.finish(w, r, err, nil)
		return
	}

	logging.ForRegister(ctx, reg).Info("register exported", "file", name, "bytes", len(data))

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", contentDisposition(name))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}

// handleImport replaces the register with the rows of the uploaded "file".
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ws := workspaceFrom(ctx)
	reg := registerFrom(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, s.service.Config().MaxImportSize+multipartOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		s.finish(w, r, s.service.Reject(ctx, ws, uploadError(err)), nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.finish(w, r, s.service.Reject(ctx, ws, uploadError(err)), nil)
		return
	}
	defer file.Close()

	err = s.service.Import(ctx, ws, reg, header.Filename, file, header.Size)
	if err == nil {
		logging.ForRegister(ctx, reg).Info("register imported", "file", header.Filename, "bytes", header.Size)
	}
	s.finish(w, r, err, map[string]string{"status": "imported"})
}
