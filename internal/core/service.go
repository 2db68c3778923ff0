package core

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// SheetCodec reads and writes spreadsheet files.
type SheetCodec interface {
	Write(w io.Writer, s Sheet) error
	Read(r io.ReaderAt, size int64) ([]Record, error)
}

// Accepted file extensions.
var (
	ImportExtensions     = []string{".xlsx", ".xls"}
	AttachmentExtensions = []string{".jpg", ".jpeg", ".png", ".pdf", ".doc", ".docx", ".xls", ".xlsx"}
)

// Default size limits.
const (
	DefaultMaxImportSize     int64 = 10 << 20
	DefaultMaxAttachmentSize int64 = 10 << 20
)

// ServiceConfig tunes a Service. Zero values use defaults.
type ServiceConfig struct {
	MaxImportSize     int64
	MaxAttachmentSize int64
}

// Service runs register operations against a session's workspace.
// Every failure is turned into one notification on that workspace and also
// returned, so callers can log it.
type Service struct {
	sessions *SessionStore
	codec    SheetCodec
	limiter  *TransferLimiter
	audit    *Auditor
	cfg      ServiceConfig
}

// NewService creates a Service. A nil limiter or auditor gets a default one.
func NewService(sessions *SessionStore, codec SheetCodec, limiter *TransferLimiter, audit *Auditor, cfg ServiceConfig) *Service {
	if limiter == nil {
		limiter = NewTransferLimiter(0, 0)
	}
	if audit == nil {
		audit = NewAuditor(nil)
	}
	if cfg.MaxImportSize <= 0 {
		cfg.MaxImportSize = DefaultMaxImportSize
	}
	if cfg.MaxAttachmentSize <= 0 {
		cfg.MaxAttachmentSize = DefaultMaxAttachmentSize
	}
	return &Service{
		sessions: sessions,
		codec:    codec,
		limiter:  limiter,
		audit:    audit,
		cfg:      cfg,
	}
}

// Sessions returns the session store.
func (s *Service) Sessions() *SessionStore { return s.sessions }

// Limiter returns the transfer limiter.
func (s *Service) Limiter() *TransferLimiter { return s.limiter }

// Audit returns the auditor.
func (s *Service) Audit() *Auditor { return s.audit }

// Config returns the effective limits.
func (s *Service) Config() ServiceConfig { return s.cfg }

// fail shows err to the user and returns it unchanged.
func (s *Service) fail(ctx context.Context, ws *Workspace, err error) error {
	ws.Notify(ctx, failure(MapError(err)))
	return err
}

// Reject reports a request that failed before reaching an operation, such
// as an upload over the size limit, the same way operations report errors.
func (s *Service) Reject(ctx context.Context, ws *Workspace, err error) error {
	return s.fail(ctx, ws, err)
}

// AddRow appends a blank row to reg and returns its id.
func (s *Service) AddRow(ctx context.Context, ws *Workspace, reg Register) (int64, error) {
	var id int64
	switch reg {
	case ActiveCards:
		id = ws.Active.AddRow(ctx).ID
	case Recipients:
		id = ws.Recipients.AddRow(ctx).ID
	default:
		return 0, s.fail(ctx, ws, fmt.Errorf("%w: %q", ErrUnknownRegister, reg))
	}

	s.audit.Log(ctx, AuditLogParams{Action: ActionRowAdd, Register: reg, RowID: id})
	return id, nil
}

// UpdateField sets one field of a row. fieldName is the field's wire name.
// An unknown row id changes nothing and is not an error.
func (s *Service) UpdateField(ctx context.Context, ws *Workspace, reg Register, id int64, fieldName, value string) error {
	var (
		old     string
		updated bool
	)

	switch reg {
	case ActiveCards:
		f, err := ParseActiveCardField(fieldName)
		if err != nil {
			return s.fail(ctx, ws, err)
		}
		if row, ok := ws.Active.Row(id); ok {
			old = row.Get(f)
		}
		updated = ws.Active.UpdateField(id, f, value)
	case Recipients:
		f, err := ParseRecipientField(fieldName)
		if err != nil {
			return s.fail(ctx, ws, err)
		}
		if row, ok := ws.Recipients.Row(id); ok {
			old = row.Get(f)
		}
		updated = ws.Recipients.UpdateField(id, f, value)
	default:
		return s.fail(ctx, ws, fmt.Errorf("%w: %q", ErrUnknownRegister, reg))
	}

	if updated && old != value {
		s.audit.Log(ctx, AuditLogParams{
			Action:   ActionCellEdit,
			Register: reg,
			RowID:    id,
			Field:    fieldName,
			OldValue: old,
			NewValue: value,
		})
	}
	return nil
}

// FileUpload is a file received from the user.
type FileUpload struct {
	Name        string
	ContentType string
	Data        []byte
}

// SetAttachment attaches a file to a row. An upload with no name clears
// the attachment. Like UpdateField, an unknown row id changes nothing and is
// not an error.
func (s *Service) SetAttachment(ctx context.Context, ws *Workspace, reg Register, id int64, f FileUpload) error {
	var a *Attachment
	if f.Name != "" {
		if !hasExtension(f.Name, AttachmentExtensions) {
			return s.fail(ctx, ws, fmt.Errorf("%w: %s", ErrUnsupportedFile, filepath.Ext(f.Name)))
		}
		if int64(len(f.Data)) > s.cfg.MaxAttachmentSize {
			return s.fail(ctx, ws, fmt.Errorf("%w: %d bytes", ErrFileTooLarge, len(f.Data)))
		}
		a = &Attachment{
			ID:          uuid.NewString(),
			Name:        filepath.Base(f.Name),
			ContentType: f.ContentType,
			Size:        int64(len(f.Data)),
			Data:        f.Data,
		}
	}

	var ok bool
	switch reg {
	case ActiveCards:
		ok = ws.Active.SetAttachment(id, a)
	case Recipients:
		ok = ws.Recipients.SetAttachment(id, a)
	default:
		return s.fail(ctx, ws, fmt.Errorf("%w: %q", ErrUnknownRegister, reg))
	}
	if !ok {
		return nil
	}

	if a != nil {
		ws.Notify(ctx, success(MsgAttachmentSaved))
	}
	s.audit.Log(ctx, AuditLogParams{
		Action:   ActionAttachmentSet,
		Register: reg,
		RowID:    id,
		NewValue: attachmentName(a),
		FileName: attachmentName(a),
	})
	return nil
}

// Attachment returns the file attached to a row.
func (s *Service) Attachment(ws *Workspace, reg Register, id int64) (*Attachment, error) {
	a, ok := ws.Attachment(reg, id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrRowNotFound, id)
	}
	return a, nil
}

// DeleteRow removes a row once c confirms. Returns whether a row was removed.
func (s *Service) DeleteRow(ctx context.Context, ws *Workspace, reg Register, id int64, c Confirmer) (bool, error) {
	var removed bool
	switch reg {
	case ActiveCards:
		removed = ws.Active.DeleteRow(ctx, id, c)
	case Recipients:
		removed = ws.Recipients.DeleteRow(ctx, id, c)
	default:
		return false, s.fail(ctx, ws, fmt.Errorf("%w: %q", ErrUnknownRegister, reg))
	}

	if removed {
		s.audit.Log(ctx, AuditLogParams{Action: ActionRowDelete, Register: reg, RowID: id, RowsAffected: 1})
	}
	return removed, nil
}

// Export builds the workbook for reg and returns its file name and bytes.
func (s *Service) Export(ctx context.Context, ws *Workspace, reg Register) (string, []byte, error) {
	var art Artifact
	switch reg {
	case ActiveCards:
		art = ExportActiveCards(ws.Active.Rows())
	case Recipients:
		art = ExportRecipients(ws.Recipients.Rows())
	default:
		return "", nil, s.fail(ctx, ws, fmt.Errorf("%w: %q", ErrUnknownRegister, reg))
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return "", nil, s.fail(ctx, ws, err)
	}
	defer s.limiter.Release()

	var buf bytes.Buffer
	if err := s.codec.Write(&buf, art.Sheet); err != nil {
		return "", nil, s.fail(ctx, ws, fmt.Errorf("%w: %v", ErrExportFailed, err))
	}

	ws.Notify(ctx, success(MsgExported))
	s.audit.Log(ctx, AuditLogParams{
		Action:       ActionExport,
		Register:     reg,
		RowsAffected: len(art.Sheet.Records),
		FileName:     art.FileName,
	})
	return art.FileName, buf.Bytes(), nil
}

// Import replaces reg's rows with the records in the uploaded workbook.
//
// The file is decoded before the register is touched; only the final swap
// is serialized with other edits. Edits made while a file is being decoded
// are overwritten by the import.
func (s *Service) Import(ctx context.Context, ws *Workspace, reg Register, name string, r io.ReaderAt, size int64) error {
	if _, err := ParseRegister(string(reg)); err != nil {
		return s.fail(ctx, ws, err)
	}
	if name == "" || r == nil {
		return s.fail(ctx, ws, ErrNoFile)
	}
	if !hasExtension(name, ImportExtensions) {
		return s.fail(ctx, ws, fmt.Errorf("%w: %s", ErrUnsupportedFile, filepath.Ext(name)))
	}
	if size > s.cfg.MaxImportSize {
		return s.fail(ctx, ws, fmt.Errorf("%w: %d bytes", ErrFileTooLarge, size))
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return s.fail(ctx, ws, err)
	}
	records, err := s.codec.Read(r, size)
	s.limiter.Release()
	if err != nil {
		return s.fail(ctx, ws, fmt.Errorf("%w: %v", ErrMalformedImport, err))
	}

	var count int
	switch reg {
	case ActiveCards:
		rows, err := ReconcileActiveCards(records, ws.Active.IDs())
		if err != nil {
			return s.fail(ctx, ws, err)
		}
		if err := ws.Active.ReplaceAll(rows); err != nil {
			return s.fail(ctx, ws, err)
		}
		count = len(records)
	case Recipients:
		rows, err := ReconcileRecipients(records, ws.Recipients.IDs())
		if err != nil {
			return s.fail(ctx, ws, err)
		}
		if err := ws.Recipients.ReplaceAll(rows); err != nil {
			return s.fail(ctx, ws, err)
		}
		count = len(records)
	}

	ws.Notify(ctx, success(MsgImported))
	s.audit.Log(ctx, AuditLogParams{
		Action:       ActionImport,
		Register:     reg,
		RowsAffected: count,
		FileName:     filepath.Base(name),
	})
	return nil
}

// hasExtension reports whether name ends in one of exts, ignoring case.
func hasExtension(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
