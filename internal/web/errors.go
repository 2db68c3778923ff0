package web

// errors.go provides unified error response handling for the web layer.
//
// Requests that address something that does not exist (an unknown register,
// field or row) get an error response with a matching status. Failures of
// an operation the user started from the page (a rejected upload, an
// unreadable workbook) are already shown as a toast by the service, so
// browsers are sent back to the register page instead; JSON clients still
// get the error body.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/cardregisters/internal/core"
	"github.com/JonMunkholm/cardregisters/internal/web/templates"
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError logs the technical error and writes the mapped user message
// as JSON or an HTML page, depending on the client.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)

	slog.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
		"request_id", middleware.GetReqID(r.Context()),
	)

	if wantsJSON(r) {
		respondErrorJSON(w, userMsg, statusCode)
		return
	}
	respondErrorHTML(w, r, userMsg, statusCode)
}

// respondErrorJSON writes a JSON error response.
func respondErrorJSON(w http.ResponseWriter, msg core.UserMessage, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	}); err != nil {
		slog.Error("json encode error", "error", err)
	}
}

// respondErrorHTML renders the error page.
func respondErrorHTML(w http.ResponseWriter, r *http.Request, msg core.UserMessage, statusCode int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := templates.ErrorPage(msg.Message, msg.Action, msg.Code).Render(r.Context(), w); err != nil {
		slog.Error("render error page", "error", err)
	}
}

// statusFor maps an operation error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrUnknownRegister), errors.Is(err, core.ErrRowNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, core.ErrTooManyTransfers):
		return http.StatusServiceUnavailable
	case errors.Is(err, core.ErrUnknownField),
		errors.Is(err, core.ErrNoFile),
		errors.Is(err, core.ErrUnsupportedFile),
		errors.Is(err, core.ErrEmptyImport),
		errors.Is(err, core.ErrMalformedImport):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// isAddressingError reports whether err means the request named something
// that does not exist, rather than an operation that failed.
func isAddressingError(err error) bool {
	return errors.Is(err, core.ErrUnknownRegister) ||
		errors.Is(err, core.ErrUnknownField) ||
		errors.Is(err, core.ErrRowNotFound)
}

// wantsJSON checks if the client prefers JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	return strings.Contains(r.Header.Get("Content-Type"), "application/json")
}
