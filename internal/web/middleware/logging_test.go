package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/cardregisters/internal/logging"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(logging.NewHandler(&buf, "debug", "text")))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLogger_RecordsStatusAndSession(t *testing.T) {
	buf := captureLogs(t)

	h := Logger("cards_session")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodPost, "/registers/recipients/rows", nil)
	req.AddCookie(&http.Cookie{Name: "cards_session", Value: "abc-123"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusTeapot, rec.Code)
	out := buf.String()
	require.Contains(t, out, "status=418")
	require.Contains(t, out, "session="+logging.SessionTag("abc-123"))
	require.NotContains(t, out, "abc-123")
	require.Contains(t, out, "path=/registers/recipients/rows")
	require.Contains(t, out, "level=INFO")
}

func TestLogger_ServerErrorsLoggedAsErrors(t *testing.T) {
	buf := captureLogs(t)

	h := Logger("cards_session")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	out := buf.String()
	require.Contains(t, out, "level=ERROR")
	require.NotContains(t, out, "session=")
}

func TestResponseWriter_DefaultsToOK(t *testing.T) {
	rec := httptest.NewRecorder()
	ww := &responseWriter{ResponseWriter: rec, status: http.StatusOK}

	_, err := ww.Write([]byte("hi"))
	require.NoError(t, err)
	ww.WriteHeader(http.StatusNotFound)

	require.Equal(t, http.StatusOK, ww.status)
	require.Equal(t, http.StatusOK, rec.Code)
}
