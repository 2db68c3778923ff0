package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "empty import",
			err:         ErrEmptyImport,
			wantCode:    "IMP001",
			wantMessage: "الملف فارغ أو لا يحتوي على بيانات صالحة",
		},
		{
			name:        "wrapped malformed import",
			err:         fmt.Errorf("%w: zip: not a valid zip file", ErrMalformedImport),
			wantCode:    "IMP002",
			wantMessage: "حدث خطأ أثناء قراءة الملف. تأكد من صحة التنسيق.",
		},
		{
			name:        "export failure",
			err:         fmt.Errorf("write: %w", ErrExportFailed),
			wantCode:    "EXP001",
			wantMessage: "حدث خطأ أثناء التصدير",
		},
		{
			name:     "file too large",
			err:      fmt.Errorf("%w: 20MB", ErrFileTooLarge),
			wantCode: "FILE001",
		},
		{
			name:     "unsupported file",
			err:      ErrUnsupportedFile,
			wantCode: "FILE002",
		},
		{
			name:     "unknown register",
			err:      fmt.Errorf("%w: %q", ErrUnknownRegister, "cards"),
			wantCode: "REG001",
		},
		{
			name:     "unknown field",
			err:      ErrUnknownField,
			wantCode: "REG002",
		},
		{
			name:     "busy",
			err:      ErrTooManyTransfers,
			wantCode: "BUSY001",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "حدث خطأ غير متوقع",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if tt.wantMessage != "" && got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}
