// Error codes reference.
//
// This file defines the user-facing messages shown in toasts, together with
// a code for support reference. Users can quote the code when reporting a
// problem.
//
// # Import Errors (IMP001-IMP099)
//
//	IMP001 - Empty file: the workbook has no data rows
//	         Action: Check that the first sheet contains a header row and data
//	IMP002 - Unreadable file: the workbook could not be parsed
//	         Action: Save the file as .xlsx and try again
//
// # Export Errors (EXP001-EXP099)
//
//	EXP001 - Export failed: the workbook could not be written
//	         Action: Try again
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large
//	FILE002 - Unsupported file type
//	FILE003 - No file selected
//
// # Register Errors (REG001-REG099)
//
//	REG001 - Unknown register
//	REG002 - Unknown field
//	REG003 - Row not found
//
// # Busy (BUSY001)
//
//	BUSY001 - Too many imports or exports in progress
//
// # Default Error (ERR000)
//
// Fallback when no specific error matches. Support staff should check the
// application logs for the technical error.

package core

import "errors"

// Sentinel errors. Callers wrap them with context via fmt.Errorf("%w").
var (
	ErrEmptyImport      = errors.New("import file has no records")
	ErrMalformedImport  = errors.New("import file could not be read")
	ErrExportFailed     = errors.New("export could not be written")
	ErrFileTooLarge     = errors.New("file too large")
	ErrUnsupportedFile  = errors.New("unsupported file type")
	ErrNoFile           = errors.New("no file provided")
	ErrUnknownRegister  = errors.New("unknown register")
	ErrUnknownField     = errors.New("unknown field")
	ErrRowNotFound      = errors.New("row not found")
	ErrDuplicateRowID   = errors.New("duplicate row id")
	ErrTooManyTransfers = errors.New("too many concurrent transfers")
)

// Plain confirmation messages.
const (
	MsgRowAdded        = "تم إضافة صف جديد بنجاح"
	MsgRowDeleted      = "تم حذف الصف بنجاح"
	MsgExported        = "تم تصدير الملف بنجاح"
	MsgImported        = "تم استيراد البيانات بنجاح"
	MsgAttachmentSaved = "تم إرفاق الملف بنجاح"
	PromptDeleteRow    = "هل أنت متأكد من حذف هذا الصف؟"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Support reference
}

// errorMapping pairs a sentinel with its message. Order matters: the first
// match wins, so more specific errors come first.
type errorMapping struct {
	target error
	msg    UserMessage
}

var errorMappings = []errorMapping{
	{
		target: ErrEmptyImport,
		msg: UserMessage{
			Message: "الملف فارغ أو لا يحتوي على بيانات صالحة",
			Action:  "تأكد من أن الورقة الأولى تحتوي على صف العناوين والبيانات",
			Code:    "IMP001",
		},
	},
	{
		target: ErrMalformedImport,
		msg: UserMessage{
			Message: "حدث خطأ أثناء قراءة الملف. تأكد من صحة التنسيق.",
			Action:  "احفظ الملف بصيغة xlsx وحاول مرة أخرى",
			Code:    "IMP002",
		},
	},
	{
		target: ErrExportFailed,
		msg: UserMessage{
			Message: "حدث خطأ أثناء التصدير",
			Action:  "حاول مرة أخرى",
			Code:    "EXP001",
		},
	},
	{
		target: ErrFileTooLarge,
		msg: UserMessage{
			Message: "حجم الملف أكبر من المسموح",
			Action:  "اختر ملفاً أصغر",
			Code:    "FILE001",
		},
	},
	{
		target: ErrUnsupportedFile,
		msg: UserMessage{
			Message: "نوع الملف غير مدعوم",
			Action:  "اختر ملفاً من الأنواع المسموح بها",
			Code:    "FILE002",
		},
	},
	{
		target: ErrNoFile,
		msg: UserMessage{
			Message: "لم يتم اختيار ملف",
			Action:  "اختر ملفاً ثم حاول مرة أخرى",
			Code:    "FILE003",
		},
	},
	{
		target: ErrUnknownRegister,
		msg: UserMessage{
			Message: "السجل المطلوب غير موجود",
			Action:  "اختر أحد السجلين من شريط التنقل",
			Code:    "REG001",
		},
	},
	{
		target: ErrUnknownField,
		msg: UserMessage{
			Message: "الحقل المطلوب غير معروف",
			Action:  "أعد تحميل الصفحة",
			Code:    "REG002",
		},
	},
	{
		target: ErrRowNotFound,
		msg: UserMessage{
			Message: "الصف غير موجود",
			Action:  "أعد تحميل الصفحة",
			Code:    "REG003",
		},
	},
	{
		target: ErrTooManyTransfers,
		msg: UserMessage{
			Message: "النظام مشغول حالياً",
			Action:  "انتظر قليلاً ثم حاول مرة أخرى",
			Code:    "BUSY001",
		},
	},
}

// defaultMessage is returned when no mapping matches (ERR000).
var defaultMessage = UserMessage{
	Message: "حدث خطأ غير متوقع",
	Action:  "حاول مرة أخرى",
	Code:    "ERR000",
}

// MapError converts an error to a user-facing message.
// Wrapped sentinels are recognised with errors.Is. Returns the zero value
// for a nil error and the ERR000 fallback for anything unknown.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.msg
		}
	}
	return defaultMessage
}
