// Package core provides the register model and workspace services for the
// visitor card registers.
//
// This package holds all domain logic independent of the HTTP layer. Web
// handlers, tests and any future front end drive it through [Service].
//
// # Architecture
//
// The package is organized around several key concepts:
//
//   - Registers: two independent tables, active cards and card recipients,
//     described at init time in the registry (headers, widths, file name,
//     print orientation).
//   - Table: a generic, mutex-guarded row store ([Table]) with one closed
//     field enum per row type.
//   - Workspace: both tables plus the selected tab and the visible toast for
//     one browser session. Workspaces live only in memory.
//   - Export and import: [ExportActiveCards] and [ExportRecipients] project
//     rows into a [Sheet]; [ReconcileActiveCards] and [ReconcileRecipients]
//     rebuild rows from header-keyed records.
//   - Service: the entry point for every user operation.
//
// # Row Ids
//
// Ids come from an [IDSource] shared by both tables of a workspace. They are
// millisecond timestamps, bumped past the last id handed out, so they stay
// unique when calls arrive faster than the clock ticks. An import reserves
// one contiguous range for all of its rows.
//
// # Error Handling
//
// Technical errors are mapped to user-facing messages using [MapError].
// Each category has a code for support reference:
//
//   - IMP001-IMP002: Import errors (empty file, unreadable file)
//   - EXP001: Export errors
//   - FILE001-FILE003: File errors (size, type, missing)
//   - REG001-REG003: Register errors (register, field, row)
//   - BUSY001: Transfer limit reached
//
// # Audit Logging
//
// Every change is recorded through an [Auditor] with a severity level:
//
//   - Low: Row additions, exports
//   - Medium: Cell edits, attachments
//   - High: Row deletions
//   - Critical: Imports, which replace a whole register
//
// The audit log holds operation metadata only and is never used to restore
// register contents.
package core
