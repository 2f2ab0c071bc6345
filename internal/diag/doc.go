// Package diag defines the diagnostic model shared by the compiler phases.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with a stable ID such
//     as "E1003".
//   - Message – human oriented text; keep it short and actionable.
//   - Primary – a Location naming the file, function and statement index.
//   - Notes – optional secondary locations/messages.
//
// # Fatal errors
//
// Code generation stops at the first fatal condition. Phases return an *Error
// (a plain Go error carrying a Code and a Location); callers recover the code
// with CodeOf and convert the error into a Diagnostic for rendering.
// Non-fatal findings (capacity warnings, summaries) go through a Reporter,
// usually a BagReporter.
//
// Package diag does not perform formatting or IO; rendering lives in
// internal/diagfmt.
package diag
