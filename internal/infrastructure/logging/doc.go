// Package logging provides structured logging for orgstack.
//
// It wraps the standard library log/slog with:
//   - Configuration-driven level, format, and output selection
//   - Default service/version attributes on every record
//   - A bootstrap Default() logger for use before config is loaded
//
// Plaintext credentials, password hashes, and signing secrets must never
// be passed as log attributes anywhere in the codebase.
package logging
