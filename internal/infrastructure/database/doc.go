// Package database provides SQLite persistence infrastructure for orgstack.
//
// It manages:
//   - Connection lifecycle (open, pragma setup, pool tuning, close)
//   - Versioned schema migrations embedded into the binary
//   - Health checks for readiness probes
//   - A WithTx unit-of-work helper for atomic multi-table writes
//
// SQLite is configured for a single writer with WAL mode enabled, which
// allows concurrent readers during writes. All repositories in the
// domain packages operate on the wrapped *sql.DB.
package database
