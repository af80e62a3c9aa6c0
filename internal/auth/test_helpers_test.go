package auth

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// testDB creates an in-memory SQLite database with the full schema applied.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema := `
		CREATE TABLE users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			phone TEXT,
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
			updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		) STRICT;

		CREATE UNIQUE INDEX idx_users_email ON users(email);

		CREATE TABLE organisations (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			owner_id TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
			updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
			FOREIGN KEY (owner_id) REFERENCES users(id) ON DELETE CASCADE
		) STRICT;

		CREATE TABLE organisation_members (
			organisation_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
			PRIMARY KEY (organisation_id, user_id),
			FOREIGN KEY (organisation_id) REFERENCES organisations(id) ON DELETE CASCADE,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		) STRICT;
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("applying schema: %v", err)
	}

	return db
}

// sqlTxRunner satisfies TxRunner over a plain *sql.DB for tests.
type sqlTxRunner struct {
	db *sql.DB
}

func (r *sqlTxRunner) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // Rollback is no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// fakeOrgCreator records default-organisation inserts and can be told to fail.
type fakeOrgCreator struct {
	fail    error
	ownerID string
	name    string
}

func (f *fakeOrgCreator) CreateDefault(ctx context.Context, tx *sql.Tx, ownerID, name string) error {
	if f.fail != nil {
		return f.fail
	}
	f.ownerID = ownerID
	f.name = name
	_, err := tx.ExecContext(ctx,
		"INSERT INTO organisations (id, name, owner_id) VALUES (?, ?, ?)",
		"org-"+ownerID, name, ownerID)
	return err
}
