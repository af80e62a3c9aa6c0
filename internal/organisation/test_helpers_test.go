package organisation

import (
	"database/sql"
	"io"
	"log/slog"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rowanvale/orgstack/internal/auth"
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

// seedUser inserts a user row directly and returns its ID.
func seedUser(t *testing.T, db *sql.DB, id, email string) string {
	t.Helper()

	_, err := db.Exec(
		"INSERT INTO users (id, email, password_hash, first_name, last_name) VALUES (?, ?, ?, ?, ?)",
		id, email, "$argon2id$unused", "Test", "User")
	if err != nil {
		t.Fatalf("seeding user %s: %v", id, err)
	}
	return id
}

// newTestService builds a service over a fresh database and returns
// both so tests can seed rows directly.
func newTestService(t *testing.T) (*Service, *SQLiteRepository, *sql.DB) {
	t.Helper()

	db := testDB(t)
	repo := NewRepository(db)
	users := auth.NewUserRepository(db)
	svc := NewService(repo, users, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return svc, repo, db
}
