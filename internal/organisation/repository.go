package organisation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for organisation persistence,
// including the membership relation.
type Repository interface {
	Create(ctx context.Context, org *Organisation) error
	GetByID(ctx context.Context, id string) (*Organisation, error)
	GetOwned(ctx context.Context, id, ownerID string) (*Organisation, error)
	GetForMember(ctx context.Context, id, userID string) (*Organisation, error)
	ListOwnedBy(ctx context.Context, userID string) ([]Organisation, error)
	ListMemberOf(ctx context.Context, userID string) ([]Organisation, error)
	AddMember(ctx context.Context, orgID, userID string) error
	IsMember(ctx context.Context, orgID, userID string) (bool, error)
	ShareOrganisation(ctx context.Context, userA, userB string) (bool, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewRepository creates a new SQLite-backed organisation repository.
func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const orgColumns = "id, name, description, owner_id, created_at, updated_at"

// Create inserts a new organisation. The ID is generated if empty.
func (r *SQLiteRepository) Create(ctx context.Context, org *Organisation) error {
	return r.create(ctx, r.db, org)
}

// CreateTx inserts a new organisation within an existing transaction.
func (r *SQLiteRepository) CreateTx(ctx context.Context, tx *sql.Tx, org *Organisation) error {
	return r.create(ctx, tx, org)
}

// CreateDefault inserts a user's default organisation inside the
// registration transaction. It satisfies the auth package's
// DefaultOrganisationCreator interface.
func (r *SQLiteRepository) CreateDefault(ctx context.Context, tx *sql.Tx, ownerID, name string) error {
	return r.create(ctx, tx, &Organisation{Name: name, OwnerID: ownerID})
}

// execer covers *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *SQLiteRepository) create(ctx context.Context, e execer, org *Organisation) error {
	if org.ID == "" {
		org.ID = "org-" + uuid.NewString()[:8]
	}

	now := time.Now().UTC().Format(time.RFC3339)
	org.CreatedAt, _ = time.Parse(time.RFC3339, now) //nolint:errcheck // format is controlled
	org.UpdatedAt = org.CreatedAt

	_, err := e.ExecContext(ctx,
		`INSERT INTO organisations (id, name, description, owner_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		org.ID, org.Name, nullString(org.Description), org.OwnerID, now, now,
	)
	if err != nil {
		return fmt.Errorf("creating organisation: %w", err)
	}

	return nil
}

// GetByID retrieves an organisation by ID regardless of visibility.
// Service-level access checks must not use this for caller-facing reads.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*Organisation, error) {
	return r.getOrg(ctx, "SELECT "+orgColumns+" FROM organisations WHERE id = ?", id)
}

// GetOwned retrieves an organisation only if ownerID owns it.
func (r *SQLiteRepository) GetOwned(ctx context.Context, id, ownerID string) (*Organisation, error) {
	return r.getOrg(ctx,
		"SELECT "+orgColumns+" FROM organisations WHERE id = ? AND owner_id = ?",
		id, ownerID)
}

// GetForMember retrieves an organisation only if userID is a member.
func (r *SQLiteRepository) GetForMember(ctx context.Context, id, userID string) (*Organisation, error) {
	return r.getOrg(ctx,
		`SELECT o.id, o.name, o.description, o.owner_id, o.created_at, o.updated_at
		 FROM organisations o
		 JOIN organisation_members m ON m.organisation_id = o.id
		 WHERE o.id = ? AND m.user_id = ?`,
		id, userID)
}

// ListOwnedBy returns all organisations owned by the user.
func (r *SQLiteRepository) ListOwnedBy(ctx context.Context, userID string) ([]Organisation, error) {
	return r.listOrgs(ctx,
		"SELECT "+orgColumns+" FROM organisations WHERE owner_id = ? ORDER BY created_at ASC",
		userID)
}

// ListMemberOf returns all organisations the user is a member of.
func (r *SQLiteRepository) ListMemberOf(ctx context.Context, userID string) ([]Organisation, error) {
	return r.listOrgs(ctx,
		`SELECT o.id, o.name, o.description, o.owner_id, o.created_at, o.updated_at
		 FROM organisations o
		 JOIN organisation_members m ON m.organisation_id = o.id
		 WHERE m.user_id = ? ORDER BY o.created_at ASC`,
		userID)
}

// AddMember inserts a membership row. The composite primary key turns a
// duplicate insert into ErrAlreadyMember.
func (r *SQLiteRepository) AddMember(ctx context.Context, orgID, userID string) error {
	now := time.Now().UTC().Format(time.RFC3339)

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO organisation_members (organisation_id, user_id, created_at) VALUES (?, ?, ?)",
		orgID, userID, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyMember
		}
		return fmt.Errorf("adding member: %w", err)
	}

	return nil
}

// IsMember reports whether the (organisation, user) pair exists in the
// membership relation.
func (r *SQLiteRepository) IsMember(ctx context.Context, orgID, userID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM organisation_members WHERE organisation_id = ? AND user_id = ?",
		orgID, userID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking membership: %w", err)
	}
	return count > 0, nil
}

// ShareOrganisation reports whether two users have at least one
// organisation in common, where "in" means owning or being a member.
func (r *SQLiteRepository) ShareOrganisation(ctx context.Context, userA, userB string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM organisations o
		 WHERE (o.owner_id = ?1 OR EXISTS (
		         SELECT 1 FROM organisation_members m
		         WHERE m.organisation_id = o.id AND m.user_id = ?1))
		   AND (o.owner_id = ?2 OR EXISTS (
		         SELECT 1 FROM organisation_members m
		         WHERE m.organisation_id = o.id AND m.user_id = ?2))`,
		userA, userB,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking shared organisations: %w", err)
	}
	return count > 0, nil
}

func (r *SQLiteRepository) getOrg(ctx context.Context, query string, args ...any) (*Organisation, error) {
	row := r.db.QueryRowContext(ctx, query, args...)

	org, err := scanOrg(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning organisation: %w", err)
	}
	return org, nil
}

func (r *SQLiteRepository) listOrgs(ctx context.Context, query string, args ...any) ([]Organisation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing organisations: %w", err)
	}
	defer rows.Close()

	orgs := []Organisation{}
	for rows.Next() {
		org, err := scanOrg(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning organisation: %w", err)
		}
		orgs = append(orgs, *org)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating organisations: %w", err)
	}

	return orgs, nil
}

// scanOrg reads one organisation from a row or rows scan function.
func scanOrg(scan func(dest ...any) error) (*Organisation, error) {
	var org Organisation
	var description sql.NullString
	var createdAt, updatedAt string

	if err := scan(&org.ID, &org.Name, &description, &org.OwnerID, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	if description.Valid {
		org.Description = description.String
	}
	org.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled
	org.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt) //nolint:errcheck // format is controlled

	return &org, nil
}

// Helper functions.

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// isUniqueViolation checks if a SQLite error is a UNIQUE constraint violation.
func isUniqueViolation(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "unique constraint"))
}
