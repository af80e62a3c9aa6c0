package organisation

import (
	"context"
	"errors"
	"testing"

	"github.com/rowanvale/orgstack/internal/auth"
)

func TestServiceCreate(t *testing.T) {
	svc, _, db := newTestService(t)
	ctx := context.Background()

	owner := seedUser(t, db, "usr-owner", "owner@example.com")

	org, err := svc.Create(ctx, owner, "Acme", "widget makers")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if org.OwnerID != owner {
		t.Errorf("OwnerID = %s, want %s", org.OwnerID, owner)
	}

	// Creating does not insert a membership row for the owner.
	var count int
	if err := db.QueryRow(
		"SELECT COUNT(*) FROM organisation_members WHERE organisation_id = ?", org.ID,
	).Scan(&count); err != nil {
		t.Fatalf("counting memberships: %v", err)
	}
	if count != 0 {
		t.Errorf("membership rows after Create() = %d, want 0", count)
	}
}

func TestServiceCreateNameRequired(t *testing.T) {
	svc, _, db := newTestService(t)
	owner := seedUser(t, db, "usr-owner", "owner@example.com")

	for _, name := range []string{"", "   "} {
		if _, err := svc.Create(context.Background(), owner, name, ""); !errors.Is(err, ErrNameRequired) {
			t.Errorf("Create(%q) error = %v, want ErrNameRequired", name, err)
		}
	}
}

func TestServiceGetVisibility(t *testing.T) {
	svc, repo, db := newTestService(t)
	ctx := context.Background()

	owner := seedUser(t, db, "usr-owner", "owner@example.com")
	member := seedUser(t, db, "usr-member", "member@example.com")
	stranger := seedUser(t, db, "usr-stranger", "stranger@example.com")

	org, err := svc.Create(ctx, owner, "Acme", "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.AddMember(ctx, org.ID, member); err != nil {
		t.Fatalf("AddMember() error = %v", err)
	}

	tests := []struct {
		name    string
		caller  string
		wantErr error
	}{
		{"owner sees own organisation", owner, nil},
		{"member sees organisation", member, nil},
		{"stranger gets not found", stranger, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Get(ctx, tt.caller, org.ID)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Get() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got.ID != org.ID {
				t.Errorf("Get() ID = %s, want %s", got.ID, org.ID)
			}
		})
	}
}

func TestServiceGetNonexistentMatchesHidden(t *testing.T) {
	svc, _, db := newTestService(t)
	ctx := context.Background()

	owner := seedUser(t, db, "usr-owner", "owner@example.com")
	stranger := seedUser(t, db, "usr-stranger", "stranger@example.com")

	org, err := svc.Create(ctx, owner, "Acme", "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, hiddenErr := svc.Get(ctx, stranger, org.ID)
	_, missingErr := svc.Get(ctx, stranger, "org-missing")

	if !errors.Is(hiddenErr, ErrNotFound) || !errors.Is(missingErr, ErrNotFound) {
		t.Fatalf("errors = %v, %v, want ErrNotFound for both", hiddenErr, missingErr)
	}
	if hiddenErr.Error() != missingErr.Error() {
		t.Errorf("hidden and missing errors differ: %q vs %q", hiddenErr, missingErr)
	}
}

func TestServiceListForUser(t *testing.T) {
	svc, repo, db := newTestService(t)
	ctx := context.Background()

	alice := seedUser(t, db, "usr-alice", "alice@example.com")
	bob := seedUser(t, db, "usr-bob", "bob@example.com")

	owned, err := svc.Create(ctx, alice, "Alice's Organisation", "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	theirs, err := svc.Create(ctx, bob, "Bob's Organisation", "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.AddMember(ctx, theirs.ID, alice); err != nil {
		t.Fatalf("AddMember() error = %v", err)
	}
	// Also a member of an organisation she owns; the union must not
	// list it twice.
	if err := repo.AddMember(ctx, owned.ID, alice); err != nil {
		t.Fatalf("AddMember() error = %v", err)
	}

	orgs, err := svc.ListForUser(ctx, alice)
	if err != nil {
		t.Fatalf("ListForUser() error = %v", err)
	}
	if len(orgs) != 2 {
		t.Fatalf("ListForUser() returned %d organisations, want 2", len(orgs))
	}
	ids := map[string]bool{orgs[0].ID: true, orgs[1].ID: true}
	if !ids[owned.ID] || !ids[theirs.ID] {
		t.Errorf("ListForUser() IDs = %v, want %s and %s", ids, owned.ID, theirs.ID)
	}
}

func TestServiceListForUserEmpty(t *testing.T) {
	svc, _, db := newTestService(t)
	lonely := seedUser(t, db, "usr-lonely", "lonely@example.com")

	orgs, err := svc.ListForUser(context.Background(), lonely)
	if err != nil {
		t.Fatalf("ListForUser() error = %v", err)
	}
	if orgs == nil || len(orgs) != 0 {
		t.Errorf("ListForUser() = %v, want empty non-nil slice", orgs)
	}
}

func TestServiceAddMember(t *testing.T) {
	svc, repo, db := newTestService(t)
	ctx := context.Background()

	owner := seedUser(t, db, "usr-owner", "owner@example.com")
	member := seedUser(t, db, "usr-member", "member@example.com")

	org, err := svc.Create(ctx, owner, "Acme", "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.AddMember(ctx, owner, org.ID, member); err != nil {
		t.Fatalf("AddMember() error = %v", err)
	}

	ok, err := repo.IsMember(ctx, org.ID, member)
	if err != nil || !ok {
		t.Errorf("IsMember() = %v, %v, want true", ok, err)
	}
}

func TestServiceAddMemberOnlyOwner(t *testing.T) {
	svc, repo, db := newTestService(t)
	ctx := context.Background()

	owner := seedUser(t, db, "usr-owner", "owner@example.com")
	member := seedUser(t, db, "usr-member", "member@example.com")
	stranger := seedUser(t, db, "usr-stranger", "stranger@example.com")
	target := seedUser(t, db, "usr-target", "target@example.com")

	org, err := svc.Create(ctx, owner, "Acme", "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.AddMember(ctx, org.ID, member); err != nil {
		t.Fatalf("AddMember() error = %v", err)
	}

	// Non-owners get the same not-found as a nonexistent organisation,
	// members included.
	for _, caller := range []string{member, stranger} {
		if err := svc.AddMember(ctx, caller, org.ID, target); !errors.Is(err, ErrNotFound) {
			t.Errorf("AddMember() as %s error = %v, want ErrNotFound", caller, err)
		}
	}
	if err := svc.AddMember(ctx, owner, "org-missing", target); !errors.Is(err, ErrNotFound) {
		t.Errorf("AddMember() on missing org error = %v, want ErrNotFound", err)
	}
}

func TestServiceAddMemberUnknownUser(t *testing.T) {
	svc, _, db := newTestService(t)
	ctx := context.Background()

	owner := seedUser(t, db, "usr-owner", "owner@example.com")
	org, err := svc.Create(ctx, owner, "Acme", "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	err = svc.AddMember(ctx, owner, org.ID, "usr-ghost")
	if !errors.Is(err, auth.ErrUserNotFound) {
		t.Errorf("AddMember() error = %v, want auth.ErrUserNotFound", err)
	}
}

func TestServiceAddMemberTwice(t *testing.T) {
	svc, _, db := newTestService(t)
	ctx := context.Background()

	owner := seedUser(t, db, "usr-owner", "owner@example.com")
	member := seedUser(t, db, "usr-member", "member@example.com")

	org, err := svc.Create(ctx, owner, "Acme", "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.AddMember(ctx, owner, org.ID, member); err != nil {
		t.Fatalf("first AddMember() error = %v", err)
	}
	if err := svc.AddMember(ctx, owner, org.ID, member); !errors.Is(err, ErrAlreadyMember) {
		t.Errorf("second AddMember() error = %v, want ErrAlreadyMember", err)
	}

	var count int
	if err := db.QueryRow(
		"SELECT COUNT(*) FROM organisation_members WHERE organisation_id = ?", org.ID,
	).Scan(&count); err != nil {
		t.Fatalf("counting memberships: %v", err)
	}
	if count != 1 {
		t.Errorf("membership rows = %d, want 1", count)
	}
}

func TestServiceCanViewUser(t *testing.T) {
	svc, repo, db := newTestService(t)
	ctx := context.Background()

	owner := seedUser(t, db, "usr-owner", "owner@example.com")
	member := seedUser(t, db, "usr-member", "member@example.com")
	stranger := seedUser(t, db, "usr-stranger", "stranger@example.com")

	org, err := svc.Create(ctx, owner, "Acme", "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.AddMember(ctx, org.ID, member); err != nil {
		t.Fatalf("AddMember() error = %v", err)
	}

	tests := []struct {
		name     string
		caller   string
		target   string
		wantView bool
	}{
		{"self", stranger, stranger, true},
		{"owner views member", owner, member, true},
		{"member views owner", member, owner, true},
		{"stranger views owner", stranger, owner, false},
		{"owner views stranger", owner, stranger, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.CanViewUser(ctx, tt.caller, tt.target)
			if err != nil {
				t.Fatalf("CanViewUser() error = %v", err)
			}
			if got != tt.wantView {
				t.Errorf("CanViewUser(%s, %s) = %v, want %v", tt.caller, tt.target, got, tt.wantView)
			}
		})
	}
}
