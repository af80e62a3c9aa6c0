package organisation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rowanvale/orgstack/internal/auth"
)

// UserDirectory resolves user identifiers. Implemented by the auth
// user repository.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*auth.User, error)
}

// Service orchestrates organisation queries and mutations, enforcing
// the visibility and membership rules.
type Service struct {
	repo   Repository
	users  UserDirectory
	logger *slog.Logger
}

// NewService creates an organisation service.
func NewService(repo Repository, users UserDirectory, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		logger: logger,
	}
}

// ListForUser returns the union of organisations the user owns and
// organisations the user is a member of, deduplicated by ID.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]Organisation, error) {
	owned, err := s.repo.ListOwnedBy(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing owned organisations: %w", err)
	}

	member, err := s.repo.ListMemberOf(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing member organisations: %w", err)
	}

	seen := make(map[string]bool, len(owned))
	orgs := make([]Organisation, 0, len(owned)+len(member))
	for _, org := range owned {
		seen[org.ID] = true
		orgs = append(orgs, org)
	}
	for _, org := range member {
		if seen[org.ID] {
			continue
		}
		seen[org.ID] = true
		orgs = append(orgs, org)
	}

	return orgs, nil
}

// Get returns the organisation if the caller owns it or is a member of
// it. Ownership is checked first (cheap direct query); membership is
// the fallback. Anything else is ErrNotFound — whether or not the
// organisation exists.
func (s *Service) Get(ctx context.Context, callerID, orgID string) (*Organisation, error) {
	org, err := s.repo.GetOwned(ctx, orgID, callerID)
	if err == nil {
		return org, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	org, err = s.repo.GetForMember(ctx, orgID, callerID)
	if err != nil {
		return nil, err
	}
	return org, nil
}

// Create makes a new organisation owned by the caller. The caller is
// NOT added to the membership relation — ownership and membership are
// distinct.
func (s *Service) Create(ctx context.Context, callerID, name, description string) (*Organisation, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}

	org := &Organisation{
		Name:        name,
		Description: description,
		OwnerID:     callerID,
	}

	if err := s.repo.Create(ctx, org); err != nil {
		return nil, err
	}

	s.logger.Info("organisation created", "org_id", org.ID, "owner_id", callerID)

	return org, nil
}

// AddMember adds a user to an organisation's membership relation.
//
// Only the owner may add members. A caller who does not own the
// organisation gets the same ErrNotFound as for a nonexistent ID, so
// the call cannot be used to probe for organisations. The target user
// must exist (auth.ErrUserNotFound otherwise), and adding a user twice
// fails with ErrAlreadyMember.
func (s *Service) AddMember(ctx context.Context, callerID, orgID, userID string) error {
	if _, err := s.repo.GetOwned(ctx, orgID, callerID); err != nil {
		return err
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}

	isMember, err := s.repo.IsMember(ctx, orgID, userID)
	if err != nil {
		return err
	}
	if isMember {
		return ErrAlreadyMember
	}

	if err := s.repo.AddMember(ctx, orgID, userID); err != nil {
		return err
	}

	s.logger.Info("member added", "org_id", orgID, "user_id", userID, "added_by", callerID)

	return nil
}

// CanViewUser reports whether the caller may see the target user's
// record: always for themselves, otherwise only when the two users
// share an organisation (by ownership or membership).
func (s *Service) CanViewUser(ctx context.Context, callerID, targetID string) (bool, error) {
	if callerID == targetID {
		return true, nil
	}
	return s.repo.ShareOrganisation(ctx, callerID, targetID)
}
