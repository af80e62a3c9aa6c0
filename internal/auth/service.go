package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// TxRunner runs a function inside a database transaction.
// Satisfied by *database.DB.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

// DefaultOrganisationCreator persists a user's default organisation
// inside the registration transaction. Implemented by the organisation
// repository; declared here so auth does not depend on that package.
type DefaultOrganisationCreator interface {
	CreateDefault(ctx context.Context, tx *sql.Tx, ownerID, name string) error
}

// Service orchestrates registration and login.
type Service struct {
	users  UserRepository
	orgs   DefaultOrganisationCreator
	tx     TxRunner
	secret string
	ttl    int // access token TTL in minutes
	logger *slog.Logger
}

// NewService creates an auth service. The JWT secret comes from
// configuration, loaded once at startup; it is held here and never logged.
func NewService(users UserRepository, orgs DefaultOrganisationCreator, tx TxRunner, secret string, ttlMinutes int, logger *slog.Logger) *Service {
	return &Service{
		users:  users,
		orgs:   orgs,
		tx:     tx,
		secret: secret,
		ttl:    ttlMinutes,
		logger: logger,
	}
}

// Register creates a new user account and their default organisation,
// then issues an access token.
//
// Validation collects every failing field before returning, so the
// response can enumerate all of them. The user insert and the
// default-organisation insert share one transaction: if either fails,
// neither is visible — an orphaned user with no organisation is
// unreachable state.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Result, error) {
	if verrs := ValidateRegistration(in); verrs != nil {
		return nil, verrs
	}

	count, err := s.users.CountByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("checking email uniqueness: %w", err)
	}
	if count > 0 {
		return nil, duplicateEmailError(in.Email)
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &User{
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
	}

	orgName := fmt.Sprintf("%s's Organisation", in.FirstName)

	err = s.tx.WithTx(ctx, func(tx *sql.Tx) error {
		if err := s.users.CreateTx(ctx, tx, user); err != nil {
			return err
		}
		return s.orgs.CreateDefault(ctx, tx, user.ID, orgName)
	})
	if err != nil {
		// A concurrent registration with the same email loses the race
		// at the unique index rather than at the pre-check.
		if errors.Is(err, ErrEmailExists) {
			return nil, duplicateEmailError(in.Email)
		}
		return nil, fmt.Errorf("persisting registration: %w", err)
	}

	token, err := GenerateAccessToken(user, s.secret, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID)

	return &Result{AccessToken: token, User: user}, nil
}

// Login verifies credentials and issues an access token.
//
// An unknown email and a wrong password both return
// ErrAuthenticationFailed — callers cannot tell which was wrong.
func (s *Service) Login(ctx context.Context, in LoginInput) (*Result, error) {
	if verrs := ValidateLogin(in); verrs != nil {
		return nil, verrs
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrAuthenticationFailed
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	ok, err := VerifyPassword(in.Password, user.PasswordHash)
	if err != nil || !ok {
		return nil, ErrAuthenticationFailed
	}

	token, err := GenerateAccessToken(user, s.secret, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID)

	return &Result{AccessToken: token, User: user}, nil
}

// VerifyToken parses and validates an access token with the service's secret.
func (s *Service) VerifyToken(token string) (*Claims, error) {
	return ParseToken(token, s.secret)
}

// duplicateEmailError shapes a duplicate email as a single-field
// validation failure, matching the registration error contract.
func duplicateEmailError(email string) *ValidationErrors {
	return &ValidationErrors{Fields: []FieldError{{
		Field:   "email",
		Message: fmt.Sprintf("user with email %s already exists", email),
	}}}
}
