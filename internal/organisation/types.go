package organisation

import (
	"errors"
	"time"
)

// Organisation represents a tenant organisation owned by one user.
type Organisation struct {
	ID          string    `json:"orgId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	OwnerID     string    `json:"-"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// Member represents a row of the membership relation.
type Member struct {
	OrganisationID string    `json:"orgId"`
	UserID         string    `json:"userId"`
	CreatedAt      time.Time `json:"-"`
}

// Sentinel errors for organisation operations.
var (
	// ErrNotFound covers both "no such organisation" and "not visible to
	// the caller". The two must stay indistinguishable so lookups cannot
	// be used to probe for other tenants' organisations.
	ErrNotFound = errors.New("organisation not found")

	ErrNameRequired  = errors.New("organisation name is required")
	ErrAlreadyMember = errors.New("user is already a member of the organisation")
)
