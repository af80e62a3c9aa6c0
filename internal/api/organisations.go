package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rowanvale/orgstack/internal/auth"
	"github.com/rowanvale/orgstack/internal/organisation"
)

// createOrganisationRequest is the request body for POST /api/organisations.
type createOrganisationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// addMemberRequest is the request body for POST /api/organisations/{orgId}/users.
type addMemberRequest struct {
	UserID string `json:"userId"`
}

// organisationList is the data payload for the list endpoint.
type organisationList struct {
	Organisations []organisation.Organisation `json:"organisations"`
}

// handleListOrganisations returns every organisation the caller owns or
// is a member of.
//
// GET /api/organisations
func (s *Server) handleListOrganisations(w http.ResponseWriter, r *http.Request) {
	caller := userFrom(r.Context())

	orgs, err := s.orgs.ListForUser(r.Context(), caller.ID)
	if err != nil {
		s.logger.Error("listing organisations", "error", err, "user_id", caller.ID)
		writeInternalError(w, "internal server error")
		return
	}

	writeSuccess(w, http.StatusOK, "Organisations retrieved successfully", organisationList{
		Organisations: orgs,
	})
}

// handleGetOrganisation returns a single organisation visible to the caller.
// Organisations the caller cannot see are reported as not found.
//
// GET /api/organisations/{orgId}
func (s *Server) handleGetOrganisation(w http.ResponseWriter, r *http.Request) {
	caller := userFrom(r.Context())
	orgID := chi.URLParam(r, "orgId")

	org, err := s.orgs.Get(r.Context(), caller.ID, orgID)
	if err != nil {
		if errors.Is(err, organisation.ErrNotFound) {
			writeNotFound(w, fmt.Sprintf("Organisation with id %s not found", orgID))
			return
		}
		s.logger.Error("getting organisation", "error", err, "org_id", orgID)
		writeInternalError(w, "internal server error")
		return
	}

	writeSuccess(w, http.StatusOK, "Organisation retrieved successfully", org)
}

// handleCreateOrganisation creates an organisation owned by the caller.
//
// POST /api/organisations
func (s *Server) handleCreateOrganisation(w http.ResponseWriter, r *http.Request) {
	caller := userFrom(r.Context())

	var req createOrganisationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Client error")
		return
	}

	org, err := s.orgs.Create(r.Context(), caller.ID, req.Name, req.Description)
	if err != nil {
		if errors.Is(err, organisation.ErrNameRequired) {
			writeValidationErrors(w, &auth.ValidationErrors{
				Fields: []auth.FieldError{{Field: "name", Message: "Name is required"}},
			})
			return
		}
		s.logger.Error("creating organisation", "error", err, "user_id", caller.ID)
		writeInternalError(w, "internal server error")
		return
	}

	writeSuccess(w, http.StatusCreated, "Organisation created successfully", org)
}

// handleAddMember adds a user to an organisation owned by the caller.
//
// POST /api/organisations/{orgId}/users
func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	caller := userFrom(r.Context())
	orgID := chi.URLParam(r, "orgId")

	var req addMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Client error")
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		writeBadRequest(w, "Client error")
		return
	}

	err := s.orgs.AddMember(r.Context(), caller.ID, orgID, req.UserID)
	switch {
	case err == nil:
	case errors.Is(err, organisation.ErrNotFound):
		writeNotFound(w, fmt.Sprintf("Organisation with id %s not found", orgID))
		return
	case errors.Is(err, auth.ErrUserNotFound):
		writeBadRequest(w, fmt.Sprintf("User with id %s not found", req.UserID))
		return
	case errors.Is(err, organisation.ErrAlreadyMember):
		writeBadRequest(w, fmt.Sprintf("User with id %s is already a member of this organisation", req.UserID))
		return
	default:
		s.logger.Error("adding member", "error", err, "org_id", orgID, "user_id", req.UserID)
		writeInternalError(w, "internal server error")
		return
	}

	writeSuccess(w, http.StatusOK, "User added to organisation successfully", nil)
}
