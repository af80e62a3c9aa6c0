package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rowanvale/orgstack/internal/auth"
)

// handleGetUser returns a user record. A caller can always fetch their
// own record; anyone else is visible only when the two users share an
// organisation. Invisible and nonexistent users produce the same
// response.
//
// GET /api/users/{userId}
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	caller := userFrom(r.Context())
	targetID := chi.URLParam(r, "userId")

	visible, err := s.orgs.CanViewUser(r.Context(), caller.ID, targetID)
	if err != nil {
		s.logger.Error("checking user visibility", "error", err, "user_id", targetID)
		writeInternalError(w, "internal server error")
		return
	}
	if !visible {
		writeNotFound(w, fmt.Sprintf("User with id %s not found", targetID))
		return
	}

	user, err := s.users.GetByID(r.Context(), targetID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			writeNotFound(w, fmt.Sprintf("User with id %s not found", targetID))
			return
		}
		s.logger.Error("getting user", "error", err, "user_id", targetID)
		writeInternalError(w, "internal server error")
		return
	}

	writeSuccess(w, http.StatusOK, "User retrieved successfully", user)
}
