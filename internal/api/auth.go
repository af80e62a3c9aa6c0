package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rowanvale/orgstack/internal/auth"
)

// authData is the data payload returned on successful register/login.
type authData struct {
	AccessToken string     `json:"accessToken"`
	User        *auth.User `json:"user"`
}

// handleRegister creates a user account with its default organisation
// and returns an access token.
//
// POST /auth/register
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in auth.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeBadRequest(w, "Registration unsuccessful")
		return
	}

	result, err := s.auth.Register(r.Context(), in)
	if err != nil {
		var verrs *auth.ValidationErrors
		if errors.As(err, &verrs) {
			writeValidationErrors(w, verrs)
			return
		}
		s.logger.Error("registration failed", "error", err, "request_id", r.Context().Value(ctxKeyRequestID))
		writeBadRequest(w, "Registration unsuccessful")
		return
	}

	writeSuccess(w, http.StatusCreated, "Registration successful", authData{
		AccessToken: result.AccessToken,
		User:        result.User,
	})
}

// handleLogin authenticates a user and returns an access token.
//
// POST /auth/login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in auth.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeUnauthorized(w, "Authentication failed")
		return
	}

	result, err := s.auth.Login(r.Context(), in)
	if err != nil {
		var verrs *auth.ValidationErrors
		if errors.As(err, &verrs) {
			writeValidationErrors(w, verrs)
			return
		}
		if errors.Is(err, auth.ErrAuthenticationFailed) {
			writeUnauthorized(w, "Authentication failed")
			return
		}
		s.logger.Error("login failed", "error", err, "request_id", r.Context().Value(ctxKeyRequestID))
		writeInternalError(w, "internal server error")
		return
	}

	writeSuccess(w, http.StatusOK, "Login successful", authData{
		AccessToken: result.AccessToken,
		User:        result.User,
	})
}
