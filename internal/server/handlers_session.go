package server

import (
	"encoding/json"
	"net/http"

	"github.com/jordan/vibe-jobs/internal/db"
	"github.com/jordan/vibe-jobs/internal/types"
)

// ---------------------------------------------------------------------
// Session and Role Handlers
// ---------------------------------------------------------------------

// handleGetSession resolves the bearer identity into its role and profile or
// company record. A cached employer resolution is returned immediately and
// refreshed in the background.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	identityID, ok := s.callerIdentity(w, r)
	if !ok {
		return
	}

	res := s.resolver.Resolve(r.Context(), identityID)

	response := types.SessionResponse{
		Role:    res.Role,
		Profile: res.Profile,
		Company: res.Company,
		Cached:  res.FromCache,
	}
	if res.Err != nil {
		response.Error = res.Err.Error()
	}

	s.jsonResponse(w, http.StatusOK, response)
}

// handleAssignRole records the one-time role selection for the bearer
// identity. A second selection conflicts regardless of the requested role.
func (s *Server) handleAssignRole(w http.ResponseWriter, r *http.Request) {
	identityID, ok := s.callerIdentity(w, r)
	if !ok {
		return
	}

	var req types.RoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	assignment, err := s.db.AssignRole(r.Context(), identityID, req.Role)
	if err != nil {
		if err == db.ErrRoleAlreadyAssigned {
			conflict := &ErrRoleAlreadyAssigned{IdentityID: identityID}
			s.errorResponse(w, HTTPStatus(conflict), conflict.Error())
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, assignment)
}
