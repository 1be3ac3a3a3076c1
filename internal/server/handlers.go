package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/jordan/vibe-jobs/internal/db"
	"github.com/jordan/vibe-jobs/internal/server/middleware"
)

// ---------------------------------------------------------------------
// Shared handler helpers
// ---------------------------------------------------------------------

// callerIdentity extracts the authenticated identity ID, writing a 401
// response on failure.
func (s *Server) callerIdentity(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	identityID, err := middleware.GetIdentityID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, false
	}
	return identityID, true
}

// callerProfile loads the caller's candidate profile, enforcing the employee
// role. Writes the error response on failure.
func (s *Server) callerProfile(w http.ResponseWriter, r *http.Request) (*db.CandidateProfile, bool) {
	identityID, ok := s.callerIdentity(w, r)
	if !ok {
		return nil, false
	}

	assignment, err := s.db.GetRoleAssignment(r.Context(), identityID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return nil, false
	}
	if assignment == nil || assignment.Role != db.RoleEmployee {
		err := &ErrRoleRequired{Role: string(db.RoleEmployee)}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return nil, false
	}

	profile, err := s.db.GetProfileByIdentity(r.Context(), identityID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return nil, false
	}
	if profile == nil {
		s.errorResponse(w, http.StatusNotFound, "Profile not found")
		return nil, false
	}
	return profile, true
}

// callerCompany loads the caller's company record, enforcing the employer
// role. Writes the error response on failure.
func (s *Server) callerCompany(w http.ResponseWriter, r *http.Request) (*db.Company, bool) {
	identityID, ok := s.callerIdentity(w, r)
	if !ok {
		return nil, false
	}

	assignment, err := s.db.GetRoleAssignment(r.Context(), identityID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return nil, false
	}
	if assignment == nil || assignment.Role != db.RoleEmployer {
		err := &ErrRoleRequired{Role: string(db.RoleEmployer)}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return nil, false
	}

	company, err := s.db.GetCompanyByIdentity(r.Context(), identityID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return nil, false
	}
	if company == nil {
		s.errorResponse(w, http.StatusNotFound, "Company not found")
		return nil, false
	}
	return company, true
}

// pathID parses the {id} path segment, writing a 400 response on failure.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid ID")
		return uuid.Nil, false
	}
	return id, true
}
