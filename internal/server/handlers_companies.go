package server

import (
	"encoding/json"
	"net/http"

	"github.com/jordan/vibe-jobs/internal/db"
	"github.com/jordan/vibe-jobs/internal/types"
)

// ---------------------------------------------------------------------
// Company Handlers
// ---------------------------------------------------------------------

func (s *Server) handleGetMyCompany(w http.ResponseWriter, r *http.Request) {
	company, ok := s.callerCompany(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, company)
}

// handleUpsertMyCompany creates or replaces the caller's company record.
// Verification status is never writable through this flow. A successful save
// rewrites the company cache entry so the next session resolution sees the
// new data.
func (s *Server) handleUpsertMyCompany(w http.ResponseWriter, r *http.Request) {
	identityID, ok := s.callerIdentity(w, r)
	if !ok {
		return
	}

	assignment, err := s.db.GetRoleAssignment(r.Context(), identityID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if assignment == nil || assignment.Role != db.RoleEmployer {
		roleErr := &ErrRoleRequired{Role: string(db.RoleEmployer)}
		s.errorResponse(w, HTTPStatus(roleErr), roleErr.Error())
		return
	}

	var req types.CompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	input := &db.CompanyInput{
		Name:        req.Name,
		EmailDomain: req.EmailDomain,
		Size:        req.Size,
		Industry:    req.Industry,
		Location:    req.Location,
		Tools:       req.Tools,
		Description: req.Description,
	}

	company, err := s.db.UpsertCompany(r.Context(), identityID, input)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	if s.cache != nil {
		s.cache.Set(r.Context(), identityID, company)
	}

	s.jsonResponse(w, http.StatusOK, company)
}
