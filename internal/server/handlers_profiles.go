package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jordan/vibe-jobs/internal/db"
	"github.com/jordan/vibe-jobs/internal/listing"
	"github.com/jordan/vibe-jobs/internal/types"
)

// ---------------------------------------------------------------------
// Candidate Profile Handlers
// ---------------------------------------------------------------------

func (s *Server) handleGetMyProfile(w http.ResponseWriter, r *http.Request) {
	profile, ok := s.callerProfile(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, profile)
}

// handleUpsertMyProfile creates or replaces the caller's candidate profile.
// Completeness is recomputed on every save.
func (s *Server) handleUpsertMyProfile(w http.ResponseWriter, r *http.Request) {
	identityID, ok := s.callerIdentity(w, r)
	if !ok {
		return
	}

	assignment, err := s.db.GetRoleAssignment(r.Context(), identityID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if assignment == nil || assignment.Role != db.RoleEmployee {
		roleErr := &ErrRoleRequired{Role: string(db.RoleEmployee)}
		s.errorResponse(w, HTTPStatus(roleErr), roleErr.Error())
		return
	}

	var req types.ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	input := &db.CandidateProfileInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Headline:     req.Headline,
		Location:     req.Location,
		Links:        req.Links,
		Tools:        req.Tools,
		Availability: db.Availability(req.Availability),
	}

	profile, err := s.db.UpsertProfile(r.Context(), identityID, input)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}

// ---------------------------------------------------------------------
// Candidate Search Handlers (employer side)
// ---------------------------------------------------------------------

// handleListCandidates returns complete candidate profiles filtered by query
// facets and ranked by tool match against the employer's requested tools.
func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	company, ok := s.callerCompany(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filters := listing.CandidateFilters{
		Availability: db.Availability(q.Get("availability")),
		Location:     q.Get("location"),
		Query:        q.Get("q"),
	}
	if tools := q.Get("tools"); tools != "" {
		filters.Tools = strings.Split(tools, ",")
	}

	profiles, err := s.db.ListProfiles(r.Context(), db.ListProfilesOptions{
		Availability: filters.Availability,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	filtered := listing.FilterCandidates(profiles, filters)

	// Rank against the explicit tool facet when present, otherwise against
	// the tools the company itself uses.
	required := filters.Tools
	if len(required) == 0 {
		required = company.Tools
	}
	s.jsonResponse(w, http.StatusOK, listing.RankCandidates(filtered, required))
}

// handleGetCandidate returns a single candidate profile by ID. Incomplete
// profiles are not exposed to employers.
func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.callerCompany(w, r); !ok {
		return
	}

	profileID, ok := s.pathID(w, r)
	if !ok {
		return
	}

	profile, err := s.db.GetProfileByID(r.Context(), profileID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if profile == nil || !profile.Complete {
		s.errorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}
