package server

import (
	"net/http"
)

// ---------------------------------------------------------------------
// Saved Job Handlers
// ---------------------------------------------------------------------

// handleSaveJob bookmarks a posting for the caller's profile. The first save
// responds 201; saving an already-saved posting is a no-op that responds 200.
func (s *Server) handleSaveJob(w http.ResponseWriter, r *http.Request) {
	profile, ok := s.callerProfile(w, r)
	if !ok {
		return
	}

	jobID, ok := s.pathID(w, r)
	if !ok {
		return
	}

	job, err := s.db.GetJobByID(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	alreadySaved, err := s.db.IsJobSaved(r.Context(), profile.ID, jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	if err := s.db.SaveJob(r.Context(), profile.ID, jobID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	status := http.StatusCreated
	if alreadySaved {
		status = http.StatusOK
	}
	s.jsonResponse(w, status, map[string]bool{"saved": true})
}

// handleUnsaveJob removes a bookmark. Removing a missing bookmark is a no-op.
func (s *Server) handleUnsaveJob(w http.ResponseWriter, r *http.Request) {
	profile, ok := s.callerProfile(w, r)
	if !ok {
		return
	}

	jobID, ok := s.pathID(w, r)
	if !ok {
		return
	}

	if err := s.db.UnsaveJob(r.Context(), profile.ID, jobID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]bool{"saved": false})
}

func (s *Server) handleListSavedJobs(w http.ResponseWriter, r *http.Request) {
	profile, ok := s.callerProfile(w, r)
	if !ok {
		return
	}

	jobs, err := s.db.ListSavedJobs(r.Context(), profile.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, jobs)
}
