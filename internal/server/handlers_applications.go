package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jordan/vibe-jobs/internal/db"
	"github.com/jordan/vibe-jobs/internal/types"
)

// ---------------------------------------------------------------------
// Application Handlers
// ---------------------------------------------------------------------

// handleCreateApplication submits an application to an active posting for
// the caller's profile. A non-withdrawn application already on file for the
// same posting conflicts.
func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	profile, ok := s.callerProfile(w, r)
	if !ok {
		return
	}
	if !profile.Complete {
		s.errorResponse(w, http.StatusForbidden, "Complete your profile before applying")
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
	if job.Status != db.JobStatusActive {
		s.errorResponse(w, http.StatusConflict, "Job is not accepting applications")
		return
	}

	var req types.ApplicationRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := req.Validate(); err != nil {
			s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
			return
		}
	}

	application, err := s.db.CreateApplication(r.Context(), profile.ID, job.ID, req.CoverMessage)
	if err != nil {
		if err == db.ErrDuplicateApplication {
			s.errorResponse(w, http.StatusConflict, err.Error())
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, application)
}

func (s *Server) handleListMyApplications(w http.ResponseWriter, r *http.Request) {
	profile, ok := s.callerProfile(w, r)
	if !ok {
		return
	}

	applications, err := s.db.ListApplicationsByProfile(r.Context(), profile.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, applications)
}

// handleListJobApplications returns the applications on a posting owned by
// the caller's company.
func (s *Server) handleListJobApplications(w http.ResponseWriter, r *http.Request) {
	job, ok := s.ownedJob(w, r)
	if !ok {
		return
	}

	applications, err := s.db.ListApplicationsByJob(r.Context(), job.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, applications)
}

// handleUpdateApplicationStatus moves an application through the employer
// side of its lifecycle. Withdrawal is the candidate's move and is rejected
// here by request validation.
func (s *Server) handleUpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	company, ok := s.callerCompany(w, r)
	if !ok {
		return
	}

	applicationID, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req types.ApplicationStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	application, err := s.db.GetApplicationByID(r.Context(), applicationID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if application == nil {
		s.errorResponse(w, http.StatusNotFound, "Application not found")
		return
	}

	job, err := s.db.GetJobByID(r.Context(), application.JobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil || job.CompanyID != company.ID {
		forbidden := &ErrForbidden{Resource: "application"}
		s.errorResponse(w, HTTPStatus(forbidden), forbidden.Error())
		return
	}

	updated, err := s.db.UpdateApplicationStatus(r.Context(), applicationID, req.Status)
	if err != nil {
		if errors.Is(err, db.ErrInvalidTransition) {
			s.errorResponse(w, http.StatusConflict, err.Error())
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, updated)
}

// handleWithdrawApplication withdraws the caller's own pending application.
func (s *Server) handleWithdrawApplication(w http.ResponseWriter, r *http.Request) {
	profile, ok := s.callerProfile(w, r)
	if !ok {
		return
	}

	applicationID, ok := s.pathID(w, r)
	if !ok {
		return
	}

	application, err := s.db.GetApplicationByID(r.Context(), applicationID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if application == nil {
		s.errorResponse(w, http.StatusNotFound, "Application not found")
		return
	}
	if application.ProfileID != profile.ID {
		forbidden := &ErrForbidden{Resource: "application"}
		s.errorResponse(w, HTTPStatus(forbidden), forbidden.Error())
		return
	}

	updated, err := s.db.UpdateApplicationStatus(r.Context(), applicationID, db.ApplicationWithdrawn)
	if err != nil {
		if errors.Is(err, db.ErrInvalidTransition) {
			s.errorResponse(w, http.StatusConflict, "Only pending applications can be withdrawn")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, updated)
}
