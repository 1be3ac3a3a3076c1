package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/jordan/vibe-jobs/internal/db"
	"github.com/jordan/vibe-jobs/internal/listing"
	"github.com/jordan/vibe-jobs/internal/types"
)

// ---------------------------------------------------------------------
// Job Posting Handlers
// ---------------------------------------------------------------------

func jobInputFromRequest(req *types.JobRequest) *db.JobPostingInput {
	return &db.JobPostingInput{
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		ExperienceLevel: req.ExperienceLevel,
		LocationType:    req.LocationType,
		LocationDetail:  req.LocationDetail,
		EmploymentType:  req.EmploymentType,
		SalaryMin:       req.SalaryMin,
		SalaryMax:       req.SalaryMax,
		Tools:           req.Tools,
		ProficiencyTier: req.ProficiencyTier,
		Evaluation:      req.Evaluation,
	}
}

// parseJobFilters builds the listing filter spec from query parameters,
// writing a 400 response on a malformed salary floor.
func (s *Server) parseJobFilters(w http.ResponseWriter, r *http.Request) (listing.Filters, bool) {
	q := r.URL.Query()
	filters := listing.Filters{
		Category:        q.Get("category"),
		LocationType:    q.Get("location_type"),
		ExperienceLevel: q.Get("experience_level"),
		Query:           q.Get("q"),
	}
	if floor := q.Get("salary_floor"); floor != "" {
		n, err := strconv.Atoi(floor)
		if err != nil || n < 0 {
			s.errorResponse(w, http.StatusBadRequest, "Invalid salary_floor")
			return filters, false
		}
		filters.SalaryFloor = n
	}
	if tools := q.Get("tools"); tools != "" {
		filters.Tools = strings.Split(tools, ",")
	}
	return filters, true
}

// handleListJobs returns active postings filtered by query facets. Set facets
// compose with AND; the tool facet is OR across the requested tools.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	filters, ok := s.parseJobFilters(w, r)
	if !ok {
		return
	}

	jobs, err := s.db.ListActiveJobs(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	filtered := listing.FilterJobs(jobs, filters)

	sortBy := listing.Sort(r.URL.Query().Get("sort"))
	if sortBy == "" {
		sortBy = listing.SortNewest
	}
	listing.SortJobs(filtered, sortBy)

	s.jsonResponse(w, http.StatusOK, filtered)
}

// handleRecommendedJobs returns active postings ranked by tool match against
// the caller's profile, filtered by the same facets as the public listing.
func (s *Server) handleRecommendedJobs(w http.ResponseWriter, r *http.Request) {
	profile, ok := s.callerProfile(w, r)
	if !ok {
		return
	}

	filters, ok := s.parseJobFilters(w, r)
	if !ok {
		return
	}

	jobs, err := s.db.ListActiveJobs(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	filtered := listing.FilterJobs(jobs, filters)
	s.jsonResponse(w, http.StatusOK, listing.RankJobs(filtered, profile.Tools))
}

// jobDetail is a posting plus its company, returned by the single-job read.
type jobDetail struct {
	*db.JobPosting
	Company *db.Company `json:"company,omitempty"`
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
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

	company, err := s.db.GetCompanyByID(r.Context(), job.CompanyID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, jobDetail{JobPosting: job, Company: company})
}

// handleCreateJob creates a draft posting for the caller's company.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	company, ok := s.callerCompany(w, r)
	if !ok {
		return
	}

	var req types.JobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	job, err := s.db.CreateJob(r.Context(), company.ID, jobInputFromRequest(&req))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, job)
}

func (s *Server) handleListMyJobs(w http.ResponseWriter, r *http.Request) {
	company, ok := s.callerCompany(w, r)
	if !ok {
		return
	}

	jobs, err := s.db.ListJobsByCompany(r.Context(), company.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, jobs)
}

// ownedJob loads a posting and verifies the caller's company owns it.
func (s *Server) ownedJob(w http.ResponseWriter, r *http.Request) (*db.JobPosting, bool) {
	company, ok := s.callerCompany(w, r)
	if !ok {
		return nil, false
	}

	jobID, ok := s.pathID(w, r)
	if !ok {
		return nil, false
	}

	job, err := s.db.GetJobByID(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return nil, false
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return nil, false
	}
	if job.CompanyID != company.ID {
		forbidden := &ErrForbidden{Resource: "job posting"}
		s.errorResponse(w, HTTPStatus(forbidden), forbidden.Error())
		return nil, false
	}
	return job, true
}

func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	job, ok := s.ownedJob(w, r)
	if !ok {
		return
	}

	var req types.JobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	updated, err := s.db.UpdateJob(r.Context(), job.ID, jobInputFromRequest(&req))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, updated)
}

// handlePublishJob moves a posting to active. The first publish stamps
// published_at; republishing a paused posting keeps the original stamp.
func (s *Server) handlePublishJob(w http.ResponseWriter, r *http.Request) {
	s.setJobStatus(w, r, db.JobStatusActive)
}

// handlePauseJob pauses an active posting, hiding it from listings without
// discarding its publish stamp.
func (s *Server) handlePauseJob(w http.ResponseWriter, r *http.Request) {
	job, ok := s.ownedJob(w, r)
	if !ok {
		return
	}
	if job.Status != db.JobStatusActive {
		s.errorResponse(w, http.StatusConflict, "Only active jobs can be paused")
		return
	}

	updated, err := s.db.SetJobStatus(r.Context(), job.ID, db.JobStatusPaused)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, updated)
}

// handleCloseJob closes a posting. Closed postings never return to active.
func (s *Server) handleCloseJob(w http.ResponseWriter, r *http.Request) {
	s.setJobStatus(w, r, db.JobStatusClosed)
}

func (s *Server) setJobStatus(w http.ResponseWriter, r *http.Request, status db.JobStatus) {
	job, ok := s.ownedJob(w, r)
	if !ok {
		return
	}

	if job.Status == db.JobStatusClosed {
		s.errorResponse(w, http.StatusConflict, "Job is closed")
		return
	}

	updated, err := s.db.SetJobStatus(r.Context(), job.ID, status)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, updated)
}
