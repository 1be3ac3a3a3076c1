// Package listing applies multi-facet filters and deterministic orderings to
// job and candidate collections. All operations are pure: a fixed input
// collection and filter spec always produce the same output.
package listing

import (
	"strings"

	"github.com/jordan/vibe-jobs/internal/db"
	"github.com/jordan/vibe-jobs/internal/matching"
)

// Filters is a multi-facet filter spec for job listings. Zero-valued facets
// impose no constraint; set facets compose with logical AND.
type Filters struct {
	Category        string
	SalaryFloor     int
	LocationType    string
	ExperienceLevel string
	Tools           []string
	Query           string
}

// Matches reports whether a posting passes every set facet.
func (f Filters) Matches(j *db.JobPosting) bool {
	if f.Category != "" && !strings.EqualFold(j.Category, f.Category) {
		return false
	}
	// A posting whose ceiling reaches the floor is included even when its
	// whole range otherwise lies below it.
	if f.SalaryFloor > 0 && j.SalaryMax < f.SalaryFloor {
		return false
	}
	if f.LocationType != "" && !strings.EqualFold(j.LocationType, f.LocationType) {
		return false
	}
	if f.ExperienceLevel != "" && !strings.EqualFold(j.ExperienceLevel, f.ExperienceLevel) {
		return false
	}
	// Tool facet is OR across the requested tools: one shared tool suffices.
	if len(f.Tools) > 0 && !matching.Overlaps(j.Tools, f.Tools) {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(j.Title), q) &&
			!strings.Contains(strings.ToLower(j.Description), q) {
			return false
		}
	}
	return true
}

// FilterJobs returns the postings passing the filter spec, preserving the
// input's relative order.
func FilterJobs(jobs []db.JobPosting, f Filters) []db.JobPosting {
	filtered := make([]db.JobPosting, 0, len(jobs))
	for _, j := range jobs {
		if f.Matches(&j) {
			filtered = append(filtered, j)
		}
	}
	return filtered
}

// CandidateFilters is the employer-side filter spec for candidate profiles.
type CandidateFilters struct {
	Availability db.Availability
	Location     string
	Tools        []string
	Query        string
}

// Matches reports whether a profile passes every set facet.
func (f CandidateFilters) Matches(p *db.CandidateProfile) bool {
	if f.Availability != "" && p.Availability != f.Availability {
		return false
	}
	if f.Location != "" && !strings.EqualFold(p.Location, f.Location) {
		return false
	}
	if len(f.Tools) > 0 && !matching.Overlaps(f.Tools, p.Tools) {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		name := strings.ToLower(p.FirstName + " " + p.LastName)
		if !strings.Contains(name, q) && !strings.Contains(strings.ToLower(p.Headline), q) {
			return false
		}
	}
	return true
}

// FilterCandidates returns the profiles passing the filter spec, preserving
// the input's relative order.
func FilterCandidates(profiles []db.CandidateProfile, f CandidateFilters) []db.CandidateProfile {
	filtered := make([]db.CandidateProfile, 0, len(profiles))
	for _, p := range profiles {
		if f.Matches(&p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
