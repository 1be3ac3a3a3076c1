package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// JobPosting represents a job posted by a company.
type JobPosting struct {
	ID              uuid.UUID   `json:"id"`
	CompanyID       uuid.UUID   `json:"company_id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	Category        string      `json:"category"`
	ExperienceLevel string      `json:"experience_level"`
	LocationType    string      `json:"location_type"` // remote, hybrid, onsite
	LocationDetail  string      `json:"location_detail,omitempty"`
	EmploymentType  string      `json:"employment_type"`
	SalaryMin       int         `json:"salary_min"`
	SalaryMax       int         `json:"salary_max"`
	Tools           StringArray `json:"tools"` // JSONB array of required AI tools
	ProficiencyTier string      `json:"proficiency_tier"`
	Evaluation      string      `json:"evaluation"` // "how you'll be tested" narrative
	Status          JobStatus   `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	PublishedAt     *time.Time  `json:"published_at,omitempty"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// JobPostingInput holds the writable fields of a job posting.
type JobPostingInput struct {
	Title           string
	Description     string
	Category        string
	ExperienceLevel string
	LocationType    string
	LocationDetail  string
	EmploymentType  string
	SalaryMin       int
	SalaryMax       int
	Tools           []string
	ProficiencyTier string
	Evaluation      string
}

// Validate enforces the posting invariants: both salary bounds are required
// with ceiling >= floor, and the evaluation narrative is mandatory.
func (in *JobPostingInput) Validate() error {
	if in.Title == "" {
		return fmt.Errorf("job posting: title is required")
	}
	if in.SalaryMin <= 0 || in.SalaryMax <= 0 {
		return fmt.Errorf("job posting: salary floor and ceiling are both required")
	}
	if in.SalaryMax < in.SalaryMin {
		return fmt.Errorf("job posting: salary ceiling %d is below floor %d", in.SalaryMax, in.SalaryMin)
	}
	if in.Evaluation == "" {
		return fmt.Errorf("job posting: evaluation narrative is required")
	}
	return nil
}
