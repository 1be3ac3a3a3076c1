// Package types provides request and response shapes for the HTTP API.
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jordan/vibe-jobs/internal/db"
)

// RegisterRequest represents the request to create a new identity.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdatePasswordRequest represents a password update request.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// Identity represents an authenticated account for API responses (password
// hash excluded).
type Identity struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse represents the login/register response with identity data
// and authentication token.
type LoginResponse struct {
	Identity *Identity `json:"identity"`
	Token    string    `json:"token"`
}

// RoleRequest represents the one-time role selection at signup.
type RoleRequest struct {
	Role db.Role `json:"role" validate:"required,oneof=employee employer"`
}

// ProfileRequest represents the candidate profile editor payload.
type ProfileRequest struct {
	FirstName    string   `json:"first_name" validate:"required"`
	LastName     string   `json:"last_name" validate:"required"`
	Email        string   `json:"email" validate:"required,email"`
	Headline     string   `json:"headline,omitempty"`
	Location     string   `json:"location,omitempty"`
	Links        []string `json:"links,omitempty" validate:"dive,url"`
	Tools        []string `json:"tools,omitempty"`
	Availability string   `json:"availability" validate:"required,oneof=actively_looking open not_looking"`
}

// CompanyRequest represents the company editor payload.
type CompanyRequest struct {
	Name        string   `json:"name" validate:"required"`
	EmailDomain string   `json:"email_domain" validate:"required,fqdn"`
	Size        string   `json:"size,omitempty"`
	Industry    string   `json:"industry,omitempty"`
	Location    string   `json:"location,omitempty"`
	Tools       []string `json:"tools,omitempty"`
	Description string   `json:"description,omitempty"`
}

// JobRequest represents the job posting editor payload.
type JobRequest struct {
	Title           string   `json:"title" validate:"required"`
	Description     string   `json:"description" validate:"required"`
	Category        string   `json:"category" validate:"required"`
	ExperienceLevel string   `json:"experience_level" validate:"required"`
	LocationType    string   `json:"location_type" validate:"required,oneof=remote hybrid onsite"`
	LocationDetail  string   `json:"location_detail,omitempty"`
	EmploymentType  string   `json:"employment_type" validate:"required"`
	SalaryMin       int      `json:"salary_min" validate:"required,gt=0"`
	SalaryMax       int      `json:"salary_max" validate:"required,gtefield=SalaryMin"`
	Tools           []string `json:"tools,omitempty"`
	ProficiencyTier string   `json:"proficiency_tier,omitempty"`
	Evaluation      string   `json:"evaluation" validate:"required"`
}

// ApplicationRequest represents an application submission.
type ApplicationRequest struct {
	CoverMessage string `json:"cover_message,omitempty" validate:"max=4000"`
}

// ApplicationStatusRequest represents an employer's status move on an
// application.
type ApplicationStatusRequest struct {
	Status db.ApplicationStatus `json:"status" validate:"required,oneof=reviewing interviewing offered rejected"`
}

// SessionResponse is the resolved session state for the bearer identity.
type SessionResponse struct {
	Role    *db.Role             `json:"role"`
	Profile *db.CandidateProfile `json:"profile"`
	Company *db.Company          `json:"company"`
	Cached  bool                 `json:"cached,omitempty"`
	Error   string               `json:"error,omitempty"`
}

// Validate validates the RegisterRequest using the validator.
func (r *RegisterRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdatePasswordRequest using the validator.
func (r *UpdatePasswordRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the RoleRequest using the validator.
func (r *RoleRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ProfileRequest using the validator.
func (r *ProfileRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the CompanyRequest using the validator.
func (r *CompanyRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the JobRequest using the validator.
func (r *JobRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ApplicationRequest using the validator.
func (r *ApplicationRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ApplicationStatusRequest using the validator.
func (r *ApplicationStatusRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
