package db

import (
	"time"

	"github.com/google/uuid"
)

// CandidateProfile represents an employee identity's public profile. One
// profile exists per employee identity.
type CandidateProfile struct {
	ID           uuid.UUID    `json:"id"`
	IdentityID   uuid.UUID    `json:"identity_id"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	Email        string       `json:"email"`
	Headline     string       `json:"headline,omitempty"`
	Location     string       `json:"location,omitempty"`
	Links        StringArray  `json:"links"` // JSONB array
	Tools        StringArray  `json:"tools"` // JSONB array, unique, unordered
	Availability Availability `json:"availability"`
	Complete     bool         `json:"complete"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// CandidateProfileInput holds the writable fields of a candidate profile.
type CandidateProfileInput struct {
	FirstName    string
	LastName     string
	Email        string
	Headline     string
	Location     string
	Links        []string
	Tools        []string
	Availability Availability
}

// IsComplete reports whether the input fills every field the profile editor
// treats as required for a complete profile.
func (in *CandidateProfileInput) IsComplete() bool {
	return in.FirstName != "" && in.LastName != "" && in.Email != "" &&
		in.Headline != "" && in.Location != "" && len(in.Tools) > 0
}
