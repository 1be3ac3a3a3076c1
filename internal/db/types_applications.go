package db

import (
	"time"

	"github.com/google/uuid"
)

// Application links a candidate profile to a job posting.
type Application struct {
	ID           uuid.UUID         `json:"id"`
	ProfileID    uuid.UUID         `json:"profile_id"`
	JobID        uuid.UUID         `json:"job_id"`
	Status       ApplicationStatus `json:"status"`
	CoverMessage string            `json:"cover_message,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// SavedJob is a (profile, job) bookmark.
type SavedJob struct {
	ProfileID uuid.UUID `json:"profile_id"`
	JobID     uuid.UUID `json:"job_id"`
	CreatedAt time.Time `json:"created_at"`
}
