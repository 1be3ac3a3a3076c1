package db

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// Role is the one-time employee/employer designation chosen at signup.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleEmployer Role = "employer"
)

// Valid reports whether the role is one of the known designations.
func (r Role) Valid() bool {
	return r == RoleEmployee || r == RoleEmployer
}

// Availability is a candidate's declared job-search state.
type Availability string

const (
	AvailabilityActivelyLooking Availability = "actively_looking"
	AvailabilityOpen            Availability = "open"
	AvailabilityNotLooking      Availability = "not_looking"
)

// Valid reports whether the availability is a known state.
func (a Availability) Valid() bool {
	switch a {
	case AvailabilityActivelyLooking, AvailabilityOpen, AvailabilityNotLooking:
		return true
	}
	return false
}

// JobStatus is the lifecycle state of a job posting.
type JobStatus string

const (
	JobStatusDraft  JobStatus = "draft"
	JobStatusActive JobStatus = "active"
	JobStatusPaused JobStatus = "paused"
	JobStatusClosed JobStatus = "closed"
)

// Valid reports whether the status is a known lifecycle state.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusDraft, JobStatusActive, JobStatusPaused, JobStatusClosed:
		return true
	}
	return false
}

// ApplicationStatus is the state of an application in its fixed lifecycle.
type ApplicationStatus string

const (
	ApplicationPending      ApplicationStatus = "pending"
	ApplicationReviewing    ApplicationStatus = "reviewing"
	ApplicationInterviewing ApplicationStatus = "interviewing"
	ApplicationOffered      ApplicationStatus = "offered"
	ApplicationRejected     ApplicationStatus = "rejected"
	ApplicationWithdrawn    ApplicationStatus = "withdrawn"
)

// CanTransition reports whether an application may move from its current
// status to next. Withdrawal is only allowed from pending; offered, rejected,
// and withdrawn are terminal.
func (s ApplicationStatus) CanTransition(next ApplicationStatus) bool {
	switch s {
	case ApplicationPending:
		return next == ApplicationReviewing || next == ApplicationInterviewing || next == ApplicationWithdrawn
	case ApplicationReviewing:
		return next == ApplicationInterviewing || next == ApplicationOffered || next == ApplicationRejected
	case ApplicationInterviewing:
		return next == ApplicationOffered || next == ApplicationRejected
	}
	return false
}

// StringArray handles JSONB string arrays
type StringArray []string

// Scan implements the Scanner interface for StringArray
func (a *StringArray) Scan(src interface{}) error {
	if src == nil {
		*a = []string{}
		return nil
	}
	switch source := src.(type) {
	case []byte:
		return json.Unmarshal(source, a)
	case string:
		return json.Unmarshal([]byte(source), a)
	}
	return errors.New("unsupported source type for StringArray")
}

// Value implements the Valuer interface for StringArray
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}
