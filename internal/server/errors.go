// Package server provides the HTTP REST API for the vibe jobs board.
package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrIdentityNotFound indicates the identity was not found
type ErrIdentityNotFound struct {
	IdentityID uuid.UUID
}

func (e *ErrIdentityNotFound) Error() string {
	return fmt.Sprintf("identity not found: %s", e.IdentityID)
}

// ErrPasswordMismatch indicates current password is incorrect
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "current password is incorrect"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrRoleAlreadyAssigned indicates the identity already chose a role
type ErrRoleAlreadyAssigned struct {
	IdentityID uuid.UUID
}

func (e *ErrRoleAlreadyAssigned) Error() string {
	return fmt.Sprintf("role already assigned for identity: %s", e.IdentityID)
}

// ErrRoleRequired indicates the caller has not completed role selection
type ErrRoleRequired struct {
	Role string
}

func (e *ErrRoleRequired) Error() string {
	if e.Role == "" {
		return "role selection required"
	}
	return fmt.Sprintf("%s role required", e.Role)
}

// ErrForbidden indicates the caller does not own the resource
type ErrForbidden struct {
	Resource string
}

func (e *ErrForbidden) Error() string {
	return fmt.Sprintf("not allowed to access %s", e.Resource)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrEmailAlreadyExists, *ErrRoleAlreadyAssigned:
		return http.StatusConflict
	case *ErrInvalidCredentials, *ErrPasswordMismatch:
		return http.StatusUnauthorized
	case *ErrIdentityNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrRoleRequired, *ErrForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
