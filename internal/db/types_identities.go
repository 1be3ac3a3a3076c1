package db

import (
	"time"

	"github.com/google/uuid"
)

// Identity represents an authenticated user account
type Identity struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize to JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RoleAssignment maps an identity to its chosen role. At most one exists per
// identity; absence means the identity has not completed signup.
type RoleAssignment struct {
	ID         uuid.UUID `json:"id"`
	IdentityID uuid.UUID `json:"identity_id"`
	Role       Role      `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
}
