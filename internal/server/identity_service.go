// Package server provides the HTTP REST API for the vibe jobs board.
package server

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jordan/vibe-jobs/internal/config"
	"github.com/jordan/vibe-jobs/internal/db"
	"github.com/jordan/vibe-jobs/internal/types"
)

// IdentityStore is the subset of the database used by IdentityService.
type IdentityStore interface {
	CreateIdentity(ctx context.Context, email, passwordHash string) (uuid.UUID, error)
	GetIdentity(ctx context.Context, id uuid.UUID) (*db.Identity, error)
	GetIdentityByEmail(ctx context.Context, email string) (*db.Identity, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// IdentityService provides business logic for identity authentication operations
type IdentityService struct {
	db             IdentityStore
	passwordConfig *config.PasswordConfig
}

// NewIdentityService creates a new IdentityService with the given dependencies
func NewIdentityService(db IdentityStore, passwordConfig *config.PasswordConfig) *IdentityService {
	return &IdentityService{
		db:             db,
		passwordConfig: passwordConfig,
	}
}

// convertIdentity converts db.Identity to types.Identity, excluding the password hash
func convertIdentity(dbIdentity *db.Identity) *types.Identity {
	if dbIdentity == nil {
		return nil
	}
	return &types.Identity{
		ID:        dbIdentity.ID,
		Email:     dbIdentity.Email,
		CreatedAt: dbIdentity.CreatedAt,
		UpdatedAt: dbIdentity.UpdatedAt,
	}
}

// Register creates a new identity with password authentication
func (s *IdentityService) Register(ctx context.Context, req *types.RegisterRequest) (*types.Identity, error) {
	exists, err := s.db.CheckEmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	identityID, err := s.db.CreateIdentity(ctx, req.Email, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity: %w", err)
	}

	dbIdentity, err := s.db.GetIdentity(ctx, identityID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve created identity: %w", err)
	}
	if dbIdentity == nil {
		return nil, fmt.Errorf("created identity not found: %s", identityID)
	}

	return convertIdentity(dbIdentity), nil
}

// Login authenticates an identity and returns its data
func (s *IdentityService) Login(ctx context.Context, req *types.LoginRequest) (*types.Identity, error) {
	dbIdentity, err := s.db.GetIdentityByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get identity by email: %w", err)
	}

	// Security: Always return generic error if identity not found or password wrong
	if dbIdentity == nil {
		return nil, &ErrInvalidCredentials{}
	}

	if !s.passwordConfig.VerifyPassword(req.Password, dbIdentity.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	return convertIdentity(dbIdentity), nil
}

// UpdatePassword updates an identity's password
func (s *IdentityService) UpdatePassword(ctx context.Context, identityID uuid.UUID, currentPassword, newPassword string) error {
	dbIdentity, err := s.db.GetIdentity(ctx, identityID)
	if err != nil {
		return fmt.Errorf("failed to get identity: %w", err)
	}
	if dbIdentity == nil {
		return &ErrIdentityNotFound{IdentityID: identityID}
	}

	if !s.passwordConfig.VerifyPassword(currentPassword, dbIdentity.PasswordHash) {
		return &ErrPasswordMismatch{}
	}

	newPasswordHash, err := s.passwordConfig.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.db.UpdatePassword(ctx, identityID, newPasswordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
