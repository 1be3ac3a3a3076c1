package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateIdentity creates a new identity with a password hash and returns its ID
func (db *DB) CreateIdentity(ctx context.Context, email, passwordHash string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO identities (email, password_hash)
		 VALUES ($1, $2)
		 RETURNING id`,
		email, passwordHash,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create identity: %w", err)
	}
	return id, nil
}

// GetIdentity retrieves an identity by ID. Returns (nil, nil) if no row exists.
func (db *DB) GetIdentity(ctx context.Context, id uuid.UUID) (*Identity, error) {
	var ident Identity
	err := db.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at, updated_at
		 FROM identities WHERE id = $1`,
		id,
	).Scan(&ident.ID, &ident.Email, &ident.PasswordHash, &ident.CreatedAt, &ident.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get identity: %w", err)
	}
	return &ident, nil
}

// GetIdentityByEmail retrieves an identity by email. Returns (nil, nil) if no row exists.
func (db *DB) GetIdentityByEmail(ctx context.Context, email string) (*Identity, error) {
	var ident Identity
	err := db.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at, updated_at
		 FROM identities WHERE LOWER(email) = LOWER($1)`,
		email,
	).Scan(&ident.ID, &ident.Email, &ident.PasswordHash, &ident.CreatedAt, &ident.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get identity by email: %w", err)
	}
	return &ident, nil
}

// CheckEmailExists reports whether an identity with the email is registered
func (db *DB) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM identities WHERE LOWER(email) = LOWER($1))`,
		email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

// UpdatePassword replaces an identity's password hash
func (db *DB) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE identities SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("identity not found: %s", id)
	}
	return nil
}
