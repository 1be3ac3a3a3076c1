package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrRoleAlreadyAssigned indicates the identity has already chosen a role.
var ErrRoleAlreadyAssigned = errors.New("role already assigned")

// AssignRole records the identity's one-time role choice. Returns
// ErrRoleAlreadyAssigned if a role already exists for the identity.
func (db *DB) AssignRole(ctx context.Context, identityID uuid.UUID, role Role) (*RoleAssignment, error) {
	var ra RoleAssignment
	err := db.pool.QueryRow(ctx,
		`INSERT INTO role_assignments (identity_id, role)
		 VALUES ($1, $2)
		 RETURNING id, identity_id, role, created_at`,
		identityID, role,
	).Scan(&ra.ID, &ra.IdentityID, &ra.Role, &ra.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrRoleAlreadyAssigned
		}
		return nil, fmt.Errorf("failed to assign role: %w", err)
	}
	return &ra, nil
}

// GetRoleAssignment retrieves the role for an identity. Returns (nil, nil)
// if the identity has not completed signup.
func (db *DB) GetRoleAssignment(ctx context.Context, identityID uuid.UUID) (*RoleAssignment, error) {
	var ra RoleAssignment
	err := db.pool.QueryRow(ctx,
		`SELECT id, identity_id, role, created_at
		 FROM role_assignments WHERE identity_id = $1`,
		identityID,
	).Scan(&ra.ID, &ra.IdentityID, &ra.Role, &ra.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get role assignment: %w", err)
	}
	return &ra, nil
}
