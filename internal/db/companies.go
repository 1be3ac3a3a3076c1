package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const companyColumns = `id, identity_id, name, email_domain, verified, size, industry,
	        location, tools, description, created_at, updated_at`

func scanCompany(row pgx.Row) (*Company, error) {
	var c Company
	err := row.Scan(&c.ID, &c.IdentityID, &c.Name, &c.EmailDomain, &c.Verified,
		&c.Size, &c.Industry, &c.Location, &c.Tools, &c.Description,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCompanyByIdentity retrieves the company owned by an identity. Returns
// (nil, nil) if no company exists.
func (db *DB) GetCompanyByIdentity(ctx context.Context, identityID uuid.UUID) (*Company, error) {
	c, err := scanCompany(db.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM companies WHERE identity_id = $1`, companyColumns),
		identityID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return c, nil
}

// GetCompanyByID retrieves a company by its ID. Returns (nil, nil) if no
// company exists.
func (db *DB) GetCompanyByID(ctx context.Context, id uuid.UUID) (*Company, error) {
	c, err := scanCompany(db.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM companies WHERE id = $1`, companyColumns),
		id,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return c, nil
}

// UpsertCompany creates or replaces the identity's company record. The
// one-company-per-identity invariant is carried by a unique constraint on
// identity_id. Verification state is preserved across updates.
func (db *DB) UpsertCompany(ctx context.Context, identityID uuid.UUID, input *CompanyInput) (*Company, error) {
	c, err := scanCompany(db.pool.QueryRow(ctx,
		fmt.Sprintf(`INSERT INTO companies
		   (identity_id, name, email_domain, size, industry, location, tools, description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (identity_id) DO UPDATE SET
		     name = $2,
		     email_domain = $3,
		     size = $4,
		     industry = $5,
		     location = $6,
		     tools = $7,
		     description = $8,
		     updated_at = NOW()
		 RETURNING %s`, companyColumns),
		identityID, input.Name, input.EmailDomain, input.Size, input.Industry,
		input.Location, StringArray(input.Tools), input.Description,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert company: %w", err)
	}
	return c, nil
}
