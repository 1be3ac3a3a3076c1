package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const profileColumns = `id, identity_id, first_name, last_name, email, headline, location,
	        links, tools, availability, complete, created_at, updated_at`

func scanProfile(row pgx.Row) (*CandidateProfile, error) {
	var p CandidateProfile
	err := row.Scan(&p.ID, &p.IdentityID, &p.FirstName, &p.LastName, &p.Email,
		&p.Headline, &p.Location, &p.Links, &p.Tools, &p.Availability,
		&p.Complete, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProfileByIdentity retrieves the candidate profile owned by an identity.
// Returns (nil, nil) if no profile exists.
func (db *DB) GetProfileByIdentity(ctx context.Context, identityID uuid.UUID) (*CandidateProfile, error) {
	p, err := scanProfile(db.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM candidate_profiles WHERE identity_id = $1`, profileColumns),
		identityID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

// GetProfileByID retrieves a candidate profile by its ID. Returns (nil, nil)
// if no profile exists.
func (db *DB) GetProfileByID(ctx context.Context, id uuid.UUID) (*CandidateProfile, error) {
	p, err := scanProfile(db.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM candidate_profiles WHERE id = $1`, profileColumns),
		id,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

// UpsertProfile creates or replaces the identity's candidate profile. The
// one-profile-per-identity invariant is carried by a unique constraint on
// identity_id.
func (db *DB) UpsertProfile(ctx context.Context, identityID uuid.UUID, input *CandidateProfileInput) (*CandidateProfile, error) {
	p, err := scanProfile(db.pool.QueryRow(ctx,
		fmt.Sprintf(`INSERT INTO candidate_profiles
		   (identity_id, first_name, last_name, email, headline, location, links, tools, availability, complete)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (identity_id) DO UPDATE SET
		     first_name = $2,
		     last_name = $3,
		     email = $4,
		     headline = $5,
		     location = $6,
		     links = $7,
		     tools = $8,
		     availability = $9,
		     complete = $10,
		     updated_at = NOW()
		 RETURNING %s`, profileColumns),
		identityID, input.FirstName, input.LastName, input.Email, input.Headline,
		input.Location, StringArray(input.Links), StringArray(input.Tools),
		input.Availability, input.IsComplete(),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}
	return p, nil
}

// ListProfilesOptions contains filters for listing candidate profiles.
type ListProfilesOptions struct {
	Availability Availability // empty = any
	Limit        int
	Offset       int
}

// ListProfiles lists complete candidate profiles for employer browsing,
// newest first. Incomplete profiles are never listed.
func (db *DB) ListProfiles(ctx context.Context, opts ListProfilesOptions) ([]CandidateProfile, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := db.pool.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM candidate_profiles
		 WHERE complete = TRUE
		   AND ($1 = '' OR availability = $1)
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`, profileColumns),
		string(opts.Availability), limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []CandidateProfile
	for rows.Next() {
		var p CandidateProfile
		if err := rows.Scan(&p.ID, &p.IdentityID, &p.FirstName, &p.LastName, &p.Email,
			&p.Headline, &p.Location, &p.Links, &p.Tools, &p.Availability,
			&p.Complete, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}
