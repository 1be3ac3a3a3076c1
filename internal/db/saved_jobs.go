package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// SaveJob bookmarks a posting for a profile. Saving an already-saved job is
// a no-op.
func (db *DB) SaveJob(ctx context.Context, profileID, jobID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO saved_jobs (profile_id, job_id)
		 VALUES ($1, $2)
		 ON CONFLICT (profile_id, job_id) DO NOTHING`,
		profileID, jobID,
	)
	if err != nil {
		return fmt.Errorf("failed to save job: %w", err)
	}
	return nil
}

// UnsaveJob removes a bookmark. Removing an absent bookmark is a no-op.
func (db *DB) UnsaveJob(ctx context.Context, profileID, jobID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`DELETE FROM saved_jobs WHERE profile_id = $1 AND job_id = $2`,
		profileID, jobID,
	)
	if err != nil {
		return fmt.Errorf("failed to unsave job: %w", err)
	}
	return nil
}

// ListSavedJobs retrieves the postings a profile has bookmarked, most
// recently saved first.
func (db *DB) ListSavedJobs(ctx context.Context, profileID uuid.UUID) ([]JobPosting, error) {
	rows, err := db.pool.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM job_postings j
		 JOIN saved_jobs s ON s.job_id = j.id
		 WHERE s.profile_id = $1
		 ORDER BY s.created_at DESC, j.id`, prefixedJobColumns("j")),
		profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved jobs: %w", err)
	}
	defer rows.Close()

	var jobs []JobPosting
	for rows.Next() {
		var j JobPosting
		if err := rows.Scan(&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.Category,
			&j.ExperienceLevel, &j.LocationType, &j.LocationDetail, &j.EmploymentType,
			&j.SalaryMin, &j.SalaryMax, &j.Tools, &j.ProficiencyTier, &j.Evaluation,
			&j.Status, &j.CreatedAt, &j.PublishedAt, &j.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan saved job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

// IsJobSaved reports whether a bookmark exists for the (profile, job) pair.
func (db *DB) IsJobSaved(ctx context.Context, profileID, jobID uuid.UUID) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM saved_jobs WHERE profile_id = $1 AND job_id = $2)`,
		profileID, jobID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check saved job: %w", err)
	}
	return exists, nil
}
