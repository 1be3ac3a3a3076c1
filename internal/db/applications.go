package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicateApplication indicates a non-withdrawn application already
// exists for the (profile, job) pair.
var ErrDuplicateApplication = errors.New("application already exists for this job")

// ErrInvalidTransition indicates a status move the application lifecycle
// does not allow.
var ErrInvalidTransition = errors.New("invalid application status transition")

const applicationColumns = `id, profile_id, job_id, status, cover_message, created_at, updated_at`

func scanApplication(row pgx.Row) (*Application, error) {
	var a Application
	err := row.Scan(&a.ID, &a.ProfileID, &a.JobID, &a.Status, &a.CoverMessage,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateApplication submits an application in pending status. At most one
// non-withdrawn application may exist per (profile, job) pair; the partial
// unique index surfaces duplicates as ErrDuplicateApplication.
func (db *DB) CreateApplication(ctx context.Context, profileID, jobID uuid.UUID, coverMessage string) (*Application, error) {
	a, err := scanApplication(db.pool.QueryRow(ctx,
		fmt.Sprintf(`INSERT INTO applications (profile_id, job_id, status, cover_message)
		 VALUES ($1, $2, 'pending', $3)
		 RETURNING %s`, applicationColumns),
		profileID, jobID, coverMessage,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateApplication
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return a, nil
}

// GetApplicationByID retrieves an application by its ID. Returns (nil, nil)
// if no row exists.
func (db *DB) GetApplicationByID(ctx context.Context, id uuid.UUID) (*Application, error) {
	a, err := scanApplication(db.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM applications WHERE id = $1`, applicationColumns),
		id,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return a, nil
}

// UpdateApplicationStatus moves an application to a new status after
// validating the transition against the current one.
func (db *DB) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, next ApplicationStatus) (*Application, error) {
	current, err := db.GetApplicationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}
	if !current.Status.CanTransition(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, next)
	}

	a, err := scanApplication(db.pool.QueryRow(ctx,
		fmt.Sprintf(`UPDATE applications SET status = $2, updated_at = NOW()
		 WHERE id = $1
		 RETURNING %s`, applicationColumns),
		id, next,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}
	return a, nil
}

// ListApplicationsByProfile retrieves a candidate's applications, newest first.
func (db *DB) ListApplicationsByProfile(ctx context.Context, profileID uuid.UUID) ([]Application, error) {
	return db.listApplications(ctx,
		fmt.Sprintf(`SELECT %s FROM applications WHERE profile_id = $1 ORDER BY created_at DESC, id`, applicationColumns),
		profileID)
}

// ListApplicationsByJob retrieves all applications for a posting, newest first.
func (db *DB) ListApplicationsByJob(ctx context.Context, jobID uuid.UUID) ([]Application, error) {
	return db.listApplications(ctx,
		fmt.Sprintf(`SELECT %s FROM applications WHERE job_id = $1 ORDER BY created_at DESC, id`, applicationColumns),
		jobID)
}

func (db *DB) listApplications(ctx context.Context, query string, args ...any) ([]Application, error) {
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var applications []Application
	for rows.Next() {
		var a Application
		if err := rows.Scan(&a.ID, &a.ProfileID, &a.JobID, &a.Status, &a.CoverMessage,
			&a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		applications = append(applications, a)
	}
	return applications, nil
}
