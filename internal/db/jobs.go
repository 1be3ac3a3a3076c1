package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const jobColumns = `id, company_id, title, description, category, experience_level,
	        location_type, location_detail, employment_type, salary_min, salary_max,
	        tools, proficiency_tier, evaluation, status, created_at, published_at, updated_at`

// prefixedJobColumns qualifies the job posting column list with a table
// alias for joined queries.
func prefixedJobColumns(alias string) string {
	cols := strings.Split(jobColumns, ",")
	for i, col := range cols {
		cols[i] = alias + "." + strings.TrimSpace(col)
	}
	return strings.Join(cols, ", ")
}

func scanJob(row pgx.Row) (*JobPosting, error) {
	var j JobPosting
	err := row.Scan(&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.Category,
		&j.ExperienceLevel, &j.LocationType, &j.LocationDetail, &j.EmploymentType,
		&j.SalaryMin, &j.SalaryMax, &j.Tools, &j.ProficiencyTier, &j.Evaluation,
		&j.Status, &j.CreatedAt, &j.PublishedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// CreateJob creates a job posting in draft status for a company.
func (db *DB) CreateJob(ctx context.Context, companyID uuid.UUID, input *JobPostingInput) (*JobPosting, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	j, err := scanJob(db.pool.QueryRow(ctx,
		fmt.Sprintf(`INSERT INTO job_postings
		   (company_id, title, description, category, experience_level, location_type,
		    location_detail, employment_type, salary_min, salary_max, tools,
		    proficiency_tier, evaluation, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, 'draft')
		 RETURNING %s`, jobColumns),
		companyID, input.Title, input.Description, input.Category, input.ExperienceLevel,
		input.LocationType, input.LocationDetail, input.EmploymentType,
		input.SalaryMin, input.SalaryMax, StringArray(input.Tools),
		input.ProficiencyTier, input.Evaluation,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create job posting: %w", err)
	}
	return j, nil
}

// GetJobByID retrieves a job posting by its ID. Returns (nil, nil) if no row exists.
func (db *DB) GetJobByID(ctx context.Context, id uuid.UUID) (*JobPosting, error) {
	j, err := scanJob(db.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM job_postings WHERE id = $1`, jobColumns),
		id,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job posting: %w", err)
	}
	return j, nil
}

// UpdateJob replaces a posting's editable fields. Status and timestamps are
// managed separately.
func (db *DB) UpdateJob(ctx context.Context, id uuid.UUID, input *JobPostingInput) (*JobPosting, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	j, err := scanJob(db.pool.QueryRow(ctx,
		fmt.Sprintf(`UPDATE job_postings SET
		     title = $2,
		     description = $3,
		     category = $4,
		     experience_level = $5,
		     location_type = $6,
		     location_detail = $7,
		     employment_type = $8,
		     salary_min = $9,
		     salary_max = $10,
		     tools = $11,
		     proficiency_tier = $12,
		     evaluation = $13,
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING %s`, jobColumns),
		id, input.Title, input.Description, input.Category, input.ExperienceLevel,
		input.LocationType, input.LocationDetail, input.EmploymentType,
		input.SalaryMin, input.SalaryMax, StringArray(input.Tools),
		input.ProficiencyTier, input.Evaluation,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update job posting: %w", err)
	}
	return j, nil
}

// SetJobStatus moves a posting to a new lifecycle status. Publishing an
// unpublished posting stamps published_at.
func (db *DB) SetJobStatus(ctx context.Context, id uuid.UUID, status JobStatus) (*JobPosting, error) {
	j, err := scanJob(db.pool.QueryRow(ctx,
		fmt.Sprintf(`UPDATE job_postings SET
		     status = $2,
		     published_at = CASE WHEN $2 = 'active' AND published_at IS NULL THEN NOW() ELSE published_at END,
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING %s`, jobColumns),
		id, status,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to set job status: %w", err)
	}
	return j, nil
}

// ListActiveJobs retrieves all active postings, newest first. Facet filtering
// and re-sorting happen in memory in the listing package.
func (db *DB) ListActiveJobs(ctx context.Context) ([]JobPosting, error) {
	return db.listJobs(ctx,
		fmt.Sprintf(`SELECT %s FROM job_postings WHERE status = 'active' ORDER BY created_at DESC, id`, jobColumns))
}

// ListJobsByCompany retrieves all of a company's postings regardless of
// status, newest first.
func (db *DB) ListJobsByCompany(ctx context.Context, companyID uuid.UUID) ([]JobPosting, error) {
	return db.listJobs(ctx,
		fmt.Sprintf(`SELECT %s FROM job_postings WHERE company_id = $1 ORDER BY created_at DESC, id`, jobColumns),
		companyID)
}

func (db *DB) listJobs(ctx context.Context, query string, args ...any) ([]JobPosting, error) {
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list job postings: %w", err)
	}
	defer rows.Close()

	var jobs []JobPosting
	for rows.Next() {
		var j JobPosting
		if err := rows.Scan(&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.Category,
			&j.ExperienceLevel, &j.LocationType, &j.LocationDetail, &j.EmploymentType,
			&j.SalaryMin, &j.SalaryMax, &j.Tools, &j.ProficiencyTier, &j.Evaluation,
			&j.Status, &j.CreatedAt, &j.PublishedAt, &j.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job posting: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}
