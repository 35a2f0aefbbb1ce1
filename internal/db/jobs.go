package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mbenali/jobboard/internal/types"
)

const jobColumns = `id, title, company, location, category, job_type, description,
	requirements, salary_min, salary_max, COALESCE(salary_currency, ''),
	tags, COALESCE(logo_url, ''), is_featured, views, created_at`

func scanJob(row pgx.Row) (*types.Job, error) {
	var j types.Job
	err := row.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.Category, &j.Type,
		&j.Description, &j.Requirements, &j.SalaryMin, &j.SalaryMax, &j.SalaryCurrency,
		&j.Tags, &j.LogoURL, &j.IsFeatured, &j.Views, &j.CreatedAt)
	if err != nil {
		return nil, err
	}
	if j.Requirements == nil {
		j.Requirements = []string{}
	}
	if j.Tags == nil {
		j.Tags = []string{}
	}
	return &j, nil
}

// CreateJob inserts a new posting and returns it.
func (db *DB) CreateJob(ctx context.Context, req *types.CreateJobRequest) (*types.Job, error) {
	row := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (title, company, location, category, job_type, description,
			requirements, salary_min, salary_max, salary_currency, tags, logo_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), $11, NULLIF($12, ''))
		 RETURNING `+jobColumns,
		req.Title, req.Company, req.Location, req.Category, req.Type, req.Description,
		req.Requirements, req.SalaryMin, req.SalaryMax, req.SalaryCurrency, req.Tags, req.LogoURL,
	)
	job, err := scanJob(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return job, nil
}

// GetJob retrieves a posting by ID. Returns nil when not found.
func (db *DB) GetJob(ctx context.Context, jobID uuid.UUID) (*types.Job, error) {
	job, err := scanJob(db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, jobID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

// GetJobAndCountView retrieves a posting and increments its view counter in
// one round trip. Returns nil when not found.
func (db *DB) GetJobAndCountView(ctx context.Context, jobID uuid.UUID) (*types.Job, error) {
	job, err := scanJob(db.pool.QueryRow(ctx,
		`UPDATE jobs SET views = views + 1 WHERE id = $1 RETURNING `+jobColumns, jobID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

// ListJobsOptions holds filters for listing postings. Search matches title
// and company server-side; Category and Type filter exactly.
type ListJobsOptions struct {
	Search   string
	Category string
	Type     string
	Page     int
	Limit    int
}

// ListJobs retrieves one page of postings plus the total match count.
func (db *DB) ListJobs(ctx context.Context, opts ListJobsOptions) ([]types.Job, int, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = 12
	}

	where := ` WHERE 1=1`
	args := []any{}
	argNum := 1

	if opts.Search != "" {
		where += fmt.Sprintf(" AND (title ILIKE $%d OR company ILIKE $%d)", argNum, argNum)
		args = append(args, "%"+opts.Search+"%")
		argNum++
	}
	if opts.Category != "" {
		where += fmt.Sprintf(" AND category = $%d", argNum)
		args = append(args, opts.Category)
		argNum++
	}
	if opts.Type != "" {
		where += fmt.Sprintf(" AND job_type = $%d", argNum)
		args = append(args, opts.Type)
		argNum++
	}

	var total int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	query := `SELECT ` + jobColumns + ` FROM jobs` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argNum, argNum+1)
	args = append(args, opts.Limit, (opts.Page-1)*opts.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []types.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	return jobs, total, nil
}

// FeaturedJobs retrieves the currently featured postings, newest first.
func (db *DB) FeaturedJobs(ctx context.Context, limit int) ([]types.Job, error) {
	return db.queryJobs(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE is_featured ORDER BY created_at DESC LIMIT $1`, limit)
}

// LatestJobs retrieves the most recently posted jobs.
func (db *DB) LatestJobs(ctx context.Context, limit int) ([]types.Job, error) {
	return db.queryJobs(ctx,
		`SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC LIMIT $1`, limit)
}

func (db *DB) queryJobs(ctx context.Context, query string, args ...any) ([]types.Job, error) {
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	var jobs []types.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	return jobs, nil
}

// CategoryCounts returns the number of postings per category, busiest first.
func (db *DB) CategoryCounts(ctx context.Context) ([]types.CategoryCount, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT category, COUNT(*) FROM jobs GROUP BY category ORDER BY COUNT(*) DESC, category`)
	if err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	defer rows.Close()

	var counts []types.CategoryCount
	for rows.Next() {
		var c types.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, nil
}

// ToggleFeatured flips the featured flag of a posting and returns the updated
// row. Returns nil when the job does not exist.
func (db *DB) ToggleFeatured(ctx context.Context, jobID uuid.UUID) (*types.Job, error) {
	job, err := scanJob(db.pool.QueryRow(ctx,
		`UPDATE jobs SET is_featured = NOT is_featured WHERE id = $1 RETURNING `+jobColumns, jobID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to toggle featured: %w", err)
	}
	return job, nil
}

// DeleteJob removes a posting. Its applications go with it via cascade.
func (db *DB) DeleteJob(ctx context.Context, jobID uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, jobID)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
