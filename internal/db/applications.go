package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mbenali/jobboard/internal/types"
)

const applicationColumns = `a.id, a.job_id, a.name, a.email, COALESCE(a.phone, ''),
	a.resume_link, COALESCE(a.linkedin_url, ''), COALESCE(a.portfolio_url, ''),
	COALESCE(a.cover_note, ''), a.status, j.title, j.company, a.created_at`

func scanApplication(row pgx.Row) (*types.Application, error) {
	var a types.Application
	err := row.Scan(&a.ID, &a.JobID, &a.Name, &a.Email, &a.Phone, &a.ResumeLink,
		&a.LinkedinURL, &a.PortfolioURL, &a.CoverNote, &a.Status,
		&a.JobTitle, &a.Company, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateApplication inserts a new application in status pending. A second
// submission for the same job and email returns ErrDuplicateApplication.
func (db *DB) CreateApplication(ctx context.Context, req *types.SubmitApplicationRequest) (*types.Application, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO applications (job_id, name, email, phone, resume_link, linkedin_url, portfolio_url, cover_note)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''))
		 RETURNING id`,
		req.JobID, req.Name, req.Email, req.Phone, req.ResumeLink,
		req.LinkedinURL, req.PortfolioURL, req.CoverNote,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateApplication
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return db.GetApplication(ctx, id)
}

// GetApplication retrieves an application with its job title and company.
// Returns nil when not found.
func (db *DB) GetApplication(ctx context.Context, id uuid.UUID) (*types.Application, error) {
	app, err := scanApplication(db.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+`
		 FROM applications a JOIN jobs j ON j.id = a.job_id
		 WHERE a.id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return app, nil
}

// ListApplicationsOptions holds filters for the admin application listing.
// Search matches applicant name, email, job title and company server-side.
type ListApplicationsOptions struct {
	Status types.Status
	Search string
	Page   int
	Limit  int
}

// ListApplications retrieves one page of applications plus the total match count.
func (db *DB) ListApplications(ctx context.Context, opts ListApplicationsOptions) ([]types.Application, int, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = 15
	}

	where := ` WHERE 1=1`
	args := []any{}
	argNum := 1

	if opts.Status != "" {
		where += fmt.Sprintf(" AND a.status = $%d", argNum)
		args = append(args, opts.Status)
		argNum++
	}
	if opts.Search != "" {
		where += fmt.Sprintf(
			" AND (a.name ILIKE $%d OR a.email ILIKE $%d OR j.title ILIKE $%d OR j.company ILIKE $%d)",
			argNum, argNum, argNum, argNum)
		args = append(args, "%"+opts.Search+"%")
		argNum++
	}

	var total int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM applications a JOIN jobs j ON j.id = a.job_id`+where, args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count applications: %w", err)
	}

	query := `SELECT ` + applicationColumns + `
		 FROM applications a JOIN jobs j ON j.id = a.job_id` + where +
		fmt.Sprintf(" ORDER BY a.created_at DESC LIMIT $%d OFFSET $%d", argNum, argNum+1)
	args = append(args, opts.Limit, (opts.Page-1)*opts.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []types.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, *app)
	}
	return apps, total, nil
}

// ListApplicationsByEmail retrieves every application a candidate submitted,
// newest first. This backs the candidate's own-applications view.
func (db *DB) ListApplicationsByEmail(ctx context.Context, email string) ([]types.Application, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+applicationColumns+`
		 FROM applications a JOIN jobs j ON j.id = a.job_id
		 WHERE a.email = $1 ORDER BY a.created_at DESC`, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []types.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, *app)
	}
	return apps, nil
}

// UpdateApplicationStatus relabels an application and returns the updated
// row. Any of the five statuses may be set regardless of the current one.
// Returns nil when the application does not exist.
func (db *DB) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status types.Status) (*types.Application, error) {
	result, err := db.pool.Exec(ctx,
		`UPDATE applications SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return nil, nil
	}
	return db.GetApplication(ctx, id)
}
