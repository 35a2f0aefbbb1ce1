package board

import (
	"context"

	"github.com/google/uuid"

	"github.com/mbenali/jobboard/internal/client"
	"github.com/mbenali/jobboard/internal/types"
)

// JobBoard drives the admin posting manager: the paginated job list, the
// featured toggle, and deletion behind an explicit confirmation step.
type JobBoard struct {
	api     API
	toaster *Toaster

	jobs       []types.Job
	pagination types.Pagination
	filter     client.JobFilter

	pendingDelete *DeleteConfirmation
	loadErr       string
}

// DeleteConfirmation holds what the confirmation dialog must show before a
// posting is removed.
type DeleteConfirmation struct {
	JobID   uuid.UUID
	Title   string
	Company string
	// Warning reminds the admin that every application to the posting goes
	// with it.
	Warning string
}

// NewJobBoard creates a board over the given API.
func NewJobBoard(api API, toaster *Toaster) *JobBoard {
	return &JobBoard{api: api, toaster: toaster}
}

// Load fetches the current page with the current filters.
func (b *JobBoard) Load(ctx context.Context) error {
	page, err := b.api.ListJobs(ctx, b.filter)
	if err != nil {
		b.loadErr = errorMessage(err)
		return err
	}
	b.loadErr = ""
	b.jobs = page.Jobs
	b.pagination = page.Pagination
	return nil
}

// SetSearch applies a server-side title/company search and reloads from page
// one.
func (b *JobBoard) SetSearch(ctx context.Context, search string) error {
	b.filter.Search = search
	b.filter.Page = 1
	return b.Load(ctx)
}

// SetCategory filters by category and reloads from page one.
func (b *JobBoard) SetCategory(ctx context.Context, category string) error {
	b.filter.Category = category
	b.filter.Page = 1
	return b.Load(ctx)
}

// GoToPage moves to the given page, clamped to the known range.
func (b *JobBoard) GoToPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	if b.pagination.TotalPages > 0 && page > b.pagination.TotalPages {
		page = b.pagination.TotalPages
	}
	b.filter.Page = page
	return b.Load(ctx)
}

// Jobs returns the current page.
func (b *JobBoard) Jobs() []types.Job { return b.jobs }

// Pagination returns the current page envelope.
func (b *JobBoard) Pagination() types.Pagination { return b.pagination }

// LoadError returns the user-facing message of the last failed load, if any.
func (b *JobBoard) LoadError() string { return b.loadErr }

// ToggleFeatured flips a posting's featured flag optimistically. On failure
// the flag is restored and the error lands in the toaster. Toggling twice
// returns the posting to where it started.
func (b *JobBoard) ToggleFeatured(ctx context.Context, id uuid.UUID) error {
	job := b.find(id)
	if job == nil {
		return nil
	}
	previous := job.IsFeatured
	job.IsFeatured = !previous

	updated, err := b.api.ToggleFeatured(ctx, id)
	if err != nil {
		if again := b.find(id); again != nil {
			again.IsFeatured = previous
		}
		b.toaster.Error(errorMessage(err))
		return err
	}

	if again := b.find(id); again != nil {
		*again = *updated
	}
	if updated.IsFeatured {
		b.toaster.Success("Job featured")
	} else {
		b.toaster.Success("Job unfeatured")
	}
	return nil
}

// RequestDelete stages a deletion. Nothing is removed until ConfirmDelete.
func (b *JobBoard) RequestDelete(id uuid.UUID) *DeleteConfirmation {
	job := b.find(id)
	if job == nil {
		return nil
	}
	b.pendingDelete = &DeleteConfirmation{
		JobID:   job.ID,
		Title:   job.Title,
		Company: job.Company,
		Warning: "Deleting this job also deletes every application submitted to it.",
	}
	return b.pendingDelete
}

// PendingDelete returns the staged deletion, or nil.
func (b *JobBoard) PendingDelete() *DeleteConfirmation { return b.pendingDelete }

// CancelDelete drops the staged deletion.
func (b *JobBoard) CancelDelete() { b.pendingDelete = nil }

// ConfirmDelete removes the staged posting and reloads the list, so the
// deleted job disappears immediately.
func (b *JobBoard) ConfirmDelete(ctx context.Context) error {
	if b.pendingDelete == nil {
		return nil
	}
	id := b.pendingDelete.JobID
	b.pendingDelete = nil

	if err := b.api.DeleteJob(ctx, id); err != nil {
		b.toaster.Error(errorMessage(err))
		return err
	}
	b.toaster.Success("Job deleted")
	return b.Load(ctx)
}

func (b *JobBoard) find(id uuid.UUID) *types.Job {
	for i := range b.jobs {
		if b.jobs[i].ID == id {
			return &b.jobs[i]
		}
	}
	return nil
}
