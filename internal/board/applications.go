package board

import (
	"context"

	"github.com/google/uuid"

	"github.com/mbenali/jobboard/internal/client"
	"github.com/mbenali/jobboard/internal/types"
)

// ApplicationBoard drives the admin review screen: one page of applications
// at a time, filtered by status and free-text search, with the status
// workflow applied optimistically.
type ApplicationBoard struct {
	api     API
	toaster *Toaster

	applications []types.Application
	pagination   types.Pagination
	filter       client.ApplicationFilter

	selected *types.Application
	loading  bool
	loadErr  string
}

// NewApplicationBoard creates a board over the given API.
func NewApplicationBoard(api API, toaster *Toaster) *ApplicationBoard {
	return &ApplicationBoard{api: api, toaster: toaster}
}

// Load fetches the current page with the current filters.
func (b *ApplicationBoard) Load(ctx context.Context) error {
	b.loading = true
	defer func() { b.loading = false }()

	page, err := b.api.ListApplications(ctx, b.filter)
	if err != nil {
		b.loadErr = errorMessage(err)
		return err
	}

	b.loadErr = ""
	b.applications = page.Applications
	b.pagination = page.Pagination

	// keep the detail pane in sync with the refreshed page
	if b.selected != nil {
		b.selected = b.find(b.selected.ID)
	}
	return nil
}

// SetStatusFilter switches the status tab and reloads from page one. An empty
// status shows every application.
func (b *ApplicationBoard) SetStatusFilter(ctx context.Context, status types.Status) error {
	b.filter.Status = status
	b.filter.Page = 1
	return b.Load(ctx)
}

// SetSearch applies a free-text search across candidate and job fields. The
// matching happens server-side.
func (b *ApplicationBoard) SetSearch(ctx context.Context, search string) error {
	b.filter.Search = search
	b.filter.Page = 1
	return b.Load(ctx)
}

// GoToPage moves to the given page, clamped to the known range.
func (b *ApplicationBoard) GoToPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	if b.pagination.TotalPages > 0 && page > b.pagination.TotalPages {
		page = b.pagination.TotalPages
	}
	b.filter.Page = page
	return b.Load(ctx)
}

// Applications returns the current page.
func (b *ApplicationBoard) Applications() []types.Application { return b.applications }

// Pagination returns the current page envelope.
func (b *ApplicationBoard) Pagination() types.Pagination { return b.pagination }

// Filter returns the active filter.
func (b *ApplicationBoard) Filter() client.ApplicationFilter { return b.filter }

// Loading reports whether a fetch is in flight.
func (b *ApplicationBoard) Loading() bool { return b.loading }

// LoadError returns the user-facing message of the last failed load, if any.
func (b *ApplicationBoard) LoadError() string { return b.loadErr }

// Select opens the detail pane for an application on the current page.
func (b *ApplicationBoard) Select(id uuid.UUID) *types.Application {
	b.selected = b.find(id)
	return b.selected
}

// Selected returns the application in the detail pane, or nil.
func (b *ApplicationBoard) Selected() *types.Application { return b.selected }

// Deselect closes the detail pane.
func (b *ApplicationBoard) Deselect() { b.selected = nil }

// UpdateStatus moves an application to the given status. The list updates
// optimistically; if the server rejects the change, the previous status is
// restored and the server's message lands in the toaster. Any transition is
// legal, including moving a hired application back to pending.
func (b *ApplicationBoard) UpdateStatus(ctx context.Context, id uuid.UUID, status types.Status) error {
	app := b.find(id)
	if app == nil {
		return nil
	}
	previous := app.Status
	if previous == status {
		return nil
	}

	app.Status = status
	if b.selected != nil && b.selected.ID == id {
		b.selected.Status = status
	}

	updated, err := b.api.UpdateApplicationStatus(ctx, id, status)
	if err != nil {
		// roll back to what the server still has
		if again := b.find(id); again != nil {
			again.Status = previous
		}
		if b.selected != nil && b.selected.ID == id {
			b.selected.Status = previous
		}
		b.toaster.Error(errorMessage(err))
		return err
	}

	// adopt the authoritative row
	if again := b.find(id); again != nil {
		*again = *updated
	}
	if b.selected != nil && b.selected.ID == id {
		b.selected = b.find(id)
	}
	b.toaster.Success("Application marked as " + string(status))
	return nil
}

func (b *ApplicationBoard) find(id uuid.UUID) *types.Application {
	for i := range b.applications {
		if b.applications[i].ID == id {
			return &b.applications[i]
		}
	}
	return nil
}

// StatusCounts tallies the current page by status, for the tab badges.
func (b *ApplicationBoard) StatusCounts() map[types.Status]int {
	counts := make(map[types.Status]int, len(types.Statuses))
	for _, app := range b.applications {
		counts[app.Status]++
	}
	return counts
}
