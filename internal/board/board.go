// Package board holds the stateful workflow layer between the API client and
// any front end: paginated job and application views, the application status
// workflow with optimistic updates, the candidate apply form, and role
// gating. Board types are not safe for concurrent use; each belongs to a
// single session.
package board

import (
	"context"

	"github.com/google/uuid"

	"github.com/mbenali/jobboard/internal/client"
	"github.com/mbenali/jobboard/internal/types"
)

// API is the slice of the HTTP client the boards consume. *client.Client
// satisfies it; tests substitute a mock.
type API interface {
	ListJobs(ctx context.Context, filter client.JobFilter) (*client.JobPage, error)
	GetJob(ctx context.Context, jobID uuid.UUID) (*types.Job, error)
	CreateJob(ctx context.Context, req *types.CreateJobRequest) (*types.Job, error)
	ToggleFeatured(ctx context.Context, jobID uuid.UUID) (*types.Job, error)
	DeleteJob(ctx context.Context, jobID uuid.UUID) error

	SubmitApplication(ctx context.Context, req *types.SubmitApplicationRequest) (*types.Application, error)
	ListApplications(ctx context.Context, filter client.ApplicationFilter) (*client.ApplicationPage, error)
	MyApplications(ctx context.Context) ([]types.Application, error)
	UpdateApplicationStatus(ctx context.Context, appID uuid.UUID, status types.Status) (*types.Application, error)

	Stats(ctx context.Context) (*types.Stats, error)
	Growth(ctx context.Context, days int) (*types.Growth, error)
}

var _ API = (*client.Client)(nil)

// errorMessage extracts the user-facing message for a failed call: the
// server's own message when it reported one, a retry hint otherwise.
func errorMessage(err error) string {
	switch e := err.(type) {
	case *client.APIError:
		return e.Message
	case *client.NetworkError:
		return "Network error. Please check your connection and try again."
	default:
		return "Something went wrong. Please try again."
	}
}
