package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/mbenali/jobboard/internal/types"
)

// JobFilter narrows a job listing. Search matches title and company on the
// server; zero values mean "no filter".
type JobFilter struct {
	Search   string
	Category string
	Type     string
	Page     int
}

func (f JobFilter) query() string {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Type != "" {
		q.Set("type", f.Type)
	}
	if f.Page > 1 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// JobPage is one page of postings with its pagination envelope.
type JobPage struct {
	Jobs       []types.Job      `json:"jobs"`
	Pagination types.Pagination `json:"pagination"`
}

// ListJobs retrieves one page of postings matching the filter.
func (c *Client) ListJobs(ctx context.Context, filter JobFilter) (*JobPage, error) {
	var page JobPage
	if err := c.do(ctx, http.MethodGet, "/api/jobs"+filter.query(), nil, &page); err != nil {
		return nil, err
	}
	if page.Jobs == nil {
		page.Jobs = []types.Job{}
	}
	return &page, nil
}

// FeaturedJobs retrieves the featured postings for the landing page.
func (c *Client) FeaturedJobs(ctx context.Context) ([]types.Job, error) {
	return c.jobList(ctx, "/api/jobs/featured")
}

// LatestJobs retrieves the most recent postings.
func (c *Client) LatestJobs(ctx context.Context) ([]types.Job, error) {
	return c.jobList(ctx, "/api/jobs/latest")
}

func (c *Client) jobList(ctx context.Context, path string) ([]types.Job, error) {
	var out struct {
		Jobs []types.Job `json:"jobs"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Jobs, nil
}

// Categories retrieves posting counts per category.
func (c *Client) Categories(ctx context.Context) ([]types.CategoryCount, error) {
	var out struct {
		Categories []types.CategoryCount `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/jobs/categories", nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

// GetJob retrieves a single posting. The server counts the view.
func (c *Client) GetJob(ctx context.Context, jobID uuid.UUID) (*types.Job, error) {
	var out struct {
		Job *types.Job `json:"job"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/jobs/"+jobID.String(), nil, &out); err != nil {
		return nil, err
	}
	return out.Job, nil
}

// CreateJob creates a posting. Requires an admin session.
func (c *Client) CreateJob(ctx context.Context, req *types.CreateJobRequest) (*types.Job, error) {
	var out struct {
		Job *types.Job `json:"job"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/jobs", req, &out); err != nil {
		return nil, err
	}
	return out.Job, nil
}

// ToggleFeatured flips the featured flag and returns the updated posting.
func (c *Client) ToggleFeatured(ctx context.Context, jobID uuid.UUID) (*types.Job, error) {
	var out struct {
		Job *types.Job `json:"job"`
	}
	path := fmt.Sprintf("/api/jobs/%s/featured", jobID)
	if err := c.do(ctx, http.MethodPatch, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Job, nil
}

// DeleteJob removes a posting and, with it, every application to it.
func (c *Client) DeleteJob(ctx context.Context, jobID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/jobs/"+jobID.String(), nil, nil)
}
