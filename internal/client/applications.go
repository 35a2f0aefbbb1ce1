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

// ApplicationFilter narrows the admin application listing.
type ApplicationFilter struct {
	Status types.Status
	Search string
	Page   int
}

func (f ApplicationFilter) query() string {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Page > 1 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// ApplicationPage is one page of applications with its pagination envelope.
type ApplicationPage struct {
	Applications []types.Application `json:"applications"`
	Pagination   types.Pagination    `json:"pagination"`
}

// SubmitApplication records the caller's application to a job. The server
// takes the applicant identity from the session, not from req.
func (c *Client) SubmitApplication(ctx context.Context, req *types.SubmitApplicationRequest) (*types.Application, error) {
	var out struct {
		Application *types.Application `json:"application"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/applications", req, &out); err != nil {
		return nil, err
	}
	return out.Application, nil
}

// ListApplications retrieves one page of applications for review. Requires an
// admin session.
func (c *Client) ListApplications(ctx context.Context, filter ApplicationFilter) (*ApplicationPage, error) {
	var page ApplicationPage
	if err := c.do(ctx, http.MethodGet, "/api/applications"+filter.query(), nil, &page); err != nil {
		return nil, err
	}
	if page.Applications == nil {
		page.Applications = []types.Application{}
	}
	return &page, nil
}

// MyApplications retrieves the caller's own applications.
func (c *Client) MyApplications(ctx context.Context) ([]types.Application, error) {
	var out struct {
		Applications []types.Application `json:"applications"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/applications/my", nil, &out); err != nil {
		return nil, err
	}
	if out.Applications == nil {
		out.Applications = []types.Application{}
	}
	return out.Applications, nil
}

// UpdateApplicationStatus moves an application to the given workflow status.
// Requires an admin session; any transition is allowed.
func (c *Client) UpdateApplicationStatus(ctx context.Context, appID uuid.UUID, status types.Status) (*types.Application, error) {
	var out struct {
		Application *types.Application `json:"application"`
	}
	path := fmt.Sprintf("/api/applications/%s/status", appID)
	body := types.UpdateStatusRequest{Status: status}
	if err := c.do(ctx, http.MethodPatch, path, body, &out); err != nil {
		return nil, err
	}
	return out.Application, nil
}
