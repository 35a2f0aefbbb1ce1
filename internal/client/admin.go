package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mbenali/jobboard/internal/types"
)

// Stats retrieves the dashboard headline numbers. Requires an admin session.
func (c *Client) Stats(ctx context.Context) (*types.Stats, error) {
	var out struct {
		Stats *types.Stats `json:"stats"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/stats", nil, &out); err != nil {
		return nil, err
	}
	return out.Stats, nil
}

// Growth retrieves the daily posting and application series for the trailing
// window. days <= 0 uses the server default.
func (c *Client) Growth(ctx context.Context, days int) (*types.Growth, error) {
	path := "/api/admin/growth"
	if days > 0 {
		path = fmt.Sprintf("%s?days=%d", path, days)
	}
	var growth types.Growth
	if err := c.do(ctx, http.MethodGet, path, nil, &growth); err != nil {
		return nil, err
	}
	return &growth, nil
}
