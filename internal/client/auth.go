package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/mbenali/jobboard/internal/types"
)

// Register creates an account and adopts the returned session token for
// subsequent calls.
func (c *Client) Register(ctx context.Context, req *types.RegisterRequest) (*types.LoginResponse, error) {
	return c.authCall(ctx, "/api/auth/register", req)
}

// Login authenticates and adopts the returned session token for subsequent
// calls.
func (c *Client) Login(ctx context.Context, req *types.LoginRequest) (*types.LoginResponse, error) {
	return c.authCall(ctx, "/api/auth/login", req)
}

func (c *Client) authCall(ctx context.Context, path string, req any) (*types.LoginResponse, error) {
	var out types.LoginResponse
	if err := c.do(ctx, http.MethodPost, path, req, &out); err != nil {
		return nil, err
	}
	c.SetToken(out.Token)
	return &out, nil
}

// UpdateUser changes the caller's display name or password. The server only
// permits updating the session's own account.
func (c *Client) UpdateUser(ctx context.Context, userID uuid.UUID, req *types.UpdateUserRequest) (*types.User, error) {
	var out struct {
		User *types.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPatch, "/api/users/"+userID.String(), req, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}
