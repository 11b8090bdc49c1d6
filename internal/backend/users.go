package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ragportal/portal-ui/internal/domain/model"
)

// ListUsers fetches one page of tenant users (GET /users).
// page is 0-based and maps to skip=page*pageSize; an empty search is omitted.
func (c *Client) ListUsers(ctx context.Context, opts model.UserListOptions) (model.UserList, error) {
	if opts.PageSize < 1 {
		opts.PageSize = 10
	}
	q := url.Values{}
	q.Set("skip", strconv.Itoa(opts.Skip()))
	q.Set("limit", strconv.Itoa(opts.PageSize))
	if s := strings.TrimSpace(opts.Search); s != "" {
		q.Set("search", s)
	}

	var out model.UserList
	if err := c.do(ctx, request{Method: http.MethodGet, Path: "/users", Query: q}, &out); err != nil {
		return model.UserList{}, err
	}
	return out, nil
}

// CreateUser adds a user to the caller's tenant (POST /users).
func (c *Client) CreateUser(ctx context.Context, req model.CreateUserRequest) (model.User, error) {
	var out model.User
	if err := c.doJSON(ctx, http.MethodPost, "/users", req, &out); err != nil {
		return model.User{}, err
	}
	return out, nil
}

// UpdateUser sends a partial update (PATCH /users/{id}).
func (c *Client) UpdateUser(ctx context.Context, id int64, req model.UpdateUserRequest) (model.User, error) {
	var out model.User
	if err := c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/users/%d", id), req, &out); err != nil {
		return model.User{}, err
	}
	return out, nil
}

// DeleteUser removes a user (DELETE /users/{id}).
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil)
}
