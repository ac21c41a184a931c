package storesdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Register creates a new user account. No authentication required.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/v1/users/register", req)
	if err != nil {
		return nil, err
	}

	var user UserResponse
	if err := decodeJSON(resp, &user, http.StatusCreated); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUser fetches a user by id. Callers can only fetch themselves.
func (c *Client) GetUser(ctx context.Context, id string) (*UserResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/v1/users/"+id, nil, nil)
	if err != nil {
		return nil, err
	}

	var user UserResponse
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

// Me fetches the profile of the authenticated caller.
func (c *Client) Me(ctx context.Context) (*UserResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/v1/users/me", nil, nil)
	if err != nil {
		return nil, err
	}

	var user UserResponse
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsersOptions filters the user listing. Nil/zero fields are omitted.
type ListUsersOptions struct {
	Skip     int
	Limit    int
	IsActive *bool
}

// ListUsers returns users matching the options. Requires authentication.
func (c *Client) ListUsers(ctx context.Context, opts ListUsersOptions) ([]UserResponse, error) {
	q := url.Values{}
	if opts.Skip > 0 {
		q.Set("skip", strconv.Itoa(opts.Skip))
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.IsActive != nil {
		q.Set("is_active", strconv.FormatBool(*opts.IsActive))
	}

	path := "/api/v1/users/"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var users []UserResponse
	if err := decodeJSON(resp, &users, http.StatusOK); err != nil {
		return nil, err
	}
	return users, nil
}

// CountUsers returns the total number of users, optionally filtered by
// active state.
func (c *Client) CountUsers(ctx context.Context, isActive *bool) (int64, error) {
	path := "/api/v1/users/count/total"
	if isActive != nil {
		path += "?is_active=" + strconv.FormatBool(*isActive)
	}

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return 0, err
	}

	var count UserCountResponse
	if err := decodeJSON(resp, &count, http.StatusOK); err != nil {
		return 0, err
	}
	return count.Total, nil
}

// UpdateUser applies a partial profile update. Callers can only update
// themselves.
func (c *Client) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*UserResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPut, "/api/v1/users/"+id, req)
	if err != nil {
		return nil, err
	}

	var user UserResponse
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

// ToggleUserStatus flips the active flag on the caller's own account.
func (c *Client) ToggleUserStatus(ctx context.Context, id string) (*UserResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPatch, "/api/v1/users/"+id+"/toggle-status", nil, nil)
	if err != nil {
		return nil, err
	}

	var user UserResponse
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

// SoftDeleteUser deactivates the account. The row stays in storage.
func (c *Client) SoftDeleteUser(ctx context.Context, id string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/api/v1/users/"+id+"/soft", nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// HardDeleteUser removes the account permanently.
func (c *Client) HardDeleteUser(ctx context.Context, id string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/api/v1/users/"+id+"/hard", nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
