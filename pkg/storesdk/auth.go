package storesdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Login authenticates with a username and password. On success the returned
// access token is installed on the client for subsequent requests.
func (c *Client) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(form.Encode()),
		map[string]string{"Content-Type": "application/x-www-form-urlencoded"},
	)
	if err != nil {
		return nil, err
	}

	var token TokenResponse
	if err := decodeJSON(resp, &token, http.StatusOK); err != nil {
		return nil, err
	}

	c.SetToken(token.AccessToken)
	return &token, nil
}

// LoginJSON authenticates with a JSON body instead of a form. On success the
// returned access token is installed on the client, same as Login.
func (c *Client) LoginJSON(ctx context.Context, username, password string) (*TokenResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/login-json", LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var token TokenResponse
	if err := decodeJSON(resp, &token, http.StatusOK); err != nil {
		return nil, err
	}

	c.SetToken(token.AccessToken)
	return &token, nil
}

// Logout tells the server the session is over, then drops the installed
// token. Tokens are stateless, so the server call is an acknowledgment only.
func (c *Client) Logout(ctx context.Context) (*LogoutResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/logout", nil)
	if err != nil {
		return nil, err
	}

	var out LogoutResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	c.ClearToken()
	return &out, nil
}

// Verify asks the server whether the installed token still grants access.
func (c *Client) Verify(ctx context.Context) (*VerifyResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/v1/auth/verify", nil, nil)
	if err != nil {
		return nil, err
	}

	var out VerifyResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ClearToken drops the installed token without calling the server.
func (c *Client) ClearToken() { c.token = "" }
