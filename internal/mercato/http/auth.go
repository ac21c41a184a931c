package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mercatohq/mercato/internal/mercato/service"
	"github.com/mercatohq/mercato/pkg/httpx"
	"github.com/mercatohq/mercato/pkg/slogx"
	"github.com/mercatohq/mercato/pkg/storesdk"
)

type AuthHandler struct {
	AuthService *service.AuthService
	UserService *service.UserService
}

// HandleLogin handles the form-encoded password login endpoint.
//
//	@Summary		Log in with username and password
//	@Description	Exchanges a username and password for a signed bearer token.
//	@Description	Unknown usernames, wrong passwords and deactivated accounts all return the same 401.
//	@Tags			Auth
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			username	formData	string					true	"Username"
//	@Param			password	formData	string					true	"Password"
//	@Success		200			{object}	storesdk.TokenResponse	"access_token, token_type, expires_in"
//	@Failure		401			{object}	storesdk.APIError		"Invalid credentials"
//	@Failure		429			{object}	storesdk.APIError		"Rate limited"
//	@Router			/api/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := r.ParseForm(); err != nil {
		storesdk.ErrBadRequest.WriteError(w)
		return
	}

	h.issueToken(w, r, log, r.PostFormValue("username"), r.PostFormValue("password"))
}

// HandleLoginJSON is the JSON-body twin of HandleLogin for clients that
// can't send form data.
//
//	@Summary		Log in with a JSON body
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		storesdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	storesdk.TokenResponse	"access_token, token_type, expires_in"
//	@Failure		400		{object}	storesdk.APIError		"Missing username or password"
//	@Failure		401		{object}	storesdk.APIError		"Invalid credentials"
//	@Failure		429		{object}	storesdk.APIError		"Rate limited"
//	@Router			/api/v1/auth/login-json [post].
func (h *AuthHandler) HandleLoginJSON(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req storesdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		storesdk.ErrBadRequest.WriteError(w)
		return
	}
	if req.Username == "" || req.Password == "" {
		storesdk.ErrBadRequest.WithDescription("username and password are required").WriteError(w)
		return
	}

	h.issueToken(w, r, log, req.Username, req.Password)
}

// HandleLogout acknowledges the end of a session. Tokens are stateless, so
// there is nothing to revoke server-side; clients drop the token.
//
//	@Summary		Log out
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	storesdk.LogoutResponse
//	@Failure		401	{object}	storesdk.APIError	"Invalid or missing access token"
//	@Router			/api/v1/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, err := h.UserService.GetUser(ctx, httpx.UserIDFromCtx(ctx))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, storesdk.LogoutResponse{
		Message: "logged out " + user.Username,
	})
}

// HandleVerify reports whether the presented token is still good. Reaching
// the handler at all means the token verified and the account is active.
//
//	@Summary		Verify the access token
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	storesdk.VerifyResponse
//	@Failure		401	{object}	storesdk.APIError	"Invalid or missing access token"
//	@Router			/api/v1/auth/verify [get].
func (h *AuthHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, err := h.UserService.GetUser(ctx, httpx.UserIDFromCtx(ctx))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, storesdk.VerifyResponse{
		Valid:    true,
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}

func (h *AuthHandler) issueToken(
	w http.ResponseWriter,
	r *http.Request,
	log *slog.Logger,
	username, password string,
) {
	token, err := h.AuthService.Login(r.Context(), username, password)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, storesdk.TokenResponse{
		AccessToken: token.Token,
		TokenType:   token.TokenType,
		ExpiresIn:   int(token.ExpiresIn.Seconds()),
	})
}
