package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/mercatohq/mercato/internal/mercato/service"
	"github.com/mercatohq/mercato/internal/mercato/store"
	"github.com/mercatohq/mercato/pkg/httpx"
	"github.com/mercatohq/mercato/pkg/slogx"
	"github.com/mercatohq/mercato/pkg/storesdk"
)

type UsersHandler struct {
	UserService *service.UserService
}

// HandleRegister creates a new user account.
//
//	@Summary		Register a new user
//	@Description	Creates an active account. Username and email must be unique; the password is stored as an argon2id hash.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			body	body		storesdk.RegisterRequest	true	"Registration details"
//	@Success		201		{object}	storesdk.UserResponse
//	@Failure		409		{object}	storesdk.APIError	"Username or email already registered"
//	@Failure		422		{object}	storesdk.APIError	"Validation failed"
//	@Router			/api/v1/users/register [post].
func (h *UsersHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req storesdk.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		storesdk.ErrBadRequest.WriteError(w)
		return
	}

	user, err := h.UserService.Register(ctx, service.RegisterParams{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toUserResponse(user))
}

// HandleGet returns a user by id.
//
//	@Summary		Get a user
//	@Description	Returns the user with the given id. Callers can only fetch their own account.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"User id"
//	@Success		200	{object}	storesdk.UserResponse
//	@Failure		401	{object}	storesdk.APIError	"Invalid or missing access token"
//	@Failure		403	{object}	storesdk.APIError	"Not your account"
//	@Failure		404	{object}	storesdk.APIError	"User not found"
//	@Router			/api/v1/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, err := h.UserService.GetUser(ctx, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// HandleMe returns the authenticated caller's profile.
//
//	@Summary		Get own profile
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	storesdk.UserResponse
//	@Failure		401	{object}	storesdk.APIError	"Invalid or missing access token"
//	@Router			/api/v1/users/me [get].
func (h *UsersHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromCtx(ctx)
	if userID == "" {
		storesdk.ErrInvalidToken.WriteError(w)
		return
	}

	user, err := h.UserService.GetUser(ctx, userID)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// HandleList returns users matching the query filters.
//
//	@Summary		List users
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Param			skip		query		int		false	"Offset into the result set"
//	@Param			limit		query		int		false	"Maximum results (default 100)"
//	@Param			is_active	query		bool	false	"Filter by active state"
//	@Success		200			{array}		storesdk.UserResponse
//	@Failure		401			{object}	storesdk.APIError	"Invalid or missing access token"
//	@Router			/api/v1/users/ [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	filter, err := parseUserFilter(r)
	if err != nil {
		storesdk.ErrBadRequest.WriteError(w)
		return
	}

	users, err := h.UserService.ListUsers(ctx, filter)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	out := make([]storesdk.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCount returns the number of users.
//
//	@Summary		Count users
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Param			is_active	query		bool	false	"Filter by active state"
//	@Success		200			{object}	storesdk.UserCountResponse
//	@Failure		401			{object}	storesdk.APIError	"Invalid or missing access token"
//	@Router			/api/v1/users/count/total [get].
func (h *UsersHandler) HandleCount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	isActive, err := parseBoolParam(r, "is_active")
	if err != nil {
		storesdk.ErrBadRequest.WriteError(w)
		return
	}

	total, err := h.UserService.CountUsers(ctx, isActive)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, storesdk.UserCountResponse{Total: total})
}

// HandleUpdate applies a partial profile update.
//
//	@Summary		Update a user
//	@Description	Partial update; omitted fields are untouched. Callers can only update their own account.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"User id"
//	@Param			body	body		storesdk.UpdateUserRequest	true	"Fields to update"
//	@Success		200		{object}	storesdk.UserResponse
//	@Failure		401		{object}	storesdk.APIError	"Invalid or missing access token"
//	@Failure		403		{object}	storesdk.APIError	"Not your account"
//	@Failure		409		{object}	storesdk.APIError	"Email already registered"
//	@Failure		422		{object}	storesdk.APIError	"Validation failed"
//	@Router			/api/v1/users/{id} [put].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req storesdk.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		storesdk.ErrBadRequest.WriteError(w)
		return
	}

	user, err := h.UserService.UpdateUser(ctx, r.PathValue("id"), service.UpdateUserParams{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
		IsActive:  req.IsActive,
	})
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// HandleToggleStatus flips the active flag.
//
//	@Summary		Toggle account active state
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"User id"
//	@Success		200	{object}	storesdk.UserResponse
//	@Failure		401	{object}	storesdk.APIError	"Invalid or missing access token"
//	@Failure		403	{object}	storesdk.APIError	"Not your account"
//	@Router			/api/v1/users/{id}/toggle-status [patch].
func (h *UsersHandler) HandleToggleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, err := h.UserService.ToggleStatus(ctx, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// HandleSoftDelete deactivates the account without removing it.
//
//	@Summary		Soft-delete a user
//	@Description	Sets is_active to false. The row stays in storage and the user can no longer log in.
//	@Tags			Users
//	@Security		BearerAuth
//	@Param			id	path	string	true	"User id"
//	@Success		204
//	@Failure		401	{object}	storesdk.APIError	"Invalid or missing access token"
//	@Failure		403	{object}	storesdk.APIError	"Not your account"
//	@Failure		404	{object}	storesdk.APIError	"User not found"
//	@Router			/api/v1/users/{id}/soft [delete].
func (h *UsersHandler) HandleSoftDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.UserService.SoftDelete(ctx, r.PathValue("id")); err != nil {
		writeServiceError(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleHardDelete removes the account permanently.
//
//	@Summary		Hard-delete a user
//	@Description	Removes the row from storage. This cannot be undone.
//	@Tags			Users
//	@Security		BearerAuth
//	@Param			id	path	string	true	"User id"
//	@Success		204
//	@Failure		401	{object}	storesdk.APIError	"Invalid or missing access token"
//	@Failure		403	{object}	storesdk.APIError	"Not your account"
//	@Failure		404	{object}	storesdk.APIError	"User not found"
//	@Router			/api/v1/users/{id}/hard [delete].
func (h *UsersHandler) HandleHardDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.UserService.HardDelete(ctx, r.PathValue("id")); err != nil {
		writeServiceError(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseUserFilter(r *http.Request) (store.UserFilter, error) {
	var f store.UserFilter

	skip, err := parseIntParam(r, "skip")
	if err != nil {
		return f, err
	}
	limit, err := parseIntParam(r, "limit")
	if err != nil {
		return f, err
	}
	isActive, err := parseBoolParam(r, "is_active")
	if err != nil {
		return f, err
	}

	f.Skip = skip
	f.Limit = limit
	f.IsActive = isActive
	return f, nil
}

func parseIntParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func parseBoolParam(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
