package http

import (
	"encoding/json"
	"net/http"

	"github.com/mercatohq/mercato/internal/mercato/service"
	"github.com/mercatohq/mercato/internal/mercato/store"
	"github.com/mercatohq/mercato/pkg/httpx"
	"github.com/mercatohq/mercato/pkg/slogx"
	"github.com/mercatohq/mercato/pkg/storesdk"
)

type CategoriesHandler struct {
	CatalogService *service.CatalogService
}

// HandleCreate creates a new category.
//
//	@Summary		Create a category
//	@Description	The slug is derived from the name when not supplied.
//	@Tags			Catalog
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		storesdk.CategoryRequest	true	"Category details"
//	@Success		201		{object}	storesdk.CategoryResponse
//	@Failure		401		{object}	storesdk.APIError	"Invalid or missing access token"
//	@Failure		409		{object}	storesdk.APIError	"Slug already in use"
//	@Failure		422		{object}	storesdk.APIError	"Validation failed"
//	@Router			/api/v1/categories/ [post].
func (h *CategoriesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req storesdk.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		storesdk.ErrBadRequest.WriteError(w)
		return
	}

	cat, err := h.CatalogService.CreateCategory(ctx, categoryParams(req))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toCategoryResponse(cat))
}

// HandleGet returns a category by id.
//
//	@Summary	Get a category
//	@Tags		Catalog
//	@Produce	json
//	@Param		id	path		string	true	"Category id"
//	@Success	200	{object}	storesdk.CategoryResponse
//	@Failure	404	{object}	storesdk.APIError	"Category not found"
//	@Router		/api/v1/categories/{id} [get].
func (h *CategoriesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	cat, err := h.CatalogService.GetCategory(ctx, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toCategoryResponse(cat))
}

// HandleList returns categories matching the query filters.
//
//	@Summary	List categories
//	@Tags		Catalog
//	@Produce	json
//	@Param		skip		query		int		false	"Offset into the result set"
//	@Param		limit		query		int		false	"Maximum results (default 100)"
//	@Param		is_active	query		bool	false	"Filter by active state"
//	@Param		parent_id	query		string	false	"Filter by parent category"
//	@Success	200			{array}		storesdk.CategoryResponse
//	@Router		/api/v1/categories/ [get].
func (h *CategoriesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var f store.CategoryFilter
	skip, err := parseIntParam(r, "skip")
	if err != nil {
		storesdk.ErrBadRequest.WriteError(w)
		return
	}
	limit, err := parseIntParam(r, "limit")
	if err != nil {
		storesdk.ErrBadRequest.WriteError(w)
		return
	}
	isActive, err := parseBoolParam(r, "is_active")
	if err != nil {
		storesdk.ErrBadRequest.WriteError(w)
		return
	}
	f.Skip, f.Limit, f.IsActive = skip, limit, isActive
	if parent := r.URL.Query().Get("parent_id"); parent != "" {
		f.ParentID = &parent
	}

	cats, err := h.CatalogService.ListCategories(ctx, f)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	out := make([]storesdk.CategoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, toCategoryResponse(c))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleUpdate applies a partial update to a category.
//
//	@Summary	Update a category
//	@Tags		Catalog
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Category id"
//	@Param		body	body		storesdk.CategoryRequest	true	"Fields to update"
//	@Success	200		{object}	storesdk.CategoryResponse
//	@Failure	401		{object}	storesdk.APIError	"Invalid or missing access token"
//	@Failure	404		{object}	storesdk.APIError	"Category not found"
//	@Failure	409		{object}	storesdk.APIError	"Slug already in use"
//	@Failure	422		{object}	storesdk.APIError	"Validation failed"
//	@Router		/api/v1/categories/{id} [put].
func (h *CategoriesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req storesdk.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		storesdk.ErrBadRequest.WriteError(w)
		return
	}

	cat, err := h.CatalogService.UpdateCategory(ctx, r.PathValue("id"), categoryParams(req))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toCategoryResponse(cat))
}

// HandleDelete removes a category.
//
//	@Summary	Delete a category
//	@Description	Products referencing the category are detached, not deleted.
//	@Tags		Catalog
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Category id"
//	@Success	204
//	@Failure	401	{object}	storesdk.APIError	"Invalid or missing access token"
//	@Failure	404	{object}	storesdk.APIError	"Category not found"
//	@Router		/api/v1/categories/{id} [delete].
func (h *CategoriesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.CatalogService.DeleteCategory(ctx, r.PathValue("id")); err != nil {
		writeServiceError(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func categoryParams(req storesdk.CategoryRequest) service.CategoryParams {
	return service.CategoryParams{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ParentID:    req.ParentID,
		IsActive:    req.IsActive,
		SortOrder:   req.SortOrder,
	}
}
