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

type ProductsHandler struct {
	CatalogService *service.CatalogService
}

// HandleCreate creates a new product.
//
//	@Summary		Create a product
//	@Description	Price must be positive, sku unique, and any referenced category must exist.
//	@Tags			Catalog
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		storesdk.ProductRequest	true	"Product details"
//	@Success		201		{object}	storesdk.ProductResponse
//	@Failure		401		{object}	storesdk.APIError	"Invalid or missing access token"
//	@Failure		409		{object}	storesdk.APIError	"Slug or sku already in use"
//	@Failure		422		{object}	storesdk.APIError	"Validation failed"
//	@Router			/api/v1/products/ [post].
func (h *ProductsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req storesdk.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		storesdk.ErrBadRequest.WriteError(w)
		return
	}

	prod, err := h.CatalogService.CreateProduct(ctx, productParams(req))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toProductResponse(prod))
}

// HandleGet returns a product by id.
//
//	@Summary	Get a product
//	@Tags		Catalog
//	@Produce	json
//	@Param		id	path		string	true	"Product id"
//	@Success	200	{object}	storesdk.ProductResponse
//	@Failure	404	{object}	storesdk.APIError	"Product not found"
//	@Router		/api/v1/products/{id} [get].
func (h *ProductsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	prod, err := h.CatalogService.GetProduct(ctx, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toProductResponse(prod))
}

// HandleList returns products matching the query filters.
//
//	@Summary	List products
//	@Tags		Catalog
//	@Produce	json
//	@Param		skip		query		int		false	"Offset into the result set"
//	@Param		limit		query		int		false	"Maximum results (default 100)"
//	@Param		is_active	query		bool	false	"Filter by active state"
//	@Param		category_id	query		string	false	"Filter by category"
//	@Success	200			{array}		storesdk.ProductResponse
//	@Router		/api/v1/products/ [get].
func (h *ProductsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var f store.ProductFilter
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
	if cat := r.URL.Query().Get("category_id"); cat != "" {
		f.CategoryID = &cat
	}

	prods, err := h.CatalogService.ListProducts(ctx, f)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	out := make([]storesdk.ProductResponse, 0, len(prods))
	for _, p := range prods {
		out = append(out, toProductResponse(p))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleUpdate applies a partial update to a product.
//
//	@Summary	Update a product
//	@Tags		Catalog
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Product id"
//	@Param		body	body		storesdk.ProductRequest	true	"Fields to update"
//	@Success	200		{object}	storesdk.ProductResponse
//	@Failure	401		{object}	storesdk.APIError	"Invalid or missing access token"
//	@Failure	404		{object}	storesdk.APIError	"Product not found"
//	@Failure	409		{object}	storesdk.APIError	"Slug or sku already in use"
//	@Failure	422		{object}	storesdk.APIError	"Validation failed"
//	@Router		/api/v1/products/{id} [put].
func (h *ProductsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req storesdk.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		storesdk.ErrBadRequest.WriteError(w)
		return
	}

	prod, err := h.CatalogService.UpdateProduct(ctx, r.PathValue("id"), productParams(req))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toProductResponse(prod))
}

// HandleDelete removes a product.
//
//	@Summary	Delete a product
//	@Tags		Catalog
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Product id"
//	@Success	204
//	@Failure	401	{object}	storesdk.APIError	"Invalid or missing access token"
//	@Failure	404	{object}	storesdk.APIError	"Product not found"
//	@Router		/api/v1/products/{id} [delete].
func (h *ProductsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.CatalogService.DeleteProduct(ctx, r.PathValue("id")); err != nil {
		writeServiceError(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func productParams(req storesdk.ProductRequest) service.ProductParams {
	return service.ProductParams{
		Name:         req.Name,
		Slug:         req.Slug,
		Description:  req.Description,
		Price:        req.Price,
		ComparePrice: req.ComparePrice,
		SKU:          req.SKU,
		StockQty:     req.StockQty,
		IsActive:     req.IsActive,
		CategoryID:   req.CategoryID,
	}
}
