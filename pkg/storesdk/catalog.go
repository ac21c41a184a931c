package storesdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ListCatalogOptions filters category and product listings.
type ListCatalogOptions struct {
	Skip       int
	Limit      int
	IsActive   *bool
	ParentID   *string // categories only
	CategoryID *string // products only
}

func (o ListCatalogOptions) query() string {
	q := url.Values{}
	if o.Skip > 0 {
		q.Set("skip", strconv.Itoa(o.Skip))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.IsActive != nil {
		q.Set("is_active", strconv.FormatBool(*o.IsActive))
	}
	if o.ParentID != nil {
		q.Set("parent_id", *o.ParentID)
	}
	if o.CategoryID != nil {
		q.Set("category_id", *o.CategoryID)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// CreateCategory creates a new category. Requires authentication.
func (c *Client) CreateCategory(ctx context.Context, req CategoryRequest) (*CategoryResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/v1/categories/", req)
	if err != nil {
		return nil, err
	}

	var cat CategoryResponse
	if err := decodeJSON(resp, &cat, http.StatusCreated); err != nil {
		return nil, err
	}
	return &cat, nil
}

// GetCategory fetches a category by id. Public.
func (c *Client) GetCategory(ctx context.Context, id string) (*CategoryResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/v1/categories/"+id, nil, nil)
	if err != nil {
		return nil, err
	}

	var cat CategoryResponse
	if err := decodeJSON(resp, &cat, http.StatusOK); err != nil {
		return nil, err
	}
	return &cat, nil
}

// ListCategories returns categories matching the options. Public.
func (c *Client) ListCategories(ctx context.Context, opts ListCatalogOptions) ([]CategoryResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/v1/categories/"+opts.query(), nil, nil)
	if err != nil {
		return nil, err
	}

	var cats []CategoryResponse
	if err := decodeJSON(resp, &cats, http.StatusOK); err != nil {
		return nil, err
	}
	return cats, nil
}

// UpdateCategory applies a partial update. Requires authentication.
func (c *Client) UpdateCategory(ctx context.Context, id string, req CategoryRequest) (*CategoryResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPut, "/api/v1/categories/"+id, req)
	if err != nil {
		return nil, err
	}

	var cat CategoryResponse
	if err := decodeJSON(resp, &cat, http.StatusOK); err != nil {
		return nil, err
	}
	return &cat, nil
}

// DeleteCategory removes a category. Requires authentication.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/api/v1/categories/"+id, nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// CreateProduct creates a new product. Requires authentication.
func (c *Client) CreateProduct(ctx context.Context, req ProductRequest) (*ProductResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/v1/products/", req)
	if err != nil {
		return nil, err
	}

	var prod ProductResponse
	if err := decodeJSON(resp, &prod, http.StatusCreated); err != nil {
		return nil, err
	}
	return &prod, nil
}

// GetProduct fetches a product by id. Public.
func (c *Client) GetProduct(ctx context.Context, id string) (*ProductResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/v1/products/"+id, nil, nil)
	if err != nil {
		return nil, err
	}

	var prod ProductResponse
	if err := decodeJSON(resp, &prod, http.StatusOK); err != nil {
		return nil, err
	}
	return &prod, nil
}

// ListProducts returns products matching the options. Public.
func (c *Client) ListProducts(ctx context.Context, opts ListCatalogOptions) ([]ProductResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/v1/products/"+opts.query(), nil, nil)
	if err != nil {
		return nil, err
	}

	var prods []ProductResponse
	if err := decodeJSON(resp, &prods, http.StatusOK); err != nil {
		return nil, err
	}
	return prods, nil
}

// UpdateProduct applies a partial update. Requires authentication.
func (c *Client) UpdateProduct(ctx context.Context, id string, req ProductRequest) (*ProductResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPut, "/api/v1/products/"+id, req)
	if err != nil {
		return nil, err
	}

	var prod ProductResponse
	if err := decodeJSON(resp, &prod, http.StatusOK); err != nil {
		return nil, err
	}
	return &prod, nil
}

// DeleteProduct removes a product. Requires authentication.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/api/v1/products/"+id, nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
