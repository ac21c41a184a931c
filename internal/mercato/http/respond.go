package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mercatohq/mercato/internal/mercato/domain"
	"github.com/mercatohq/mercato/internal/mercato/service"
	"github.com/mercatohq/mercato/internal/mercato/store"
	"github.com/mercatohq/mercato/pkg/storesdk"
)

func toUserResponse(u domain.User) storesdk.UserResponse {
	return storesdk.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toCategoryResponse(c domain.Category) storesdk.CategoryResponse {
	return storesdk.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		ParentID:    c.ParentID,
		IsActive:    c.IsActive,
		SortOrder:   c.SortOrder,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toProductResponse(p domain.Product) storesdk.ProductResponse {
	return storesdk.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Slug:         p.Slug,
		Description:  p.Description,
		Price:        p.Price,
		ComparePrice: p.ComparePrice,
		SKU:          p.SKU,
		StockQty:     p.StockQty,
		IsActive:     p.IsActive,
		CategoryID:   p.CategoryID,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// writeServiceError maps service and store errors to the shared APIError
// bodies. Anything unrecognized is logged and reported as a 500.
func writeServiceError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		storesdk.ErrValidation.WithDescription(describe(err, service.ErrValidation)).WriteError(w)
	case errors.Is(err, service.ErrConflict):
		storesdk.ErrConflict.WithDescription(describe(err, service.ErrConflict)).WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		storesdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, store.ErrNotFound):
		storesdk.ErrNotFound.WriteError(w)
	default:
		log.Error("request failed", "err", err)
		storesdk.ErrServerError.WriteError(w)
	}
}

// describe strips the sentinel prefix from a wrapped error message so the
// client sees "price must be greater than zero" rather than
// "validation_error: price must be greater than zero".
func describe(err, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error())
	msg = strings.TrimPrefix(msg, ": ")
	if msg == "" {
		return sentinel.Error()
	}
	return msg
}
