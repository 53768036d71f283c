package domain

import (
	"context"
	"errors"

	"github.com/warungkita/pos/pkg/db/pagination"
)

type CreateProductRequest struct {
	Name  string
	Price int64
	Image *string
}

type UpdateProductRequest struct {
	Name   string
	Price  int64
	Active *bool
	Image  *string
}

type ListProductsRequest struct {
	Scope Scope
	Page  pagination.Pagination
}

type ListProductsResponse struct {
	pagination.PageInfo
	Products []Product `json:"products"`
}

type Service interface {
	Create(ctx context.Context, req CreateProductRequest) (*Product, error)
	List(ctx context.Context, req ListProductsRequest) (ListProductsResponse, error)
	All(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, uuid string) (*Product, error)
	Update(ctx context.Context, uuid string, req UpdateProductRequest) (*Product, error)
	Delete(ctx context.Context, uuid string) (*Product, error)
	Restore(ctx context.Context, uuid string) (*Product, error)
	ForceDelete(ctx context.Context, uuid string) error
}

var (
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidPrice = errors.New("invalid_price")
	ErrNotFound     = errors.New("product_not_found")
)
