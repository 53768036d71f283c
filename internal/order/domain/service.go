package domain

import (
	"context"
	"errors"

	"github.com/warungkita/pos/pkg/db/pagination"
)

// ProductSelection references a catalog product by its public uuid.
type ProductSelection struct {
	UUID string `json:"uuid"`
	Qty  int64  `json:"qty"`
}

type PackageRequest struct {
	Products []ProductSelection `json:"products"`
}

type CreateOrderRequest struct {
	Packages     []PackageRequest `json:"order_package"`
	Status       *OrderStatus     `json:"status"`
	TotalPayment int64            `json:"total_payment"`
	GrandTotal   int64            `json:"grand_total"`
	Change       int64            `json:"change"`
}

// UpdateOrderRequest carries the same body shape as create: the line
// items and payment fields are replaced wholesale, never merged.
type UpdateOrderRequest struct {
	Packages     []PackageRequest `json:"order_package"`
	Status       *OrderStatus     `json:"status"`
	TotalPayment int64            `json:"total_payment"`
	GrandTotal   int64            `json:"grand_total"`
	Change       int64            `json:"change"`
}

type ListOrdersRequest struct {
	Page pagination.Pagination
}

type ListOrdersResponse struct {
	pagination.PageInfo
	Orders []Order `json:"orders"`
}

type Service interface {
	Create(ctx context.Context, req CreateOrderRequest) (*Order, error)
	List(ctx context.Context, req ListOrdersRequest) (ListOrdersResponse, error)
	Get(ctx context.Context, uuid string) (*Order, error)
	GetByOrderNo(ctx context.Context, orderNo string) (*Order, error)
	Update(ctx context.Context, uuid string, req UpdateOrderRequest) (*Order, error)
	Delete(ctx context.Context, orderNo string) error
}

var (
	ErrNotFound        = errors.New("order_not_found")
	ErrProductNotFound = errors.New("order_product_not_found")
	ErrEmptyOrder      = errors.New("order_empty")
	ErrInvalidQty      = errors.New("order_invalid_qty")
	ErrInvalidStatus   = errors.New("order_invalid_status")
)
