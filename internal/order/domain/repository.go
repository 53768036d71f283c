package domain

import (
	"context"

	"github.com/warungkita/pos/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, order *Order) error
	InsertDetails(ctx context.Context, db *gorm.DB, details []OrderDetail) error
	DeleteDetailsByOrderNo(ctx context.Context, db *gorm.DB, orderNo string) error
	FindByUUID(ctx context.Context, db *gorm.DB, uuid string) (*Order, error)
	FindByOrderNo(ctx context.Context, db *gorm.DB, orderNo string) (*Order, error)
	List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]Order, int64, error)
	Update(ctx context.Context, db *gorm.DB, order *Order) error
	HardDelete(ctx context.Context, db *gorm.DB, order *Order) error
	// OrderNumbers returns every orderno with the given prefix,
	// soft-deleted orders included, so an issued number is never reused.
	OrderNumbers(ctx context.Context, db *gorm.DB, prefix string) ([]string, error)
}
