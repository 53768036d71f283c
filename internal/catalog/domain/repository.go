package domain

import (
	"context"

	"github.com/warungkita/pos/pkg/db/pagination"
	"gorm.io/gorm"
)

// Scope selects which deletion states a lookup sees. Soft-deleted rows
// stay in the table; the scope is the explicit filter over them.
type Scope string

const (
	// ScopeDefault excludes soft-deleted rows.
	ScopeDefault Scope = "default"
	// ScopeWithDeleted includes soft-deleted rows.
	ScopeWithDeleted Scope = "with_deleted"
	// ScopeOnlyDeleted is restricted to soft-deleted rows.
	ScopeOnlyDeleted Scope = "only_deleted"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, product *Product) error
	Update(ctx context.Context, db *gorm.DB, product *Product) error
	FindByUUID(ctx context.Context, db *gorm.DB, uuid string, scope Scope) (*Product, error)
	List(ctx context.Context, db *gorm.DB, scope Scope, page pagination.Pagination) ([]Product, int64, error)
	ListAll(ctx context.Context, db *gorm.DB) ([]Product, error)
	SoftDelete(ctx context.Context, db *gorm.DB, product *Product) error
	Restore(ctx context.Context, db *gorm.DB, product *Product) error
	ForceDelete(ctx context.Context, db *gorm.DB, product *Product) error
}
