package repository

import (
	"context"
	"errors"

	"github.com/warungkita/pos/internal/catalog/domain"
	"github.com/warungkita/pos/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Create(product).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Save(product).Error
}

func (r *repo) FindByUUID(ctx context.Context, db *gorm.DB, uuid string, scope domain.Scope) (*domain.Product, error) {
	var product domain.Product
	err := scoped(db.WithContext(ctx), scope).First(&product, "uuid = ?", uuid).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, scope domain.Scope, page pagination.Pagination) ([]domain.Product, int64, error) {
	var (
		products []domain.Product
		total    int64
	)

	stmt := scoped(db.WithContext(ctx).Model(&domain.Product{}), scope)
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := page.Apply(stmt).
		Order("created_at desc, id desc").
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *repo) ListAll(ctx context.Context, db *gorm.DB) ([]domain.Product, error) {
	var products []domain.Product
	err := db.WithContext(ctx).
		Order("created_at desc, id desc").
		Find(&products).Error
	return products, err
}

func (r *repo) SoftDelete(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Delete(product).Error
}

func (r *repo) Restore(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Unscoped().Model(product).Update("deleted_at", nil).Error
}

func (r *repo) ForceDelete(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Unscoped().Delete(product).Error
}

func scoped(stmt *gorm.DB, scope domain.Scope) *gorm.DB {
	switch scope {
	case domain.ScopeWithDeleted:
		return stmt.Unscoped()
	case domain.ScopeOnlyDeleted:
		return stmt.Unscoped().Where("deleted_at IS NOT NULL")
	default:
		return stmt
	}
}
