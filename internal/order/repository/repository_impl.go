package repository

import (
	"context"
	"errors"

	"github.com/warungkita/pos/internal/order/domain"
	"github.com/warungkita/pos/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).Omit("Details").Create(order).Error
}

func (r *repo) InsertDetails(ctx context.Context, db *gorm.DB, details []domain.OrderDetail) error {
	if len(details) == 0 {
		return nil
	}
	return db.WithContext(ctx).Omit("Product").Create(&details).Error
}

func (r *repo) DeleteDetailsByOrderNo(ctx context.Context, db *gorm.DB, orderNo string) error {
	return db.WithContext(ctx).
		Where("orderno = ?", orderNo).
		Delete(&domain.OrderDetail{}).Error
}

func (r *repo) FindByUUID(ctx context.Context, db *gorm.DB, uuid string) (*domain.Order, error) {
	return r.findOne(ctx, db, "uuid = ?", uuid)
}

func (r *repo) FindByOrderNo(ctx context.Context, db *gorm.DB, orderNo string) (*domain.Order, error) {
	return r.findOne(ctx, db, "orderno = ?", orderNo)
}

func (r *repo) findOne(ctx context.Context, db *gorm.DB, query string, arg any) (*domain.Order, error) {
	var order domain.Order
	err := db.WithContext(ctx).
		Preload("Details.Product", func(tx *gorm.DB) *gorm.DB {
			// Trashed products still render on existing orders.
			return tx.Unscoped()
		}).
		Where(query, arg).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]domain.Order, int64, error) {
	var total int64
	stmt := db.WithContext(ctx).Model(&domain.Order{})
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []domain.Order
	err := page.Apply(stmt).
		Preload("Details.Product", func(tx *gorm.DB) *gorm.DB {
			return tx.Unscoped()
		}).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).Omit("Details").Save(order).Error
}

func (r *repo) HardDelete(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).Unscoped().Delete(order).Error
}

func (r *repo) OrderNumbers(ctx context.Context, db *gorm.DB, prefix string) ([]string, error) {
	var numbers []string
	err := db.WithContext(ctx).
		Model(&domain.Order{}).
		Unscoped().
		Where("orderno LIKE ?", prefix+"%").
		Pluck("orderno", &numbers).Error
	if err != nil {
		return nil, err
	}
	return numbers, nil
}
