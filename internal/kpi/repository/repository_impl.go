package repository

import (
	"context"
	"time"

	orderdomain "github.com/buestan/buestanflow/internal/order/domain"
	"gorm.io/gorm"
)

// Repository computes the dashboard aggregates. All queries run against the
// live tables; the snapshot wrapper groups them in one read transaction.
type Repository struct{}

func Provide() *Repository {
	return &Repository{}
}

func (r *Repository) CountOrdersByStatus(ctx context.Context, db *gorm.DB, status orderdomain.Status) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&orderdomain.Order{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *Repository) SumQuantityByStatus(ctx context.Context, db *gorm.DB, status orderdomain.Status) (int64, error) {
	var sum int64
	err := db.WithContext(ctx).
		Model(&orderdomain.Order{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("status = ?", status).
		Scan(&sum).Error
	return sum, err
}

// CountFinishedBetween counts orders whose last update landed in the window
// while in finished state. The window is the reporting day in local time.
func (r *Repository) CountFinishedBetween(ctx context.Context, db *gorm.DB, from, to time.Time) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&orderdomain.Order{}).
		Where("status = ?", orderdomain.StatusFinished).
		Where("updated_at >= ? AND updated_at < ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *Repository) CountLowStock(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Table("supply_items").
		Where("stock <= min_stock").
		Count(&count).Error
	return count, err
}
