package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/buestan/buestanflow/internal/order/domain"
	"gorm.io/gorm"
)

const defaultListLimit = 100

// orderIDFloor keeps new codes above the range the factory used on paper, so
// the first generated order is P1001.
const orderIDFloor = 1000

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) NextID(ctx context.Context, db *gorm.DB) (string, error) {
	var max int64
	err := db.WithContext(ctx).
		Raw(`SELECT COALESCE(MAX(CAST(SUBSTR(id, 2) AS INTEGER)), ?)
		     FROM orders
		     WHERE id LIKE 'P%'`, orderIDFloor).
		Scan(&max).Error
	if err != nil {
		return "", err
	}
	if max < orderIDFloor {
		max = orderIDFloor
	}
	return fmt.Sprintf("P%d", max+1), nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).Create(order).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.Order, error) {
	var order domain.Order
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id string, from, to domain.Status, at time.Time) (bool, error) {
	result := db.WithContext(ctx).Exec(
		`UPDATE orders
		 SET status = ?, updated_at = ?
		 WHERE id = ? AND status = ?`,
		to,
		at.UTC(),
		id,
		from,
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]domain.OrderView, error) {
	query := r.viewQuery(ctx, db)
	if filter.Status != "" {
		query = query.Where("orders.status = ?", filter.Status)
	}
	if filter.ClientID != 0 {
		query = query.Where("orders.client_id = ?", filter.ClientID)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	var views []domain.OrderView
	err := query.
		Order("orders.created_at DESC, orders.id DESC").
		Limit(limit).
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (r *repo) FindViewByID(ctx context.Context, db *gorm.DB, id string) (*domain.OrderView, error) {
	var view domain.OrderView
	result := r.viewQuery(ctx, db).
		Where("orders.id = ?", id).
		Scan(&view)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &view, nil
}

func (r *repo) viewQuery(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).
		Table("orders").
		Select(`orders.*,
		        clients.name AS client_name,
		        products.name AS product_name,
		        products.category AS category`).
		Joins("JOIN clients ON clients.id = orders.client_id").
		Joins("JOIN products ON products.id = orders.product_id")
}
