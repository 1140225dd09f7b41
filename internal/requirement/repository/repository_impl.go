package repository

import (
	"context"

	"github.com/buestan/buestanflow/internal/requirement/domain"
	pkgdb "github.com/buestan/buestanflow/pkg/db"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct {
	genID *snowflake.Node
}

func Provide(genID *snowflake.Node) domain.Repository {
	return &repo{genID: genID}
}

func (r *repo) CountByOrderID(ctx context.Context, db *gorm.DB, orderID string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.OrderRequirement{}).
		Where("order_id = ?", orderID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, req *domain.OrderRequirement) error {
	if req.ID == 0 {
		req.ID = r.genID.Generate()
	}
	err := db.WithContext(ctx).Create(req).Error
	if err != nil && pkgdb.IsDuplicateKeyErr(err) {
		// A concurrent resolution already wrote this line.
		return nil
	}
	return err
}

func (r *repo) ListResolved(ctx context.Context, db *gorm.DB, orderID string) ([]domain.ResolvedRequirement, error) {
	var resolved []domain.ResolvedRequirement
	err := db.WithContext(ctx).
		Table("order_requirements").
		Select(`order_requirements.supply_id,
		        supply_items.name,
		        supply_items.unit,
		        order_requirements.required,
		        supply_items.stock AS available,
		        COALESCE((
		            SELECT SUM(ce.quantity)
		            FROM consumption_events ce
		            WHERE ce.order_id = order_requirements.order_id
		              AND ce.supply_id = order_requirements.supply_id
		        ), 0) AS total_consumed,
		        0 AS used`).
		Joins("JOIN supply_items ON supply_items.id = order_requirements.supply_id").
		Where("order_requirements.order_id = ?", orderID).
		Order("supply_items.name ASC").
		Scan(&resolved).Error
	if err != nil {
		return nil, err
	}
	return resolved, nil
}
