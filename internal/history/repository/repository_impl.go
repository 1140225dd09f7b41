package repository

import (
	"context"

	"github.com/buestan/buestanflow/internal/history/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

const defaultListLimit = 100

type repo struct {
	genID *snowflake.Node
}

func Provide(genID *snowflake.Node) domain.Repository {
	return &repo{genID: genID}
}

// Callers stamp CreatedAt from their clock so the record shares the
// transaction's timestamp; the repository only fills identity.
func (r *repo) InsertStatusChange(ctx context.Context, db *gorm.DB, rec *domain.StatusChangeRecord) error {
	if rec.ID == 0 {
		rec.ID = r.genID.Generate()
	}
	return db.WithContext(ctx).Create(rec).Error
}

func (r *repo) InsertConsumption(ctx context.Context, db *gorm.DB, ev *domain.ConsumptionEvent) error {
	if ev.ID == 0 {
		ev.ID = r.genID.Generate()
	}
	return db.WithContext(ctx).Create(ev).Error
}

func (r *repo) ListStatusChanges(ctx context.Context, db *gorm.DB, filter domain.StatusChangeFilter) ([]domain.StatusChangeRecord, error) {
	query := db.WithContext(ctx).Model(&domain.StatusChangeRecord{})
	if filter.OrderID != "" {
		query = query.Where("order_id = ?", filter.OrderID)
	}
	if filter.ActorID != "" {
		query = query.Where("actor_id = ?", filter.ActorID)
	}
	if filter.Status != "" {
		query = query.Where("new_status LIKE ?", "%"+filter.Status+"%")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	var records []domain.StatusChangeRecord
	err := query.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repo) ListConsumption(ctx context.Context, db *gorm.DB, filter domain.ConsumptionFilter) ([]domain.ConsumptionEvent, error) {
	query := db.WithContext(ctx).Model(&domain.ConsumptionEvent{})
	if filter.OrderID != "" {
		query = query.Where("order_id = ?", filter.OrderID)
	}
	if filter.SupplyID != 0 {
		query = query.Where("supply_id = ?", filter.SupplyID)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	var events []domain.ConsumptionEvent
	err := query.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
