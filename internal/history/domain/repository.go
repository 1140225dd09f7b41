package domain

import (
	"context"

	"gorm.io/gorm"
)

// Repository appends and reads audit records. Writers pass the transaction of
// the mutation they are auditing so the record commits or rolls back with it.
type Repository interface {
	InsertStatusChange(ctx context.Context, db *gorm.DB, rec *StatusChangeRecord) error
	InsertConsumption(ctx context.Context, db *gorm.DB, ev *ConsumptionEvent) error
	ListStatusChanges(ctx context.Context, db *gorm.DB, filter StatusChangeFilter) ([]StatusChangeRecord, error)
	ListConsumption(ctx context.Context, db *gorm.DB, filter ConsumptionFilter) ([]ConsumptionEvent, error)
}
