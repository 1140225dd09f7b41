package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	// NextID allocates the next sequential order code (P1001, P1002, ...).
	// Callers must retry on duplicate key; two transactions can read the same
	// maximum.
	NextID(ctx context.Context, db *gorm.DB) (string, error)
	Insert(ctx context.Context, db *gorm.DB, order *Order) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*Order, error)
	// UpdateStatus moves the order from exactly `from` to `to`, stamping
	// updated_at with the caller's clock. Returns false when the row was not
	// in `from` anymore, which serializes concurrent transitions.
	UpdateStatus(ctx context.Context, db *gorm.DB, id string, from, to Status, at time.Time) (bool, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]OrderView, error)
	FindViewByID(ctx context.Context, db *gorm.DB, id string) (*OrderView, error)
}
