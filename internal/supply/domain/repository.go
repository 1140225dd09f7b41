package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository is the single write path for supply stock. Stock is mutated only
// through DecrementStock so the floor check cannot be bypassed.
type Repository interface {
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*SupplyItem, error)
	FindByNameAndUnit(ctx context.Context, db *gorm.DB, name, unit string) (*SupplyItem, error)
	// GetOrCreate looks the supply up by (name, unit) and auto-provisions it
	// with the given default stock and threshold when missing, stamped at the
	// caller's clock time.
	GetOrCreate(ctx context.Context, db *gorm.DB, name, unit string, defaultStock, minStock decimal.Decimal, at time.Time) (*SupplyItem, error)
	// DecrementStock atomically subtracts quantity from the item's stock,
	// refusing to go below zero. Returns false when the guard rejected the
	// decrement (insufficient stock or unknown id).
	DecrementStock(ctx context.Context, db *gorm.DB, id snowflake.ID, quantity decimal.Decimal, at time.Time) (bool, error)
}
