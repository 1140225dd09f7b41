package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// SupplyItem is a raw-material inventory item consumed by orders.
type SupplyItem struct {
	ID        snowflake.ID    `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"not null;uniqueIndex:idx_supply_name_unit" json:"name"`
	Unit      string          `gorm:"not null;uniqueIndex:idx_supply_name_unit" json:"unit"`
	Stock     decimal.Decimal `gorm:"type:numeric(14,3);not null" json:"stock"`
	MinStock  decimal.Decimal `gorm:"type:numeric(14,3);not null" json:"min_stock"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`
}

func (SupplyItem) TableName() string {
	return "supply_items"
}

var (
	ErrNotFound    = errors.New("supply_not_found")
	ErrInvalidName = errors.New("invalid_supply_name")
)
