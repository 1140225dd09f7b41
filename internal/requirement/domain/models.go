package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// OrderRequirement pins one supply line to an order. Required is the quantity
// the full order needs, frozen at resolution time.
type OrderRequirement struct {
	ID        snowflake.ID    `gorm:"primaryKey" json:"id"`
	OrderID   string          `gorm:"not null;uniqueIndex:idx_requirement_order_supply" json:"order_id"`
	SupplyID  snowflake.ID    `gorm:"not null;uniqueIndex:idx_requirement_order_supply" json:"supply_id"`
	Required  decimal.Decimal `gorm:"type:numeric(14,3);not null" json:"required"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
}

func (OrderRequirement) TableName() string {
	return "order_requirements"
}

// ResolvedRequirement is the read projection served to callers: the frozen
// requirement joined with the supply's live stock and the quantity already
// consumed against the order. Used is a per-line scratch counter for clients
// assembling a draw; the server always returns it as zero.
type ResolvedRequirement struct {
	SupplyID      snowflake.ID    `json:"supply_id"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	Required      decimal.Decimal `json:"required"`
	Available     decimal.Decimal `json:"available"`
	TotalConsumed decimal.Decimal `json:"total_consumed"`
	Used          decimal.Decimal `json:"used"`
}

var ErrOrderNotFound = errors.New("order_not_found")
