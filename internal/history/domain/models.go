package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// StatusChangeRecord is the append-only audit trail of order state
// transitions. PreviousStatus is nil for the creation entry.
type StatusChangeRecord struct {
	ID             snowflake.ID      `gorm:"primaryKey" json:"id"`
	OrderID        string            `gorm:"not null;index" json:"order_id"`
	PreviousStatus *string           `json:"previous_status,omitempty"`
	NewStatus      string            `gorm:"not null" json:"new_status"`
	ActorID        string            `gorm:"not null" json:"actor_id"`
	Note           string            `json:"note,omitempty"`
	Metadata       datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt      time.Time         `gorm:"not null;index" json:"created_at"`
}

func (StatusChangeRecord) TableName() string {
	return "status_changes"
}

// ConsumptionEvent records one supply draw against an order. Events are never
// updated or deleted; stock corrections are modeled as new orders.
type ConsumptionEvent struct {
	ID        snowflake.ID    `gorm:"primaryKey" json:"id"`
	OrderID   string          `gorm:"not null;index:idx_consumption_order_supply" json:"order_id"`
	SupplyID  snowflake.ID    `gorm:"not null;index:idx_consumption_order_supply" json:"supply_id"`
	Quantity  decimal.Decimal `gorm:"type:numeric(14,3);not null" json:"quantity"`
	ActorID   string          `gorm:"not null" json:"actor_id"`
	Note      string          `json:"note,omitempty"`
	CreatedAt time.Time       `gorm:"not null;index" json:"created_at"`
}

func (ConsumptionEvent) TableName() string {
	return "consumption_events"
}

// StatusChangeFilter narrows List queries. Zero values mean "no filter".
// Status matches as a substring of the new status.
type StatusChangeFilter struct {
	OrderID string
	ActorID string
	Status  string
	Limit   int
}

type ConsumptionFilter struct {
	OrderID  string
	SupplyID snowflake.ID
	Limit    int
}
