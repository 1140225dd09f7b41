package domain

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// ConsumeItem is one supply draw within a consumption request.
type ConsumeItem struct {
	SupplyID snowflake.ID    `json:"supply_id"`
	Quantity decimal.Decimal `json:"quantity"`
	Note     string          `json:"note,omitempty"`
}

// ConsumeRequest draws several supplies against one order atomically.
type ConsumeRequest struct {
	OrderID string        `json:"order_id"`
	Items   []ConsumeItem `json:"items"`
}

var (
	ErrEmptyConsumptionSet = errors.New("empty_consumption_set")
	ErrInvalidQuantity     = errors.New("invalid_quantity")
	ErrInvalidOrderState   = errors.New("invalid_order_state")
)

// InsufficientStockError reports which supply blocked the transaction so the
// floor can see what to restock.
type InsufficientStockError struct {
	SupplyID  snowflake.ID
	Name      string
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient_stock: %s has %s, requested %s",
		e.Name, e.Available.String(), e.Requested.String())
}
