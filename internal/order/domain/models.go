package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Status is the order's position in the production pipeline. The machine is
// strictly linear: queued, then in_progress, then finished.
type Status string

const (
	StatusQueued     Status = "queued"
	StatusInProgress Status = "in_progress"
	StatusFinished   Status = "finished"
)

// validTransitions is the single source of truth for the state machine.
// Finished is terminal.
var validTransitions = map[Status][]Status{
	StatusQueued:     {StatusInProgress},
	StatusInProgress: {StatusFinished},
	StatusFinished:   {},
}

// CanTransition reports whether from may move to to in one step. Self
// transitions are rejected.
func CanTransition(from, to Status) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ParseStatus validates a wire-level status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusQueued, StatusInProgress, StatusFinished:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return Priority(s), nil
	case "":
		return PriorityMedium, nil
	default:
		return "", ErrInvalidPriority
	}
}

// Order is a manufacturing order. IDs are human-facing sequential codes in
// the form P1001, P1002, assigned at creation.
type Order struct {
	ID                string          `gorm:"primaryKey" json:"id"`
	ClientID          snowflake.ID    `gorm:"not null;index" json:"client_id"`
	ProductID         snowflake.ID    `gorm:"not null;index" json:"product_id"`
	Quantity          int             `gorm:"not null" json:"quantity"`
	Status            Status          `gorm:"not null;index" json:"status"`
	Priority          Priority        `gorm:"not null" json:"priority"`
	TotalPrice        decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"total_price"`
	Notes             string          `json:"notes,omitempty"`
	EstimatedDelivery time.Time       `gorm:"not null" json:"estimated_delivery"`
	CreatedAt         time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"not null;index" json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderView is the order joined with its client and product names for listing.
type OrderView struct {
	Order
	ClientName  string `json:"client_name"`
	ProductName string `json:"product_name"`
	Category    string `json:"category"`
}

// ListFilter narrows order listings. Zero values mean "no filter".
type ListFilter struct {
	Status   Status
	ClientID snowflake.ID
	Limit    int
}

var (
	ErrNotFound          = errors.New("order_not_found")
	ErrInvalidStatus     = errors.New("invalid_status")
	ErrInvalidPriority   = errors.New("invalid_priority")
	ErrInvalidQuantity   = errors.New("invalid_quantity")
	ErrInvalidTransition = errors.New("invalid_transition")
)
