package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	CountByOrderID(ctx context.Context, db *gorm.DB, orderID string) (int64, error)
	// Insert stores one requirement line. Duplicate (order, supply) pairs are
	// swallowed so concurrent resolutions converge on the same set.
	Insert(ctx context.Context, db *gorm.DB, req *OrderRequirement) error
	// ListResolved joins requirements with supply stock and consumption totals.
	ListResolved(ctx context.Context, db *gorm.DB, orderID string) ([]ResolvedRequirement, error)
}
