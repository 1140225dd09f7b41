package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository provides product and client lookups with auto-provisioning.
// Referencing an unknown name creates the record with documented defaults,
// stamped at the caller's clock time; the policy is centralized here so it
// stays testable and overridable.
type Repository interface {
	GetOrCreateProduct(ctx context.Context, db *gorm.DB, name string, at time.Time) (*Product, error)
	GetOrCreateClient(ctx context.Context, db *gorm.DB, name string, at time.Time) (*Client, error)
	FindProductByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Product, error)
}
