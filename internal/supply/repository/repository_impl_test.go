package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/buestan/buestanflow/internal/supply/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestRepo(t *testing.T) (domain.Repository, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.SupplyItem{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return Provide(node), db
}

func TestGetOrCreate(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	created, err := repo.GetOrCreate(ctx, db, "Cuero Base", "m2",
		decimal.NewFromInt(50), decimal.NewFromInt(10), at)
	require.NoError(t, err)
	assert.Equal(t, "50", created.Stock.String())
	assert.True(t, created.CreatedAt.Equal(at))
	assert.True(t, created.UpdatedAt.Equal(at))

	// Second call returns the existing row untouched, even with different
	// defaults.
	again, err := repo.GetOrCreate(ctx, db, "Cuero Base", "m2",
		decimal.NewFromInt(999), decimal.NewFromInt(1), at.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
	assert.Equal(t, "50", again.Stock.String())
	assert.True(t, again.CreatedAt.Equal(at))

	// Same name in a different unit is a distinct supply.
	other, err := repo.GetOrCreate(ctx, db, "Cuero Base", "rollo",
		decimal.NewFromInt(5), decimal.NewFromInt(1), at)
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, other.ID)

	_, err = repo.GetOrCreate(ctx, db, "  ", "m2", decimal.Zero, decimal.Zero, at)
	assert.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestDecrementStock(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	item, err := repo.GetOrCreate(ctx, db, "Cordones", "par",
		decimal.NewFromInt(10), decimal.NewFromInt(2), at)
	require.NoError(t, err)

	drawnAt := at.Add(30 * time.Minute)
	ok, err := repo.DecrementStock(ctx, db, item.ID, decimal.NewFromInt(7), drawnAt)
	require.NoError(t, err)
	assert.True(t, ok)

	current, err := repo.FindByID(ctx, db, item.ID)
	require.NoError(t, err)
	assert.True(t, current.UpdatedAt.Equal(drawnAt))

	// Draining to exactly zero is allowed.
	ok, err = repo.DecrementStock(ctx, db, item.ID, decimal.NewFromInt(3), drawnAt)
	require.NoError(t, err)
	assert.True(t, ok)

	// The guard refuses to go negative and leaves stock untouched.
	ok, err = repo.DecrementStock(ctx, db, item.ID, decimal.NewFromInt(1), drawnAt)
	require.NoError(t, err)
	assert.False(t, ok)

	current, err = repo.FindByID(ctx, db, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "0", current.Stock.String())

	// Unknown id behaves like an exhausted supply.
	ok, err = repo.DecrementStock(ctx, db, snowflake.ID(123456), decimal.NewFromInt(1), drawnAt)
	require.NoError(t, err)
	assert.False(t, ok)
}
