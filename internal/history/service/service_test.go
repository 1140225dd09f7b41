package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/buestan/buestanflow/internal/history/domain"
	"github.com/buestan/buestanflow/internal/history/repository"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, domain.Repository, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.StatusChangeRecord{},
		&domain.ConsumptionEvent{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	repo := repository.Provide(node)
	svc := New(Params{DB: db, Log: zap.NewNop(), Repo: repo})
	return svc, repo, db
}

func TestListStatusChanges(t *testing.T) {
	svc, repo, db := newTestService(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	for i, status := range []string{"queued", "in_progress", "finished"} {
		require.NoError(t, repo.InsertStatusChange(ctx, db, &domain.StatusChangeRecord{
			OrderID:   "P1001",
			NewStatus: status,
			ActorID:   "op-1",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, repo.InsertStatusChange(ctx, db, &domain.StatusChangeRecord{
		OrderID:   "P1002",
		NewStatus: "queued",
		ActorID:   "op-2",
		CreatedAt: base.Add(10 * time.Minute),
	}))

	t.Run("newest first", func(t *testing.T) {
		records, err := svc.ListStatusChanges(ctx, domain.StatusChangeFilter{})
		require.NoError(t, err)
		require.Len(t, records, 4)
		assert.Equal(t, "P1002", records[0].OrderID)
	})

	t.Run("filter by order", func(t *testing.T) {
		records, err := svc.ListStatusChanges(ctx, domain.StatusChangeFilter{OrderID: "P1001"})
		require.NoError(t, err)
		assert.Len(t, records, 3)
	})

	t.Run("filter by actor", func(t *testing.T) {
		records, err := svc.ListStatusChanges(ctx, domain.StatusChangeFilter{ActorID: "op-2"})
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("filter by status substring", func(t *testing.T) {
		records, err := svc.ListStatusChanges(ctx, domain.StatusChangeFilter{Status: "progress"})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "in_progress", records[0].NewStatus)

		// Substring spans both queued entries and nothing else.
		records, err = svc.ListStatusChanges(ctx, domain.StatusChangeFilter{Status: "queue"})
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("limit", func(t *testing.T) {
		records, err := svc.ListStatusChanges(ctx, domain.StatusChangeFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})
}

func TestListConsumption(t *testing.T) {
	svc, repo, db := newTestService(t)
	ctx := context.Background()

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)
	supplyA := node.Generate()
	supplyB := node.Generate()

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.InsertConsumption(ctx, db, &domain.ConsumptionEvent{
		OrderID:   "P1001",
		SupplyID:  supplyA,
		Quantity:  decimal.NewFromInt(5),
		ActorID:   "op-1",
		CreatedAt: base,
	}))
	require.NoError(t, repo.InsertConsumption(ctx, db, &domain.ConsumptionEvent{
		OrderID:   "P1001",
		SupplyID:  supplyB,
		Quantity:  decimal.NewFromInt(2),
		ActorID:   "op-1",
		CreatedAt: base.Add(time.Minute),
	}))
	require.NoError(t, repo.InsertConsumption(ctx, db, &domain.ConsumptionEvent{
		OrderID:   "P1002",
		SupplyID:  supplyA,
		Quantity:  decimal.NewFromInt(1),
		ActorID:   "op-2",
		CreatedAt: base.Add(2 * time.Minute),
	}))

	events, err := svc.ListConsumption(ctx, domain.ConsumptionFilter{OrderID: "P1001"})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, supplyB, events[0].SupplyID)

	events, err = svc.ListConsumption(ctx, domain.ConsumptionFilter{SupplyID: supplyA})
	require.NoError(t, err)
	assert.Len(t, events, 2)
}
