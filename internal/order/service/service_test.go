package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/buestan/buestanflow/internal/actorcontext"
	catalogdomain "github.com/buestan/buestanflow/internal/catalog/domain"
	catalogrepository "github.com/buestan/buestanflow/internal/catalog/repository"
	"github.com/buestan/buestanflow/internal/clock"
	historydomain "github.com/buestan/buestanflow/internal/history/domain"
	historyrepository "github.com/buestan/buestanflow/internal/history/repository"
	"github.com/buestan/buestanflow/internal/order/domain"
	orderrepository "github.com/buestan/buestanflow/internal/order/repository"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, *gorm.DB, *clock.FakeClock) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&catalogdomain.Client{},
		&catalogdomain.Product{},
		&domain.Order{},
		&historydomain.StatusChangeRecord{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))

	svc := New(Params{
		DB:      db,
		Log:     zap.NewNop(),
		Clock:   fake,
		Repo:    orderrepository.Provide(),
		Catalog: catalogrepository.Provide(node),
		History: historyrepository.Provide(node),
	})
	return svc, db, fake
}

func actorCtx(actor string) context.Context {
	return actorcontext.WithActor(context.Background(), actor)
}

func TestCreateOrder(t *testing.T) {
	svc, db, fake := newTestService(t)
	ctx := actorCtx("op-7")

	order, err := svc.Create(ctx, CreateRequest{
		ClientName:  "Calzados Andinos",
		ProductName: "Zapato Clásico",
		Quantity:    10,
		Priority:    "high",
		Notes:       "rush job",
	})
	require.NoError(t, err)

	assert.Equal(t, "P1001", order.ID)
	assert.Equal(t, domain.StatusQueued, order.Status)
	assert.Equal(t, domain.PriorityHigh, order.Priority)
	assert.Equal(t, 10, order.Quantity)
	assert.Equal(t, "1000000", order.TotalPrice.String())
	assert.Equal(t, fake.Now().Add(14*24*time.Hour), order.EstimatedDelivery)

	// Client and product were auto-provisioned.
	var client catalogdomain.Client
	require.NoError(t, db.Where("name = ?", "Calzados Andinos").First(&client).Error)
	var product catalogdomain.Product
	require.NoError(t, db.Where("name = ?", "Zapato Clásico").First(&product).Error)
	assert.Equal(t, catalogdomain.CategoryZapato, product.Category)

	// Creation writes the opening audit entry in the same transaction.
	var records []historydomain.StatusChangeRecord
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&records).Error)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].PreviousStatus)
	assert.Equal(t, string(domain.StatusQueued), records[0].NewStatus)
	assert.Equal(t, "op-7", records[0].ActorID)
}

func TestCreateOrder_SequentialIDs(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := actorCtx("op-1")

	first, err := svc.Create(ctx, CreateRequest{ClientName: "A", ProductName: "Botín Alto", Quantity: 1})
	require.NoError(t, err)
	second, err := svc.Create(ctx, CreateRequest{ClientName: "B", ProductName: "Sandalia Verano", Quantity: 2})
	require.NoError(t, err)

	assert.Equal(t, "P1001", first.ID)
	assert.Equal(t, "P1002", second.ID)
}

func TestCreateOrder_Validation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := actorCtx("op-1")

	t.Run("zero quantity", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{ClientName: "A", ProductName: "B", Quantity: 0})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	})

	t.Run("negative quantity", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{ClientName: "A", ProductName: "B", Quantity: -3})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	})

	t.Run("missing client", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{ClientName: "  ", ProductName: "B", Quantity: 1})
		assert.ErrorIs(t, err, catalogdomain.ErrInvalidClient)
	})

	t.Run("unknown priority", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{ClientName: "A", ProductName: "B", Quantity: 1, Priority: "urgent"})
		assert.ErrorIs(t, err, domain.ErrInvalidPriority)
	})

	t.Run("default priority", func(t *testing.T) {
		order, err := svc.Create(ctx, CreateRequest{ClientName: "A", ProductName: "B", Quantity: 1})
		require.NoError(t, err)
		assert.Equal(t, domain.PriorityMedium, order.Priority)
	})
}

func TestTransition(t *testing.T) {
	svc, db, fake := newTestService(t)
	ctx := actorCtx("op-2")

	order, err := svc.Create(ctx, CreateRequest{ClientName: "A", ProductName: "Zapato Urbano", Quantity: 5})
	require.NoError(t, err)

	fake.Advance(time.Hour)
	updated, err := svc.Transition(ctx, order.ID, "in_progress", "cutting started")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, updated.Status)

	fake.Advance(time.Hour)
	updated, err = svc.Transition(ctx, order.ID, "finished", "")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFinished, updated.Status)

	var records []historydomain.StatusChangeRecord
	require.NoError(t, db.Where("order_id = ?", order.ID).Order("id ASC").Find(&records).Error)
	require.Len(t, records, 3)
	require.NotNil(t, records[1].PreviousStatus)
	assert.Equal(t, string(domain.StatusQueued), *records[1].PreviousStatus)
	assert.Equal(t, string(domain.StatusInProgress), records[1].NewStatus)
	assert.Equal(t, "cutting started", records[1].Note)

	// The order row and the audit record of one transition share the same
	// clock reading.
	var row domain.Order
	require.NoError(t, db.Where("id = ?", order.ID).First(&row).Error)
	assert.True(t, row.UpdatedAt.Equal(fake.Now()))
	assert.True(t, records[2].CreatedAt.Equal(row.UpdatedAt))
}

func TestTransition_ConcurrentOnlyOneWins(t *testing.T) {
	svc, db, _ := newTestService(t)
	ctx := actorCtx("op-8")

	// A single pooled connection serializes the two transactions so the
	// loser observes the winner's commit.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	order, err := svc.Create(ctx, CreateRequest{ClientName: "A", ProductName: "Zapato", Quantity: 2})
	require.NoError(t, err)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Transition(ctx, order.ID, "in_progress", "")
		}(i)
	}
	wg.Wait()

	var won, lost int
	for _, err := range errs {
		if err == nil {
			won++
			continue
		}
		lost++
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	}
	assert.Equal(t, 1, won)
	assert.Equal(t, 1, lost)

	var row domain.Order
	require.NoError(t, db.Where("id = ?", order.ID).First(&row).Error)
	assert.Equal(t, domain.StatusInProgress, row.Status)

	// Exactly one audit record for the contested transition.
	var count int64
	require.NoError(t, db.Model(&historydomain.StatusChangeRecord{}).
		Where("order_id = ? AND new_status = ?", order.ID, "in_progress").
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestTransition_Invalid(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := actorCtx("op-3")

	order, err := svc.Create(ctx, CreateRequest{ClientName: "A", ProductName: "Zapato", Quantity: 1})
	require.NoError(t, err)

	t.Run("skip a step", func(t *testing.T) {
		_, err := svc.Transition(ctx, order.ID, "finished", "")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("self transition", func(t *testing.T) {
		_, err := svc.Transition(ctx, order.ID, "queued", "")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("backwards", func(t *testing.T) {
		_, err := svc.Transition(ctx, order.ID, "in_progress", "")
		require.NoError(t, err)
		_, err = svc.Transition(ctx, order.ID, "queued", "")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("terminal state", func(t *testing.T) {
		_, err := svc.Transition(ctx, order.ID, "finished", "")
		require.NoError(t, err)
		_, err = svc.Transition(ctx, order.ID, "in_progress", "")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("unknown order", func(t *testing.T) {
		_, err := svc.Transition(ctx, "P9999", "in_progress", "")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := svc.Transition(ctx, order.ID, "shipped", "")
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})
}

func TestGetAndList(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := actorCtx("op-4")

	created, err := svc.Create(ctx, CreateRequest{ClientName: "Calzados Sur", ProductName: "Botín Trekking", Quantity: 4})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateRequest{ClientName: "Calzados Sur", ProductName: "Sandalia Playa", Quantity: 2})
	require.NoError(t, err)

	view, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Calzados Sur", view.ClientName)
	assert.Equal(t, "Botín Trekking", view.ProductName)
	assert.Equal(t, string(catalogdomain.CategoryBotin), view.Category)

	_, err = svc.Get(ctx, "P4242")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	all, err := svc.List(ctx, domain.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	queued, err := svc.List(ctx, domain.ListFilter{Status: domain.StatusQueued})
	require.NoError(t, err)
	assert.Len(t, queued, 2)

	_, err = svc.Transition(ctx, created.ID, "in_progress", "")
	require.NoError(t, err)

	queued, err = svc.List(ctx, domain.ListFilter{Status: domain.StatusQueued})
	require.NoError(t, err)
	assert.Len(t, queued, 1)
}
