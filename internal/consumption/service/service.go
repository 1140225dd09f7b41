package service

import (
	"context"
	"errors"

	"github.com/buestan/buestanflow/internal/actorcontext"
	"github.com/buestan/buestanflow/internal/clock"
	"github.com/buestan/buestanflow/internal/consumption/domain"
	historydomain "github.com/buestan/buestanflow/internal/history/domain"
	"github.com/buestan/buestanflow/internal/observability/logger"
	"github.com/buestan/buestanflow/internal/observability/metrics"
	orderdomain "github.com/buestan/buestanflow/internal/order/domain"
	supplydomain "github.com/buestan/buestanflow/internal/supply/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Clock   clock.Clock
	Metrics *metrics.Metrics `optional:"true"`
	Orders  orderdomain.Repository
	Supply  supplydomain.Repository
	History historydomain.Repository
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	clock   clock.Clock
	metrics *metrics.Metrics
	orders  orderdomain.Repository
	supply  supplydomain.Repository
	history historydomain.Repository
}

func New(p Params) *Service {
	return &Service{
		db:      p.DB,
		log:     p.Log,
		clock:   p.Clock,
		metrics: p.Metrics,
		orders:  p.Orders,
		supply:  p.Supply,
		history: p.History,
	}
}

// Consume draws the requested supplies against the order in a single
// transaction. Either every line lands, with stock decremented and an event
// recorded per line, or none do.
func (s *Service) Consume(ctx context.Context, req domain.ConsumeRequest) ([]historydomain.ConsumptionEvent, error) {
	items := make([]domain.ConsumeItem, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity.IsNegative() {
			return nil, domain.ErrInvalidQuantity
		}
		if item.Quantity.IsZero() {
			continue
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, domain.ErrEmptyConsumptionSet
	}

	actor := "system"
	if a, ok := actorcontext.ActorFromContext(ctx); ok {
		actor = a
	}

	var events []historydomain.ConsumptionEvent
	err := s.db.Transaction(func(tx *gorm.DB) error {
		order, err := s.orders.FindByID(ctx, tx, req.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return orderdomain.ErrNotFound
		}
		if order.Status != orderdomain.StatusInProgress {
			return domain.ErrInvalidOrderState
		}

		now := s.clock.Now()
		for _, item := range items {
			supply, err := s.supply.FindByID(ctx, tx, item.SupplyID)
			if err != nil {
				return err
			}
			if supply == nil {
				return supplydomain.ErrNotFound
			}

			ok, err := s.supply.DecrementStock(ctx, tx, item.SupplyID, item.Quantity, now)
			if err != nil {
				return err
			}
			if !ok {
				return &domain.InsufficientStockError{
					SupplyID:  supply.ID,
					Name:      supply.Name,
					Available: supply.Stock,
					Requested: item.Quantity,
				}
			}

			ev := historydomain.ConsumptionEvent{
				OrderID:   order.ID,
				SupplyID:  item.SupplyID,
				Quantity:  item.Quantity,
				ActorID:   actor,
				Note:      item.Note,
				CreatedAt: now,
			}
			if err := s.history.InsertConsumption(ctx, tx, &ev); err != nil {
				return err
			}
			events = append(events, ev)
		}
		return nil
	})
	if err != nil {
		var insufficient *domain.InsufficientStockError
		if errors.As(err, &insufficient) {
			s.metrics.RecordInsufficientStock(ctx)
		}
		return nil, err
	}

	s.metrics.RecordConsumption(ctx, len(events))
	logger.WithContext(ctx, s.log).Info("supplies consumed",
		zap.String("order_id", req.OrderID),
		zap.Int("items", len(events)),
	)
	return events, nil
}
