package service

import (
	"context"

	catalogdomain "github.com/buestan/buestanflow/internal/catalog/domain"
	"github.com/buestan/buestanflow/internal/clock"
	"github.com/buestan/buestanflow/internal/observability/metrics"
	orderdomain "github.com/buestan/buestanflow/internal/order/domain"
	"github.com/buestan/buestanflow/internal/requirement/domain"
	supplydomain "github.com/buestan/buestanflow/internal/supply/domain"
	"github.com/shopspring/decimal"
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
	Repo    domain.Repository
	Orders  orderdomain.Repository
	Catalog catalogdomain.Repository
	Supply  supplydomain.Repository
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	clock   clock.Clock
	metrics *metrics.Metrics
	repo    domain.Repository
	orders  orderdomain.Repository
	catalog catalogdomain.Repository
	supply  supplydomain.Repository
}

func New(p Params) *Service {
	return &Service{
		db:      p.DB,
		log:     p.Log,
		clock:   p.Clock,
		metrics: p.Metrics,
		repo:    p.Repo,
		orders:  p.Orders,
		catalog: p.Catalog,
		supply:  p.Supply,
	}
}

// Resolve returns the order's supply requirements, materializing them from the
// product recipe on first call. Repeated calls return the frozen set with live
// stock and consumption figures.
func (s *Service) Resolve(ctx context.Context, orderID string) ([]domain.ResolvedRequirement, error) {
	var resolved []domain.ResolvedRequirement
	err := s.db.Transaction(func(tx *gorm.DB) error {
		order, err := s.orders.FindByID(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrOrderNotFound
		}

		count, err := s.repo.CountByOrderID(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if count == 0 {
			if err := s.materialize(ctx, tx, order); err != nil {
				return err
			}
			s.metrics.RecordRequirementsGenerated(ctx)
		}

		resolved, err = s.repo.ListResolved(ctx, tx, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resolved, nil
}

func (s *Service) materialize(ctx context.Context, tx *gorm.DB, order *orderdomain.Order) error {
	product, err := s.catalog.FindProductByID(ctx, tx, order.ProductID)
	if err != nil {
		return err
	}
	category := catalogdomain.CategoryZapato
	if product != nil {
		category = product.Category
	}

	now := s.clock.Now()
	quantity := decimal.NewFromInt(int64(order.Quantity))
	for _, line := range domain.RecipeFor(category) {
		item, err := s.supply.GetOrCreate(ctx, tx, line.Name, line.Unit, line.DefaultStock, line.MinStock, now)
		if err != nil {
			return err
		}
		req := domain.OrderRequirement{
			OrderID:   order.ID,
			SupplyID:  item.ID,
			Required:  line.PerUnit.Mul(quantity),
			CreatedAt: now.UTC(),
		}
		if err := s.repo.Insert(ctx, tx, &req); err != nil {
			return err
		}
	}

	s.log.Info("requirements materialized",
		zap.String("order_id", order.ID),
		zap.String("category", string(category)),
	)
	return nil
}
