package service

import (
	"context"
	"strings"
	"time"

	"github.com/buestan/buestanflow/internal/actorcontext"
	catalogdomain "github.com/buestan/buestanflow/internal/catalog/domain"
	"github.com/buestan/buestanflow/internal/clock"
	historydomain "github.com/buestan/buestanflow/internal/history/domain"
	"github.com/buestan/buestanflow/internal/observability/logger"
	"github.com/buestan/buestanflow/internal/observability/metrics"
	"github.com/buestan/buestanflow/internal/order/domain"
	pkgdb "github.com/buestan/buestanflow/pkg/db"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// deliveryLeadTime is the default promise made to clients at intake.
const deliveryLeadTime = 14 * 24 * time.Hour

// createRetries bounds retries when two transactions allocate the same order
// code.
const createRetries = 3

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Clock   clock.Clock
	Metrics *metrics.Metrics `optional:"true"`
	Repo    domain.Repository
	Catalog catalogdomain.Repository
	History historydomain.Repository
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	clock   clock.Clock
	metrics *metrics.Metrics
	repo    domain.Repository
	catalog catalogdomain.Repository
	history historydomain.Repository
}

func New(p Params) *Service {
	return &Service{
		db:      p.DB,
		log:     p.Log,
		clock:   p.Clock,
		metrics: p.Metrics,
		repo:    p.Repo,
		catalog: p.Catalog,
		history: p.History,
	}
}

// CreateRequest is the intake form for a new manufacturing order. Client and
// product are referenced by name and auto-provisioned when unknown.
type CreateRequest struct {
	ClientName  string `json:"client_name"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Priority    string `json:"priority"`
	Notes       string `json:"notes"`
}

// Create registers a new order in queued state and writes the opening audit
// entry in the same transaction.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*domain.Order, error) {
	if req.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if strings.TrimSpace(req.ClientName) == "" {
		return nil, catalogdomain.ErrInvalidClient
	}
	if strings.TrimSpace(req.ProductName) == "" {
		return nil, catalogdomain.ErrInvalidProduct
	}
	priority, err := domain.ParsePriority(req.Priority)
	if err != nil {
		return nil, err
	}

	actor := actorFrom(ctx)

	var created *domain.Order
	for attempt := 0; attempt < createRetries; attempt++ {
		err = s.db.Transaction(func(tx *gorm.DB) error {
			now := s.clock.Now()

			client, err := s.catalog.GetOrCreateClient(ctx, tx, req.ClientName, now)
			if err != nil {
				return err
			}
			product, err := s.catalog.GetOrCreateProduct(ctx, tx, req.ProductName, now)
			if err != nil {
				return err
			}

			id, err := s.repo.NextID(ctx, tx)
			if err != nil {
				return err
			}

			order := domain.Order{
				ID:                id,
				ClientID:          client.ID,
				ProductID:         product.ID,
				Quantity:          req.Quantity,
				Status:            domain.StatusQueued,
				Priority:          priority,
				TotalPrice:        product.BasePrice.Mul(decimal.NewFromInt(int64(req.Quantity))),
				Notes:             strings.TrimSpace(req.Notes),
				EstimatedDelivery: now.Add(deliveryLeadTime),
				CreatedAt:         now,
				UpdatedAt:         now,
			}
			if err := s.repo.Insert(ctx, tx, &order); err != nil {
				return err
			}

			rec := historydomain.StatusChangeRecord{
				OrderID:   order.ID,
				NewStatus: string(domain.StatusQueued),
				ActorID:   actor,
				Metadata: datatypes.JSONMap{
					"quantity": order.Quantity,
					"priority": string(order.Priority),
				},
				CreatedAt: now,
			}
			if err := s.history.InsertStatusChange(ctx, tx, &rec); err != nil {
				return err
			}

			created = &order
			return nil
		})
		if err == nil {
			break
		}
		if pkgdb.IsDuplicateKeyErr(err) {
			// Lost the code allocation race; retry with a fresh sequence read.
			continue
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	s.metrics.RecordOrderCreated(ctx, string(created.Priority))
	logger.WithContext(ctx, s.log).Info("order created",
		zap.String("order_id", created.ID),
		zap.Int("quantity", created.Quantity),
		zap.String("priority", string(created.Priority)),
	)
	return created, nil
}

// Transition advances the order one step along the pipeline. The audit record
// commits atomically with the status change; a concurrent winner leaves the
// loser with ErrInvalidTransition.
func (s *Service) Transition(ctx context.Context, orderID, toStatus, note string) (*domain.Order, error) {
	to, err := domain.ParseStatus(toStatus)
	if err != nil {
		return nil, err
	}

	actor := actorFrom(ctx)

	var updated *domain.Order
	err = s.db.Transaction(func(tx *gorm.DB) error {
		order, err := s.repo.FindByID(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !domain.CanTransition(order.Status, to) {
			return domain.ErrInvalidTransition
		}

		// One timestamp per transition: the order row and its audit record
		// must agree.
		now := s.clock.Now()
		ok, err := s.repo.UpdateStatus(ctx, tx, orderID, order.Status, to, now)
		if err != nil {
			return err
		}
		if !ok {
			// Row moved under us between the read and the update.
			return domain.ErrInvalidTransition
		}

		previous := string(order.Status)
		rec := historydomain.StatusChangeRecord{
			OrderID:        order.ID,
			PreviousStatus: &previous,
			NewStatus:      string(to),
			ActorID:        actor,
			Note:           strings.TrimSpace(note),
			CreatedAt:      now,
		}
		if err := s.history.InsertStatusChange(ctx, tx, &rec); err != nil {
			return err
		}

		order.Status = to
		order.UpdatedAt = now.UTC()
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordStatusTransition(ctx, string(to))
	logger.WithContext(ctx, s.log).Info("order status changed",
		zap.String("order_id", updated.ID),
		zap.String("to_status", string(to)),
	)
	return updated, nil
}

// Get returns the order joined with client and product names.
func (s *Service) Get(ctx context.Context, orderID string) (*domain.OrderView, error) {
	view, err := s.repo.FindViewByID(ctx, s.db, orderID)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, domain.ErrNotFound
	}
	return view, nil
}

func (s *Service) List(ctx context.Context, filter domain.ListFilter) ([]domain.OrderView, error) {
	return s.repo.List(ctx, s.db, filter)
}

func actorFrom(ctx context.Context) string {
	if actor, ok := actorcontext.ActorFromContext(ctx); ok {
		return actor
	}
	return "system"
}
