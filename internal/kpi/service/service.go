package service

import (
	"context"
	"time"

	"github.com/buestan/buestanflow/internal/clock"
	"github.com/buestan/buestanflow/internal/config"
	"github.com/buestan/buestanflow/internal/kpi/domain"
	"github.com/buestan/buestanflow/internal/kpi/repository"
	orderdomain "github.com/buestan/buestanflow/internal/order/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	Cfg   config.Config
	Repo  *repository.Repository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	clock    clock.Clock
	repo     *repository.Repository
	location *time.Location
}

func New(p Params) *Service {
	loc, err := time.LoadLocation(p.Cfg.ReportingTimezone)
	if err != nil {
		p.Log.Warn("invalid reporting timezone, falling back to UTC",
			zap.String("timezone", p.Cfg.ReportingTimezone),
			zap.Error(err),
		)
		loc = time.UTC
	}
	return &Service{
		db:       p.DB,
		log:      p.Log,
		clock:    p.Clock,
		repo:     p.Repo,
		location: loc,
	}
}

// Snapshot computes all dashboard aggregates inside one read transaction so
// the figures describe a single point in time.
func (s *Service) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	dayStart, dayEnd := s.reportingDay()

	var snap domain.Snapshot
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		if snap.Queued, err = s.repo.CountOrdersByStatus(ctx, tx, orderdomain.StatusQueued); err != nil {
			return err
		}
		if snap.InProgressUnits, err = s.repo.SumQuantityByStatus(ctx, tx, orderdomain.StatusInProgress); err != nil {
			return err
		}
		if snap.FinishedToday, err = s.repo.CountFinishedBetween(ctx, tx, dayStart, dayEnd); err != nil {
			return err
		}
		if snap.LowStock, err = s.repo.CountLowStock(ctx, tx); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// reportingDay returns the UTC bounds of "today" in the configured timezone.
func (s *Service) reportingDay() (time.Time, time.Time) {
	now := s.clock.Now().In(s.location)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)
	return start.UTC(), start.Add(24 * time.Hour).UTC()
}
