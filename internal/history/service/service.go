package service

import (
	"context"

	"github.com/buestan/buestanflow/internal/history/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

// Service exposes read access to the audit trail. Writes go through the
// repository from inside the mutating services' transactions.
type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) *Service {
	return &Service{
		db:   p.DB,
		log:  p.Log,
		repo: p.Repo,
	}
}

func (s *Service) ListStatusChanges(ctx context.Context, filter domain.StatusChangeFilter) ([]domain.StatusChangeRecord, error) {
	return s.repo.ListStatusChanges(ctx, s.db, filter)
}

func (s *Service) ListConsumption(ctx context.Context, filter domain.ConsumptionFilter) ([]domain.ConsumptionEvent, error) {
	return s.repo.ListConsumption(ctx, s.db, filter)
}
