package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/buestan/buestanflow/internal/supply/domain"
	pkgdb "github.com/buestan/buestanflow/pkg/db"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type repo struct {
	genID *snowflake.Node
}

func Provide(genID *snowflake.Node) domain.Repository {
	return &repo{genID: genID}
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.SupplyItem, error) {
	var item domain.SupplyItem
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *repo) FindByNameAndUnit(ctx context.Context, db *gorm.DB, name, unit string) (*domain.SupplyItem, error) {
	var item domain.SupplyItem
	err := db.WithContext(ctx).
		Where("name = ? AND unit = ?", name, unit).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *repo) GetOrCreate(ctx context.Context, db *gorm.DB, name, unit string, defaultStock, minStock decimal.Decimal, at time.Time) (*domain.SupplyItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	existing, err := r.FindByNameAndUnit(ctx, db, name, unit)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	now := at.UTC()
	item := domain.SupplyItem{
		ID:        r.genID.Generate(),
		Name:      name,
		Unit:      unit,
		Stock:     defaultStock,
		MinStock:  minStock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = db.WithContext(ctx).Create(&item).Error
	if err != nil {
		// A concurrent provisioner won the insert race; use its row.
		if pkgdb.IsDuplicateKeyErr(err) {
			return r.FindByNameAndUnit(ctx, db, name, unit)
		}
		return nil, err
	}
	return &item, nil
}

func (r *repo) DecrementStock(ctx context.Context, db *gorm.DB, id snowflake.ID, quantity decimal.Decimal, at time.Time) (bool, error) {
	result := db.WithContext(ctx).Exec(
		`UPDATE supply_items
		 SET stock = stock - ?, updated_at = ?
		 WHERE id = ? AND stock >= ?`,
		quantity,
		at.UTC(),
		id,
		quantity,
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
