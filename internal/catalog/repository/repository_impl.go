package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/buestan/buestanflow/internal/catalog/domain"
	pkgdb "github.com/buestan/buestanflow/pkg/db"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// defaultBasePrice is applied to auto-provisioned products until someone
// edits the catalog entry.
var defaultBasePrice = decimal.NewFromInt(100000)

type repo struct {
	genID *snowflake.Node
}

func Provide(genID *snowflake.Node) domain.Repository {
	return &repo{genID: genID}
}

func (r *repo) FindProductByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Product, error) {
	var product domain.Product
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *repo) GetOrCreateProduct(ctx context.Context, db *gorm.DB, name string, at time.Time) (*domain.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidProduct
	}

	existing, err := r.findProductByName(ctx, db, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	now := at.UTC()
	product := domain.Product{
		ID:        r.genID.Generate(),
		Name:      name,
		Category:  domain.CategoryFromName(name),
		BasePrice: defaultBasePrice,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = db.WithContext(ctx).Create(&product).Error
	if err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return r.findProductByName(ctx, db, name)
		}
		return nil, err
	}
	return &product, nil
}

func (r *repo) GetOrCreateClient(ctx context.Context, db *gorm.DB, name string, at time.Time) (*domain.Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidClient
	}

	existing, err := r.findClientByName(ctx, db, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	now := at.UTC()
	client := domain.Client{
		ID:        r.genID.Generate(),
		Name:      name,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = db.WithContext(ctx).Create(&client).Error
	if err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return r.findClientByName(ctx, db, name)
		}
		return nil, err
	}
	return &client, nil
}

func (r *repo) findProductByName(ctx context.Context, db *gorm.DB, name string) (*domain.Product, error) {
	var product domain.Product
	err := db.WithContext(ctx).
		Where("name = ?", name).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *repo) findClientByName(ctx context.Context, db *gorm.DB, name string) (*domain.Client, error) {
	var client domain.Client
	err := db.WithContext(ctx).
		Where("name = ?", name).
		First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}
