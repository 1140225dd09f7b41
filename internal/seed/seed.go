// Package seed provisions the baseline supply catalog so a fresh database can
// resolve requirements without waiting for the first order to lazily create
// every supply.
package seed

import (
	"context"
	"time"

	"github.com/buestan/buestanflow/internal/clock"
	requirementdomain "github.com/buestan/buestanflow/internal/requirement/domain"
	supplydomain "github.com/buestan/buestanflow/internal/supply/domain"
	"gorm.io/gorm"
)

// EnsureBaseSupplies inserts every supply referenced by the recipes, skipping
// rows that already exist. Safe to run on every boot.
func EnsureBaseSupplies(db *gorm.DB, repo supplydomain.Repository, clk clock.Clock) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	lines := make([]requirementdomain.RecipeLine, 0, 8)
	lines = append(lines, requirementdomain.BaseRecipe...)
	for _, extra := range requirementdomain.CategoryRecipe {
		lines = append(lines, extra...)
	}

	now := clk.Now()
	for _, line := range lines {
		_, err := repo.GetOrCreate(ctx, db, line.Name, line.Unit, line.DefaultStock, line.MinStock, now)
		if err != nil {
			return err
		}
	}
	return nil
}
