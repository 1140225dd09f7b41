package migration

import (
	"github.com/buestan/buestanflow/internal/clock"
	"github.com/buestan/buestanflow/internal/config"
	"github.com/buestan/buestanflow/internal/seed"
	supplydomain "github.com/buestan/buestanflow/internal/supply/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, supplies supplydomain.Repository, clk clock.Clock) error {
		// Schema migrations are written for postgres; other dialects are
		// expected to be provisioned externally.
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		}

		return seed.EnsureBaseSupplies(conn, supplies, clk)
	}),
)
