package main

import (
	"log"

	"github.com/buestan/buestanflow/internal/clock"
	"github.com/buestan/buestanflow/internal/config"
	"github.com/buestan/buestanflow/internal/migration"
	"github.com/buestan/buestanflow/internal/observability"
	"github.com/buestan/buestanflow/internal/server"
	"github.com/buestan/buestanflow/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		server.Module,
		migration.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		log.Fatalf("snowflake init: %v", err)
	}
	return node
}
