package kpi

import (
	"github.com/buestan/buestanflow/internal/kpi/repository"
	"github.com/buestan/buestanflow/internal/kpi/service"
	"go.uber.org/fx"
)

var Module = fx.Module("kpi",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
