package order

import (
	"github.com/buestan/buestanflow/internal/order/repository"
	"github.com/buestan/buestanflow/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
