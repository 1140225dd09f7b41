package history

import (
	"github.com/buestan/buestanflow/internal/history/repository"
	"github.com/buestan/buestanflow/internal/history/service"
	"go.uber.org/fx"
)

var Module = fx.Module("history",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
