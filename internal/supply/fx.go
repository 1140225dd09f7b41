package supply

import (
	"github.com/buestan/buestanflow/internal/supply/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("supply",
	fx.Provide(repository.Provide),
)
