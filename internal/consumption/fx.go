package consumption

import (
	"github.com/buestan/buestanflow/internal/consumption/service"
	"go.uber.org/fx"
)

var Module = fx.Module("consumption",
	fx.Provide(service.New),
)
