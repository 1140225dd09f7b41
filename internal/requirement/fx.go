package requirement

import (
	"github.com/buestan/buestanflow/internal/requirement/repository"
	"github.com/buestan/buestanflow/internal/requirement/service"
	"go.uber.org/fx"
)

var Module = fx.Module("requirement",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
