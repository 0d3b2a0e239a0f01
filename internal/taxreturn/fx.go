package taxreturn

import (
	"github.com/defterhane/defterhane/internal/taxreturn/service"
	"go.uber.org/fx"
)

var Module = fx.Module("taxreturn.service",
	fx.Provide(
		service.NewService,
	),
)
