package taxcalc

import (
	"github.com/defterhane/defterhane/internal/taxcalc/service"
	"go.uber.org/fx"
)

var Module = fx.Module("taxcalc.service",
	fx.Provide(service.NewService),
)
