package customer

import (
	"github.com/defterhane/defterhane/internal/customer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.service",
	fx.Provide(
		service.NewService,
	),
)
