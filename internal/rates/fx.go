package rates

import (
	"github.com/defterhane/defterhane/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("rates",
	fx.Provide(func(cfg config.Config) (*Tables, error) {
		tables, err := ForYear(cfg.TaxTableYear)
		if err != nil {
			return nil, err
		}
		if err := tables.Validate(); err != nil {
			return nil, err
		}
		return tables, nil
	}),
)
