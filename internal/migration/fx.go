package migration

import (
	"github.com/defterhane/defterhane/internal/config"
	customerdomain "github.com/defterhane/defterhane/internal/customer/domain"
	invoicedomain "github.com/defterhane/defterhane/internal/invoice/domain"
	paymentdomain "github.com/defterhane/defterhane/internal/payment/domain"
	taxreturndomain "github.com/defterhane/defterhane/internal/taxreturn/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType != "postgres" {
			// versioned migrations target postgres; other dialects
			// (sqlite in local development) derive the schema from
			// the models
			return conn.AutoMigrate(
				&customerdomain.Customer{},
				&invoicedomain.Invoice{},
				&invoicedomain.InvoiceLine{},
				&paymentdomain.Payment{},
				&taxreturndomain.TaxReturn{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
