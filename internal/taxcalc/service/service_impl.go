// Package service implements the stateless tax calculation engine over
// the injected rate tables.
package service

import (
	"github.com/defterhane/defterhane/internal/observability/metrics"
	"github.com/defterhane/defterhane/internal/rates"
	"github.com/defterhane/defterhane/internal/taxcalc/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Service struct {
	tables  *rates.Tables
	log     *zap.Logger
	metrics *metrics.Metrics
}

type ServiceParam struct {
	fx.In

	Tables  *rates.Tables
	Log     *zap.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		tables:  p.Tables,
		log:     p.Log.Named("taxcalc.service"),
		metrics: p.Metrics,
	}
}
