// Package server wires the HTTP surface on top of the domain services.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/defterhane/defterhane/internal/config"
	"github.com/defterhane/defterhane/internal/customer"
	customerdomain "github.com/defterhane/defterhane/internal/customer/domain"
	"github.com/defterhane/defterhane/internal/invoice"
	invoicedomain "github.com/defterhane/defterhane/internal/invoice/domain"
	"github.com/defterhane/defterhane/internal/migration"
	"github.com/defterhane/defterhane/internal/observability"
	obslogger "github.com/defterhane/defterhane/internal/observability/logger"
	obsmetrics "github.com/defterhane/defterhane/internal/observability/metrics"
	"github.com/defterhane/defterhane/internal/payment"
	paymentdomain "github.com/defterhane/defterhane/internal/payment/domain"
	"github.com/defterhane/defterhane/internal/rates"
	"github.com/defterhane/defterhane/internal/taxcalc"
	taxcalcdomain "github.com/defterhane/defterhane/internal/taxcalc/domain"
	"github.com/defterhane/defterhane/internal/taxreturn"
	taxreturndomain "github.com/defterhane/defterhane/internal/taxreturn/domain"
	"github.com/defterhane/defterhane/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	config.Module,
	observability.Module,
	db.Module,
	migration.Module,
	rates.Module,
	taxcalc.Module,
	customer.Module,
	invoice.Module,
	payment.Module,
	taxreturn.Module,
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, metrics *obsmetrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})))

	return r
}

func registerGin(log *zap.Logger, metrics *obsmetrics.Metrics) *gin.Engine {
	return NewEngine(log, metrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	calcSvc      taxcalcdomain.Service
	customerSvc  customerdomain.Service
	invoiceSvc   invoicedomain.Service
	paymentSvc   paymentdomain.Service
	taxReturnSvc taxreturndomain.Service
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	CalcSvc      taxcalcdomain.Service
	CustomerSvc  customerdomain.Service
	InvoiceSvc   invoicedomain.Service
	PaymentSvc   paymentdomain.Service
	TaxReturnSvc taxreturndomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		calcSvc:      p.CalcSvc,
		customerSvc:  p.CustomerSvc,
		invoiceSvc:   p.InvoiceSvc,
		paymentSvc:   p.PaymentSvc,
		taxReturnSvc: p.TaxReturnSvc,
	}

	svc.registerCalculationRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerCalculationRoutes() {
	calc := s.engine.Group("/v1/calculations")

	calc.POST("/vat", s.CalculateAddVAT)
	calc.POST("/vat-extract", s.CalculateExtractVAT)
	calc.POST("/income-tax", s.CalculateIncomeTax)
	calc.POST("/net-salary", s.CalculateNetSalary)
	calc.POST("/employer-cost", s.CalculateEmployerCost)
	calc.POST("/withholding", s.CalculateWithholding)
	calc.POST("/corporate-tax", s.CalculateCorporateTax)
	calc.POST("/stamp-duty", s.CalculateStampDuty)
	calc.POST("/vehicle-tax", s.CalculateVehicleTax)
	calc.POST("/late-penalty", s.CalculateLatePenalty)
	calc.POST("/invoice-totals", s.CalculateInvoiceTotals)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/v1", OwnerRequired())

	api.POST("/customers", s.CreateCustomer)
	api.GET("/customers", s.ListCustomers)
	api.GET("/customers/:id", s.GetCustomerByID)
	api.PATCH("/customers/:id", s.UpdateCustomer)
	api.DELETE("/customers/:id", s.DeleteCustomer)

	api.POST("/invoices", s.CreateInvoice)
	api.GET("/invoices", s.ListInvoices)
	api.GET("/invoices/:id", s.GetInvoiceByID)
	api.PUT("/invoices/:id/lines", s.ReplaceInvoiceLines)
	api.POST("/invoices/:id/status", s.TransitionInvoice)
	api.DELETE("/invoices/:id", s.DeleteInvoice)

	api.POST("/payments", s.CreatePayment)
	api.GET("/payments", s.ListPayments)
	api.GET("/payments/:id", s.GetPaymentByID)
	api.PATCH("/payments/:id", s.UpdatePayment)
	api.POST("/payments/:id/status", s.TransitionPayment)
	api.DELETE("/payments/:id", s.DeletePayment)

	api.POST("/tax-returns", s.CreateTaxReturn)
	api.GET("/tax-returns", s.ListTaxReturns)
	api.GET("/tax-returns/:id", s.GetTaxReturnByID)
	api.POST("/tax-returns/:id/status", s.TransitionTaxReturn)
	api.DELETE("/tax-returns/:id", s.DeleteTaxReturn)
}
