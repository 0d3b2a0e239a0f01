package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/defterhane/defterhane/internal/config"
	customerdomain "github.com/defterhane/defterhane/internal/customer/domain"
	customerservice "github.com/defterhane/defterhane/internal/customer/service"
	invoicedomain "github.com/defterhane/defterhane/internal/invoice/domain"
	invoiceservice "github.com/defterhane/defterhane/internal/invoice/service"
	"github.com/defterhane/defterhane/internal/observability/metrics"
	paymentdomain "github.com/defterhane/defterhane/internal/payment/domain"
	paymentservice "github.com/defterhane/defterhane/internal/payment/service"
	"github.com/defterhane/defterhane/internal/rates"
	taxcalcservice "github.com/defterhane/defterhane/internal/taxcalc/service"
	taxreturndomain "github.com/defterhane/defterhane/internal/taxreturn/domain"
	taxreturnservice "github.com/defterhane/defterhane/internal/taxreturn/service"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestServer(t *testing.T) (*Server, snowflake.ID) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&customerdomain.Customer{},
		&invoicedomain.Invoice{},
		&invoicedomain.InvoiceLine{},
		&paymentdomain.Payment{},
		&taxreturndomain.TaxReturn{},
	))

	node, err := snowflake.NewNode(6)
	require.NoError(t, err)

	tables, err := rates.ForYear(2024)
	require.NoError(t, err)
	calc := taxcalcservice.NewService(taxcalcservice.ServiceParam{Tables: tables, Log: zap.NewNop()})

	srv := NewServer(ServerParams{
		Gin: NewEngine(zap.NewNop(), metrics.New()),
		Cfg: config.Config{},
		CalcSvc: calc,
		CustomerSvc: customerservice.NewService(customerservice.ServiceParam{
			DB: db, Log: zap.NewNop(), GenID: node,
		}),
		InvoiceSvc: invoiceservice.NewService(invoiceservice.ServiceParam{
			DB: db, Log: zap.NewNop(), GenID: node, Calc: calc,
		}),
		PaymentSvc: paymentservice.NewService(paymentservice.ServiceParam{
			DB: db, Log: zap.NewNop(), GenID: node,
		}),
		TaxReturnSvc: taxreturnservice.NewService(taxreturnservice.ServiceParam{
			DB: db, Log: zap.NewNop(), GenID: node, Tables: tables,
		}),
	})
	return srv, node.Generate()
}

func doJSON(t *testing.T, srv *Server, owner snowflake.ID, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequestWithContext(context.Background(), method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if owner != 0 {
		req.Header.Set("X-Owner-Id", owner.String())
	}

	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv, 0, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCalculationEndpointOpen(t *testing.T) {
	srv, _ := newTestServer(t)

	// calculations are stateless and need no owner header
	w := doJSON(t, srv, 0, http.MethodPost, "/v1/calculations/vat", map[string]any{
		"amount": "1000",
		"rate":   "0.20",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			VAT   string `json:"vat"`
			Total string `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "200", resp.Data.VAT)
	assert.Equal(t, "1200", resp.Data.Total)
}

func TestCalculationValidationError(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv, 0, http.MethodPost, "/v1/calculations/vat", map[string]any{
		"amount": "1000",
		"rate":   "0.18",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
}

func TestOwnerHeaderRequired(t *testing.T) {
	srv, owner := newTestServer(t)

	w := doJSON(t, srv, 0, http.MethodGet, "/v1/invoices", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, srv, owner, http.MethodGet, "/v1/invoices", nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestInvoiceLifecycleOverHTTP(t *testing.T) {
	srv, owner := newTestServer(t)

	w := doJSON(t, srv, owner, http.MethodPost, "/v1/invoices", map[string]any{
		"customer_id": snowflake.ID(12345).String(),
		"number":      "INV-2024-001",
		"lines": []map[string]any{
			{"description": "danışmanlık", "quantity": "1", "unit_price": "833.33", "vat_rate": "0.20"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data struct {
			ID     string `json:"id"`
			Status string `json:"status"`
			Total  string `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "DRAFT", created.Data.Status)
	assert.Equal(t, "1000", created.Data.Total)

	// DRAFT -> SENT
	w = doJSON(t, srv, owner, http.MethodPost,
		fmt.Sprintf("/v1/invoices/%s/status", created.Data.ID),
		map[string]any{"status": "sent"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// SENT -> DRAFT is not in the transition table
	w = doJSON(t, srv, owner, http.MethodPost,
		fmt.Sprintf("/v1/invoices/%s/status", created.Data.ID),
		map[string]any{"status": "DRAFT"})
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	// overpayment carries the remaining payable amount
	w = doJSON(t, srv, owner, http.MethodPost, "/v1/payments", map[string]any{
		"invoice_id": created.Data.ID,
		"amount":     "1500",
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())

	var overpayment struct {
		Error struct {
			Type             string `json:"type"`
			RemainingPayable string `json:"remaining_payable"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &overpayment))
	assert.Equal(t, "overpayment", overpayment.Error.Type)
	assert.Equal(t, "1000.00", overpayment.Error.RemainingPayable)
}

func TestNotFoundMapsTo404(t *testing.T) {
	srv, owner := newTestServer(t)

	w := doJSON(t, srv, owner, http.MethodGet, "/v1/invoices/"+snowflake.ID(99999).String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDuplicateTaxReturnMapsTo409(t *testing.T) {
	srv, owner := newTestServer(t)

	body := map[string]any{
		"type":           "vat",
		"period":         "2024-04",
		"taxable_amount": "1000",
	}
	w := doJSON(t, srv, owner, http.MethodPost, "/v1/tax-returns", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, srv, owner, http.MethodPost, "/v1/tax-returns", body)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
}
