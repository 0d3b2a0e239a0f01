package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/defterhane/defterhane/internal/invoice/domain"
	invoiceservice "github.com/defterhane/defterhane/internal/invoice/service"
	"github.com/defterhane/defterhane/internal/lifecycle"
	"github.com/defterhane/defterhane/internal/ownerctx"
	"github.com/defterhane/defterhane/internal/rates"
	taxcalcdomain "github.com/defterhane/defterhane/internal/taxcalc/domain"
	taxcalcservice "github.com/defterhane/defterhane/internal/taxcalc/service"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testEnv struct {
	db    *gorm.DB
	node  *snowflake.Node
	svc   domain.Service
	owner snowflake.ID
	ctx   context.Context
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Invoice{}, &domain.InvoiceLine{}))

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)

	tables, err := rates.ForYear(2024)
	require.NoError(t, err)
	calc := taxcalcservice.NewService(taxcalcservice.ServiceParam{
		Tables: tables,
		Log:    zap.NewNop(),
	})

	svc := invoiceservice.NewService(invoiceservice.ServiceParam{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Calc:  calc,
	})

	owner := node.Generate()
	return &testEnv{
		db:    db,
		node:  node,
		svc:   svc,
		owner: owner,
		ctx:   ownerctx.WithOwnerID(context.Background(), owner),
	}
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return v
}

func (e *testEnv) createInvoice(t *testing.T, lines ...taxcalcdomain.LineItem) domain.Invoice {
	t.Helper()
	invoice, err := e.svc.Create(e.ctx, domain.CreateInvoiceRequest{
		CustomerID: e.node.Generate().String(),
		Number:     fmt.Sprintf("INV-%d", e.node.Generate()),
		Lines:      lines,
	})
	require.NoError(t, err)
	return invoice
}

func TestCreateInvoiceDerivesTotals(t *testing.T) {
	env := newTestEnv(t)

	invoice := env.createInvoice(t, taxcalcdomain.LineItem{
		Description: "service fee",
		Quantity:    dec(t, "2"),
		UnitPrice:   dec(t, "500"),
		VATRate:     dec(t, "0.20"),
	})

	assert.Equal(t, domain.InvoiceStatusDraft, invoice.Status)
	assert.Equal(t, "TRY", invoice.Currency)
	assert.True(t, invoice.Subtotal.Equal(dec(t, "1000.00")))
	assert.True(t, invoice.VATTotal.Equal(dec(t, "200.00")))
	assert.True(t, invoice.Total.Equal(dec(t, "1200.00")))
	require.Len(t, invoice.Lines, 1)
	assert.True(t, invoice.Lines[0].Total.Equal(dec(t, "1200.00")))
}

func TestCreateInvoiceValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Create(env.ctx, domain.CreateInvoiceRequest{
		CustomerID: env.node.Generate().String(),
		Number:     "  ",
	})
	require.ErrorIs(t, err, domain.ErrInvalidNumber)

	_, err = env.svc.Create(env.ctx, domain.CreateInvoiceRequest{
		CustomerID: "not-a-snowflake",
		Number:     "INV-1",
	})
	require.ErrorIs(t, err, domain.ErrInvalidCustomer)

	_, err = env.svc.Create(context.Background(), domain.CreateInvoiceRequest{
		CustomerID: env.node.Generate().String(),
		Number:     "INV-1",
	})
	require.ErrorIs(t, err, domain.ErrInvalidOwner)

	_, err = env.svc.Create(env.ctx, domain.CreateInvoiceRequest{
		CustomerID: env.node.Generate().String(),
		Number:     "INV-1",
		Lines: []taxcalcdomain.LineItem{
			{Quantity: dec(t, "1"), UnitPrice: dec(t, "10"), VATRate: dec(t, "0.19")},
		},
	})
	require.ErrorIs(t, err, taxcalcdomain.ErrInvalidVATRate)
}

// Every (from, to) pair succeeds exactly when the transition table
// allows it.
func TestTransitionGrid(t *testing.T) {
	env := newTestEnv(t)

	statuses := []domain.InvoiceStatus{
		domain.InvoiceStatusDraft,
		domain.InvoiceStatusSent,
		domain.InvoiceStatusAccepted,
		domain.InvoiceStatusRejected,
		domain.InvoiceStatusPaid,
		domain.InvoiceStatusCancelled,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			invoice := env.createInvoice(t)
			require.NoError(t, env.db.Model(&domain.Invoice{}).
				Where("id = ?", invoice.ID).
				Update("status", from).Error)

			updated, err := env.svc.Transition(env.ctx, domain.TransitionRequest{
				InvoiceID: invoice.ID.String(),
				Status:    to,
			})
			if domain.Transitions.Can(from, to) {
				require.NoError(t, err, "%s -> %s should be allowed", from, to)
				assert.Equal(t, to, updated.Status)
			} else {
				var invalid *lifecycle.InvalidTransitionError
				require.True(t, errors.As(err, &invalid), "%s -> %s should be rejected, got %v", from, to, err)
			}
		}
	}
}

func TestPaidIsTerminal(t *testing.T) {
	env := newTestEnv(t)

	assert.True(t, domain.Transitions.Terminal(domain.InvoiceStatusPaid))
	assert.True(t, domain.Transitions.Terminal(domain.InvoiceStatusCancelled))

	invoice := env.createInvoice(t)
	require.NoError(t, env.db.Model(&domain.Invoice{}).
		Where("id = ?", invoice.ID).
		Update("status", domain.InvoiceStatusPaid).Error)

	err := env.svc.Delete(env.ctx, invoice.ID.String())
	var immutable *lifecycle.ImmutableStateError
	require.True(t, errors.As(err, &immutable))
	assert.Equal(t, "delete", immutable.Action)
}

func TestReplaceLinesOnDraft(t *testing.T) {
	env := newTestEnv(t)

	invoice := env.createInvoice(t, taxcalcdomain.LineItem{
		Quantity: dec(t, "1"), UnitPrice: dec(t, "100"), VATRate: dec(t, "0.20"),
	})

	updated, err := env.svc.ReplaceLines(env.ctx, domain.ReplaceLinesRequest{
		InvoiceID: invoice.ID.String(),
		Lines: []taxcalcdomain.LineItem{
			{Quantity: dec(t, "3"), UnitPrice: dec(t, "200"), VATRate: dec(t, "0.10")},
			{Quantity: dec(t, "1"), UnitPrice: dec(t, "50"), VATRate: dec(t, "0.01")},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.Lines, 2)
	assert.True(t, updated.Subtotal.Equal(dec(t, "650.00")))
	assert.True(t, updated.VATTotal.Equal(dec(t, "60.50")))
	assert.True(t, updated.Total.Equal(dec(t, "710.50")))
}

func TestReplaceLinesRejectedAfterDraft(t *testing.T) {
	env := newTestEnv(t)

	invoice := env.createInvoice(t)
	_, err := env.svc.Transition(env.ctx, domain.TransitionRequest{
		InvoiceID: invoice.ID.String(),
		Status:    domain.InvoiceStatusSent,
	})
	require.NoError(t, err)

	_, err = env.svc.ReplaceLines(env.ctx, domain.ReplaceLinesRequest{
		InvoiceID: invoice.ID.String(),
		Lines:     nil,
	})
	var immutable *lifecycle.ImmutableStateError
	require.True(t, errors.As(err, &immutable))
	assert.Equal(t, string(domain.InvoiceStatusSent), immutable.Status)
}

func TestDeleteDraftInvoice(t *testing.T) {
	env := newTestEnv(t)

	invoice := env.createInvoice(t)
	require.NoError(t, env.svc.Delete(env.ctx, invoice.ID.String()))

	_, err := env.svc.GetByID(env.ctx, domain.GetInvoiceRequest{ID: invoice.ID.String()})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListInvoicesScopedToOwner(t *testing.T) {
	env := newTestEnv(t)

	env.createInvoice(t)
	env.createInvoice(t)

	otherCtx := ownerctx.WithOwnerID(context.Background(), env.node.Generate())

	resp, err := env.svc.List(env.ctx, domain.ListInvoiceRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Invoices, 2)

	otherResp, err := env.svc.List(otherCtx, domain.ListInvoiceRequest{})
	require.NoError(t, err)
	assert.Empty(t, otherResp.Invoices)
}

func TestListInvoicesPagination(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 5; i++ {
		env.createInvoice(t)
	}

	first, err := env.svc.List(env.ctx, domain.ListInvoiceRequest{PageSize: 2})
	require.NoError(t, err)
	require.Len(t, first.Invoices, 2)
	require.True(t, first.HasMore)
	require.NotEmpty(t, first.NextPageToken)

	second, err := env.svc.List(env.ctx, domain.ListInvoiceRequest{
		PageSize:  2,
		PageToken: first.NextPageToken,
	})
	require.NoError(t, err)
	require.Len(t, second.Invoices, 2)

	// cursor pages never overlap
	seen := map[snowflake.ID]bool{}
	for _, inv := range append(first.Invoices, second.Invoices...) {
		require.False(t, seen[inv.ID])
		seen[inv.ID] = true
	}
}
