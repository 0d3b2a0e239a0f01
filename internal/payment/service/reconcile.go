package service

import (
	invoicedomain "github.com/defterhane/defterhane/internal/invoice/domain"
	"github.com/defterhane/defterhane/internal/payment/domain"
	"github.com/shopspring/decimal"
)

// CompletedTotal sums the amounts of COMPLETED payments.
func CompletedTotal(payments []domain.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if p.Status == domain.PaymentStatusCompleted {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// DeriveInvoiceStatus computes the invoice status implied by the sum of
// completed payments. Fully covered invoices become PAID, partially
// covered ones ACCEPTED. With nothing paid the current status is kept,
// so a failed partial payment never regresses a SENT or ACCEPTED
// invoice.
func DeriveInvoiceStatus(current invoicedomain.InvoiceStatus, invoiceTotal, totalPaid decimal.Decimal) invoicedomain.InvoiceStatus {
	switch {
	case totalPaid.Sign() > 0 && totalPaid.GreaterThanOrEqual(invoiceTotal):
		return invoicedomain.InvoiceStatusPaid
	case totalPaid.Sign() > 0:
		return invoicedomain.InvoiceStatusAccepted
	default:
		return current
	}
}
