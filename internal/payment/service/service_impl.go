package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	invoicedomain "github.com/defterhane/defterhane/internal/invoice/domain"
	"github.com/defterhane/defterhane/internal/lifecycle"
	"github.com/defterhane/defterhane/internal/observability/metrics"
	"github.com/defterhane/defterhane/internal/ownerctx"
	"github.com/defterhane/defterhane/internal/payment/domain"
	"github.com/defterhane/defterhane/pkg/db/pagination"
	"github.com/defterhane/defterhane/pkg/money"
	"github.com/defterhane/defterhane/pkg/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	metrics *metrics.Metrics

	repo repository.Repository[domain.Payment]
}

type ServiceParam struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Metrics *metrics.Metrics `optional:"true"`
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("payment.service"),
		genID:   p.GenID,
		metrics: p.Metrics,
		repo:    repository.ProvideStore[domain.Payment](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreatePaymentRequest) (domain.Payment, error) {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.Payment{}, domain.ErrInvalidOwner
	}
	if req.Amount.Sign() <= 0 {
		return domain.Payment{}, domain.ErrInvalidAmount
	}
	amount := money.Round2(req.Amount)

	var invoiceID *snowflake.ID
	if strings.TrimSpace(req.InvoiceID) != "" {
		id, err := parseID(req.InvoiceID)
		if err != nil {
			return domain.Payment{}, domain.ErrInvalidInvoice
		}

		invoice, err := s.loadInvoice(ctx, s.db, ownerID, id)
		if err != nil {
			return domain.Payment{}, err
		}
		completed, err := s.completedTotal(ctx, s.db, id, 0)
		if err != nil {
			return domain.Payment{}, err
		}
		if completed.Add(amount).GreaterThan(invoice.Total) {
			return domain.Payment{}, &domain.OverpaymentError{
				RemainingPayable: money.Round2(invoice.Total.Sub(completed)),
			}
		}
		invoiceID = &id
	}

	now := time.Now().UTC()
	payment := domain.Payment{
		ID:        s.genID.Generate(),
		OwnerID:   ownerID,
		InvoiceID: invoiceID,
		Amount:    amount,
		Method:    strings.TrimSpace(req.Method),
		Status:    domain.PaymentStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, &payment); err != nil {
		return domain.Payment{}, err
	}

	s.log.Info("payment created",
		zap.String("payment_id", payment.ID.String()),
		zap.String("amount", payment.Amount.String()),
	)
	return payment, nil
}

// Update edits amount or method. Only PENDING payments are mutable.
func (s *Service) Update(ctx context.Context, req domain.UpdatePaymentRequest) (domain.Payment, error) {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.Payment{}, domain.ErrInvalidOwner
	}
	id, err := parseID(req.PaymentID)
	if err != nil {
		return domain.Payment{}, domain.ErrInvalidID
	}

	payment, err := s.load(ctx, ownerID, id)
	if err != nil {
		return domain.Payment{}, err
	}
	if payment.Status != domain.PaymentStatusPending {
		return domain.Payment{}, &lifecycle.ImmutableStateError{
			Entity: "payment",
			Status: string(payment.Status),
			Action: "update",
		}
	}

	if req.Amount != nil {
		if req.Amount.Sign() <= 0 {
			return domain.Payment{}, domain.ErrInvalidAmount
		}
		amount := money.Round2(*req.Amount)
		if payment.InvoiceID != nil {
			invoice, err := s.loadInvoice(ctx, s.db, ownerID, *payment.InvoiceID)
			if err != nil {
				return domain.Payment{}, err
			}
			completed, err := s.completedTotal(ctx, s.db, *payment.InvoiceID, payment.ID)
			if err != nil {
				return domain.Payment{}, err
			}
			if completed.Add(amount).GreaterThan(invoice.Total) {
				return domain.Payment{}, &domain.OverpaymentError{
					RemainingPayable: money.Round2(invoice.Total.Sub(completed)),
				}
			}
		}
		payment.Amount = amount
	}
	if req.Method != nil {
		payment.Method = strings.TrimSpace(*req.Method)
	}
	payment.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, payment); err != nil {
		return domain.Payment{}, err
	}
	return *payment, nil
}

// Transition applies a payment status change. Entering or leaving
// COMPLETED re-derives the owning invoice status from the full payment
// history; both writes happen inside one transaction with the invoice
// row locked, so concurrent completions cannot observe a stale total.
func (s *Service) Transition(ctx context.Context, req domain.TransitionRequest) (domain.Payment, error) {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.Payment{}, domain.ErrInvalidOwner
	}
	id, err := parseID(req.PaymentID)
	if err != nil {
		return domain.Payment{}, domain.ErrInvalidID
	}
	if !req.Status.Valid() {
		return domain.Payment{}, domain.ErrInvalidStatus
	}

	var result domain.Payment
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payment, err := s.loadForUpdate(ctx, tx, ownerID, id)
		if err != nil {
			return err
		}
		if err := domain.Transitions.Check("payment", payment.Status, req.Status); err != nil {
			s.metrics.RecordRejection("payment")
			return err
		}

		from := payment.Status
		now := time.Now().UTC()

		entersCompleted := req.Status == domain.PaymentStatusCompleted
		leavesCompleted := from == domain.PaymentStatusCompleted

		if entersCompleted && payment.InvoiceID != nil {
			invoice, err := s.loadInvoiceForUpdate(ctx, tx, ownerID, *payment.InvoiceID)
			if err != nil {
				return err
			}
			completed, err := s.completedTotal(ctx, tx, *payment.InvoiceID, payment.ID)
			if err != nil {
				return err
			}
			if completed.Add(payment.Amount).GreaterThan(invoice.Total) {
				return &domain.OverpaymentError{
					RemainingPayable: money.Round2(invoice.Total.Sub(completed)),
				}
			}
		}

		payment.Status = req.Status
		payment.UpdatedAt = now
		if entersCompleted {
			payment.PaidAt = &now
		}
		if err := tx.Save(payment).Error; err != nil {
			return err
		}

		if (entersCompleted || leavesCompleted) && payment.InvoiceID != nil {
			if err := s.reconcileLocked(ctx, tx, ownerID, *payment.InvoiceID); err != nil {
				return err
			}
		}

		s.metrics.RecordTransition("payment", string(from), string(req.Status))
		s.log.Info("payment status changed",
			zap.String("payment_id", payment.ID.String()),
			zap.String("from", string(from)),
			zap.String("to", string(req.Status)),
		)
		result = *payment
		return nil
	})
	if err != nil {
		return domain.Payment{}, err
	}
	return result, nil
}

// Reconcile recomputes the invoice status from its payment history.
func (s *Service) Reconcile(ctx context.Context, rawInvoiceID string) (invoicedomain.InvoiceStatus, error) {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return "", domain.ErrInvalidOwner
	}
	invoiceID, err := parseID(rawInvoiceID)
	if err != nil {
		return "", domain.ErrInvalidInvoice
	}

	var status invoicedomain.InvoiceStatus
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.reconcileLocked(ctx, tx, ownerID, invoiceID); err != nil {
			return err
		}
		invoice, err := s.loadInvoice(ctx, tx, ownerID, invoiceID)
		if err != nil {
			return err
		}
		status = invoice.Status
		return nil
	})
	if err != nil {
		return "", err
	}
	return status, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetPaymentRequest) (domain.Payment, error) {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.Payment{}, domain.ErrInvalidOwner
	}
	id, err := parseID(req.ID)
	if err != nil {
		return domain.Payment{}, domain.ErrInvalidID
	}

	payment, err := s.load(ctx, ownerID, id)
	if err != nil {
		return domain.Payment{}, err
	}
	return *payment, nil
}

func (s *Service) List(ctx context.Context, req domain.ListPaymentRequest) (domain.ListPaymentResponse, error) {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.ListPaymentResponse{}, domain.ErrInvalidOwner
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	stmt := s.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("owner_id = ?", ownerID).
		Order("id DESC").
		Limit(pageSize + 1)
	if req.Status != "" {
		stmt = stmt.Where("status = ?", req.Status)
	}
	if strings.TrimSpace(req.InvoiceID) != "" {
		invoiceID, err := parseID(req.InvoiceID)
		if err != nil {
			return domain.ListPaymentResponse{}, domain.ErrInvalidInvoice
		}
		stmt = stmt.Where("invoice_id = ?", invoiceID)
	}
	if req.PageToken != "" {
		cursor, err := pagination.DecodeCursor(req.PageToken)
		if err != nil {
			return domain.ListPaymentResponse{}, domain.ErrInvalidID
		}
		stmt = stmt.Where("id < ?", cursor.ID)
	}

	var items []*domain.Payment
	if err := stmt.Find(&items).Error; err != nil {
		return domain.ListPaymentResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(p *domain.Payment) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{ID: p.ID.String()})
		if err != nil {
			return ""
		}
		return token
	})
	if len(items) > pageSize {
		items = items[:pageSize]
	}

	payments := make([]domain.Payment, 0, len(items))
	for _, item := range items {
		payments = append(payments, *item)
	}
	return domain.ListPaymentResponse{PageInfo: *pageInfo, Payments: payments}, nil
}

// Delete soft-deletes a payment. Payments that reached COMPLETED (or
// were refunded afterwards) may never be deleted.
func (s *Service) Delete(ctx context.Context, rawID string) error {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.ErrInvalidOwner
	}
	id, err := parseID(rawID)
	if err != nil {
		return domain.ErrInvalidID
	}

	payment, err := s.load(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if payment.Status == domain.PaymentStatusCompleted || payment.Status == domain.PaymentStatusRefunded {
		return &lifecycle.ImmutableStateError{
			Entity: "payment",
			Status: string(payment.Status),
			Action: "delete",
		}
	}

	return s.db.WithContext(ctx).Delete(&domain.Payment{}, "id = ?", id).Error
}

// reconcileLocked re-derives the invoice status under the row lock taken
// by loadInvoiceForUpdate.
func (s *Service) reconcileLocked(ctx context.Context, tx *gorm.DB, ownerID, invoiceID snowflake.ID) error {
	invoice, err := s.loadInvoiceForUpdate(ctx, tx, ownerID, invoiceID)
	if err != nil {
		return err
	}

	var payments []domain.Payment
	if err := tx.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Find(&payments).Error; err != nil {
		return err
	}

	totalPaid := CompletedTotal(payments)
	derived := DeriveInvoiceStatus(invoice.Status, invoice.Total, totalPaid)
	if derived == invoice.Status {
		return nil
	}

	if err := tx.WithContext(ctx).
		Model(&invoicedomain.Invoice{}).
		Where("id = ?", invoiceID).
		Updates(map[string]any{
			"status":     derived,
			"updated_at": time.Now().UTC(),
		}).Error; err != nil {
		return err
	}

	s.metrics.RecordTransition("invoice", string(invoice.Status), string(derived))
	s.log.Info("invoice reconciled",
		zap.String("invoice_id", invoiceID.String()),
		zap.String("total_paid", totalPaid.String()),
		zap.String("status", string(derived)),
	)
	return nil
}

// completedTotal sums COMPLETED payments for the invoice, excluding one
// payment id (zero = exclude none).
func (s *Service) completedTotal(ctx context.Context, tx *gorm.DB, invoiceID, exclude snowflake.ID) (decimal.Decimal, error) {
	var payments []domain.Payment
	stmt := tx.WithContext(ctx).
		Where("invoice_id = ? AND status = ?", invoiceID, domain.PaymentStatusCompleted)
	if exclude != 0 {
		stmt = stmt.Where("id <> ?", exclude)
	}
	if err := stmt.Find(&payments).Error; err != nil {
		return decimal.Zero, err
	}
	return CompletedTotal(payments), nil
}

func (s *Service) load(ctx context.Context, ownerID, id snowflake.ID) (*domain.Payment, error) {
	payment, err := s.repo.FindOne(ctx, &domain.Payment{ID: id, OwnerID: ownerID})
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}
	return payment, nil
}

func (s *Service) loadForUpdate(ctx context.Context, tx *gorm.DB, ownerID, id snowflake.ID) (*domain.Payment, error) {
	var payment domain.Payment
	err := tx.WithContext(ctx).Raw(
		`SELECT * FROM payments
		 WHERE owner_id = ? AND id = ? AND deleted_at IS NULL
		 FOR UPDATE`,
		ownerID,
		id,
	).Scan(&payment).Error
	if err != nil {
		return nil, err
	}
	if payment.ID == 0 {
		return nil, domain.ErrNotFound
	}
	return &payment, nil
}

func (s *Service) loadInvoice(ctx context.Context, tx *gorm.DB, ownerID, id snowflake.ID) (*invoicedomain.Invoice, error) {
	var invoice invoicedomain.Invoice
	err := tx.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&invoice).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrInvalidInvoice
		}
		return nil, err
	}
	return &invoice, nil
}

func (s *Service) loadInvoiceForUpdate(ctx context.Context, tx *gorm.DB, ownerID, id snowflake.ID) (*invoicedomain.Invoice, error) {
	var invoice invoicedomain.Invoice
	err := tx.WithContext(ctx).Raw(
		`SELECT id, owner_id, status, subtotal, discount_total, vat_total, total
		 FROM invoices
		 WHERE owner_id = ? AND id = ? AND deleted_at IS NULL
		 FOR UPDATE`,
		ownerID,
		id,
	).Scan(&invoice).Error
	if err != nil {
		return nil, err
	}
	if invoice.ID == 0 {
		return nil, domain.ErrInvalidInvoice
	}
	return &invoice, nil
}

func parseID(raw string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(raw))
}
