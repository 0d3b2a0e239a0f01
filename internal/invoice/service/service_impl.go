package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/defterhane/defterhane/internal/invoice/domain"
	"github.com/defterhane/defterhane/internal/lifecycle"
	"github.com/defterhane/defterhane/internal/observability/metrics"
	"github.com/defterhane/defterhane/internal/ownerctx"
	taxcalcdomain "github.com/defterhane/defterhane/internal/taxcalc/domain"
	"github.com/defterhane/defterhane/pkg/db/pagination"
	"github.com/defterhane/defterhane/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	calc    taxcalcdomain.Service
	metrics *metrics.Metrics

	repo repository.Repository[domain.Invoice]
}

type ServiceParam struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Calc    taxcalcdomain.Service
	Metrics *metrics.Metrics `optional:"true"`
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("invoice.service"),
		genID:   p.GenID,
		calc:    p.Calc,
		metrics: p.Metrics,
		repo:    repository.ProvideStore[domain.Invoice](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateInvoiceRequest) (domain.Invoice, error) {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.Invoice{}, domain.ErrInvalidOwner
	}

	number := strings.TrimSpace(req.Number)
	if number == "" {
		return domain.Invoice{}, domain.ErrInvalidNumber
	}
	customerID, err := parseID(req.CustomerID)
	if err != nil {
		return domain.Invoice{}, domain.ErrInvalidCustomer
	}

	totals, err := s.calc.InvoiceTotals(req.Lines)
	if err != nil {
		return domain.Invoice{}, err
	}

	currency := strings.TrimSpace(req.Currency)
	if currency == "" {
		currency = "TRY"
	}

	now := time.Now().UTC()
	invoice := domain.Invoice{
		ID:            s.genID.Generate(),
		OwnerID:       ownerID,
		CustomerID:    customerID,
		Number:        number,
		Status:        domain.InvoiceStatusDraft,
		Currency:      currency,
		Subtotal:      totals.Subtotal,
		DiscountTotal: totals.DiscountTotal,
		VATTotal:      totals.VATTotal,
		Total:         totals.GrandTotal,
		IssueDate:     req.IssueDate,
		DueDate:       req.DueDate,
		Metadata:      datatypes.JSONMap(req.Metadata),
		Lines:         s.buildLines(ownerID, totals.Items),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.db.WithContext(ctx).Create(&invoice).Error; err != nil {
		return domain.Invoice{}, err
	}

	s.log.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("total", invoice.Total.String()),
	)
	return invoice, nil
}

// ReplaceLines swaps the full line set of a DRAFT invoice and overwrites
// the stored totals in the same transaction.
func (s *Service) ReplaceLines(ctx context.Context, req domain.ReplaceLinesRequest) (domain.Invoice, error) {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.Invoice{}, domain.ErrInvalidOwner
	}
	id, err := parseID(req.InvoiceID)
	if err != nil {
		return domain.Invoice{}, domain.ErrInvalidID
	}

	invoice, err := s.load(ctx, ownerID, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	if invoice.Status != domain.InvoiceStatusDraft {
		return domain.Invoice{}, &lifecycle.ImmutableStateError{
			Entity: "invoice",
			Status: string(invoice.Status),
			Action: "replace lines",
		}
	}

	totals, err := s.calc.InvoiceTotals(req.Lines)
	if err != nil {
		return domain.Invoice{}, err
	}

	lines := s.buildLines(ownerID, totals.Items)
	for i := range lines {
		lines[i].InvoiceID = invoice.ID
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&domain.InvoiceLine{}).Error; err != nil {
			return err
		}
		if len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
		}
		return tx.Model(&domain.Invoice{}).Where("id = ?", invoice.ID).Updates(map[string]any{
			"subtotal":       totals.Subtotal,
			"discount_total": totals.DiscountTotal,
			"vat_total":      totals.VATTotal,
			"total":          totals.GrandTotal,
			"updated_at":     time.Now().UTC(),
		}).Error
	})
	if err != nil {
		return domain.Invoice{}, err
	}

	return s.GetByID(ctx, domain.GetInvoiceRequest{ID: req.InvoiceID})
}

func (s *Service) Transition(ctx context.Context, req domain.TransitionRequest) (domain.Invoice, error) {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.Invoice{}, domain.ErrInvalidOwner
	}
	id, err := parseID(req.InvoiceID)
	if err != nil {
		return domain.Invoice{}, domain.ErrInvalidID
	}
	if !req.Status.Valid() {
		return domain.Invoice{}, domain.ErrInvalidStatus
	}

	invoice, err := s.load(ctx, ownerID, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	if err := domain.Transitions.Check("invoice", invoice.Status, req.Status); err != nil {
		s.metrics.RecordRejection("invoice")
		return domain.Invoice{}, err
	}

	from := invoice.Status
	invoice.Status = req.Status
	invoice.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, invoice); err != nil {
		return domain.Invoice{}, err
	}

	s.metrics.RecordTransition("invoice", string(from), string(req.Status))
	s.log.Info("invoice status changed",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("from", string(from)),
		zap.String("to", string(req.Status)),
	)
	return *invoice, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetInvoiceRequest) (domain.Invoice, error) {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.Invoice{}, domain.ErrInvalidOwner
	}
	id, err := parseID(req.ID)
	if err != nil {
		return domain.Invoice{}, domain.ErrInvalidID
	}

	var invoice domain.Invoice
	err = s.db.WithContext(ctx).
		Preload("Lines").
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&invoice).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Invoice{}, domain.ErrNotFound
		}
		return domain.Invoice{}, err
	}
	return invoice, nil
}

func (s *Service) List(ctx context.Context, req domain.ListInvoiceRequest) (domain.ListInvoiceResponse, error) {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.ListInvoiceResponse{}, domain.ErrInvalidOwner
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	stmt := s.db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("owner_id = ?", ownerID).
		Order("id DESC").
		Limit(pageSize + 1)
	if req.Status != "" {
		stmt = stmt.Where("status = ?", req.Status)
	}
	if req.PageToken != "" {
		cursor, err := pagination.DecodeCursor(req.PageToken)
		if err != nil {
			return domain.ListInvoiceResponse{}, domain.ErrInvalidID
		}
		stmt = stmt.Where("id < ?", cursor.ID)
	}

	var items []*domain.Invoice
	if err := stmt.Find(&items).Error; err != nil {
		return domain.ListInvoiceResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(inv *domain.Invoice) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{ID: inv.ID.String()})
		if err != nil {
			return ""
		}
		return token
	})
	if len(items) > pageSize {
		items = items[:pageSize]
	}

	invoices := make([]domain.Invoice, 0, len(items))
	for _, item := range items {
		invoices = append(invoices, *item)
	}
	return domain.ListInvoiceResponse{PageInfo: *pageInfo, Invoices: invoices}, nil
}

// Delete soft-deletes an invoice. PAID invoices may never be deleted.
func (s *Service) Delete(ctx context.Context, rawID string) error {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.ErrInvalidOwner
	}
	id, err := parseID(rawID)
	if err != nil {
		return domain.ErrInvalidID
	}

	invoice, err := s.load(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if invoice.Status == domain.InvoiceStatusPaid {
		return &lifecycle.ImmutableStateError{
			Entity: "invoice",
			Status: string(invoice.Status),
			Action: "delete",
		}
	}

	return s.db.WithContext(ctx).Delete(&domain.Invoice{}, "id = ?", id).Error
}

func (s *Service) load(ctx context.Context, ownerID, id snowflake.ID) (*domain.Invoice, error) {
	invoice, err := s.repo.FindOne(ctx, &domain.Invoice{ID: id, OwnerID: ownerID})
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	return invoice, nil
}

func (s *Service) buildLines(ownerID snowflake.ID, items []taxcalcdomain.LineTotals) []domain.InvoiceLine {
	lines := make([]domain.InvoiceLine, 0, len(items))
	now := time.Now().UTC()
	for _, item := range items {
		lines = append(lines, domain.InvoiceLine{
			ID:             s.genID.Generate(),
			OwnerID:        ownerID,
			Description:    item.Description,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
			VATRate:        item.VATRate,
			DiscountRate:   item.DiscountRate,
			Subtotal:       item.Subtotal,
			DiscountAmount: item.DiscountAmount,
			VATAmount:      item.VATAmount,
			Total:          item.Total,
			CreatedAt:      now,
		})
	}
	return lines
}

func parseID(raw string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(raw))
}
