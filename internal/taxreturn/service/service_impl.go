package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/defterhane/defterhane/internal/lifecycle"
	"github.com/defterhane/defterhane/internal/observability/metrics"
	"github.com/defterhane/defterhane/internal/ownerctx"
	"github.com/defterhane/defterhane/internal/rates"
	"github.com/defterhane/defterhane/internal/taxreturn/domain"
	"github.com/defterhane/defterhane/pkg/db"
	"github.com/defterhane/defterhane/pkg/db/pagination"
	"github.com/defterhane/defterhane/pkg/money"
	"github.com/defterhane/defterhane/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	gorm    *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	tables  *rates.Tables
	metrics *metrics.Metrics

	repo repository.Repository[domain.TaxReturn]
}

type ServiceParam struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Tables  *rates.Tables
	Metrics *metrics.Metrics `optional:"true"`
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		gorm:    p.DB,
		log:     p.Log.Named("taxreturn.service"),
		genID:   p.GenID,
		tables:  p.Tables,
		metrics: p.Metrics,
		repo:    repository.ProvideStore[domain.TaxReturn](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateReturnRequest) (domain.TaxReturn, error) {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.TaxReturn{}, domain.ErrInvalidOwner
	}

	rate, ok := s.tables.ReturnRates[req.Type]
	if !ok {
		return domain.TaxReturn{}, domain.ErrInvalidType
	}
	period, err := normalizePeriod(req.Period)
	if err != nil {
		return domain.TaxReturn{}, err
	}
	if req.TaxableAmount.Sign() < 0 {
		return domain.TaxReturn{}, domain.ErrInvalidAmount
	}

	taxable := money.Round2(req.TaxableAmount)
	now := time.Now().UTC()
	ret := domain.TaxReturn{
		ID:            s.genID.Generate(),
		OwnerID:       ownerID,
		Type:          req.Type,
		Period:        period,
		TaxableAmount: taxable,
		TaxAmount:     money.Round2(taxable.Mul(rate)),
		Status:        domain.ReturnStatusDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// only live rows count: a soft-deleted return frees its period slot.
	// The check and the insert share one transaction; postgres backs it
	// with a partial unique index over non-deleted rows.
	err = s.gorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		store := s.repo.WithTrx(tx)
		count, err := store.Count(ctx, &domain.TaxReturn{
			OwnerID: ownerID,
			Type:    req.Type,
			Period:  period,
		})
		if err != nil {
			return err
		}
		if count > 0 {
			return &domain.DuplicatePeriodError{Type: req.Type, Period: period}
		}
		return store.Create(ctx, &ret)
	})
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.TaxReturn{}, &domain.DuplicatePeriodError{Type: req.Type, Period: period}
		}
		return domain.TaxReturn{}, err
	}

	s.log.Info("tax return created",
		zap.String("return_id", ret.ID.String()),
		zap.String("type", string(ret.Type)),
		zap.String("period", ret.Period),
	)
	return ret, nil
}

func (s *Service) Transition(ctx context.Context, req domain.TransitionRequest) (domain.TaxReturn, error) {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.TaxReturn{}, domain.ErrInvalidOwner
	}
	id, err := parseID(req.ReturnID)
	if err != nil {
		return domain.TaxReturn{}, domain.ErrInvalidID
	}
	if !req.Status.Valid() {
		return domain.TaxReturn{}, domain.ErrInvalidStatus
	}

	ret, err := s.load(ctx, ownerID, id)
	if err != nil {
		return domain.TaxReturn{}, err
	}
	if err := domain.Transitions.Check("tax_return", ret.Status, req.Status); err != nil {
		s.metrics.RecordRejection("tax_return")
		return domain.TaxReturn{}, err
	}

	from := ret.Status
	now := time.Now().UTC()
	ret.Status = req.Status
	ret.UpdatedAt = now
	switch req.Status {
	case domain.ReturnStatusSubmitted:
		ret.SubmittedAt = &now
	case domain.ReturnStatusPaid:
		ret.PaidAt = &now
	}

	if err := s.repo.Save(ctx, ret); err != nil {
		return domain.TaxReturn{}, err
	}

	s.metrics.RecordTransition("tax_return", string(from), string(req.Status))
	s.log.Info("tax return status changed",
		zap.String("return_id", ret.ID.String()),
		zap.String("from", string(from)),
		zap.String("to", string(req.Status)),
	)
	return *ret, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetReturnRequest) (domain.TaxReturn, error) {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.TaxReturn{}, domain.ErrInvalidOwner
	}
	id, err := parseID(req.ID)
	if err != nil {
		return domain.TaxReturn{}, domain.ErrInvalidID
	}

	ret, err := s.load(ctx, ownerID, id)
	if err != nil {
		return domain.TaxReturn{}, err
	}
	return *ret, nil
}

func (s *Service) List(ctx context.Context, req domain.ListReturnRequest) (domain.ListReturnResponse, error) {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.ListReturnResponse{}, domain.ErrInvalidOwner
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	stmt := s.gorm.WithContext(ctx).
		Model(&domain.TaxReturn{}).
		Where("owner_id = ?", ownerID).
		Order("id DESC").
		Limit(pageSize + 1)
	if req.Type != "" {
		stmt = stmt.Where("type = ?", req.Type)
	}
	if req.Status != "" {
		stmt = stmt.Where("status = ?", req.Status)
	}
	if req.PageToken != "" {
		cursor, err := pagination.DecodeCursor(req.PageToken)
		if err != nil {
			return domain.ListReturnResponse{}, domain.ErrInvalidID
		}
		stmt = stmt.Where("id < ?", cursor.ID)
	}

	var items []*domain.TaxReturn
	if err := stmt.Find(&items).Error; err != nil {
		return domain.ListReturnResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(r *domain.TaxReturn) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{ID: r.ID.String()})
		if err != nil {
			return ""
		}
		return token
	})
	if len(items) > pageSize {
		items = items[:pageSize]
	}

	returns := make([]domain.TaxReturn, 0, len(items))
	for _, item := range items {
		returns = append(returns, *item)
	}
	return domain.ListReturnResponse{PageInfo: *pageInfo, Returns: returns}, nil
}

// Delete soft-deletes a return. Anything past DRAFT except a rejection
// or cancellation is part of the filing record and may not be removed.
func (s *Service) Delete(ctx context.Context, rawID string) error {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.ErrInvalidOwner
	}
	id, err := parseID(rawID)
	if err != nil {
		return domain.ErrInvalidID
	}

	ret, err := s.load(ctx, ownerID, id)
	if err != nil {
		return err
	}
	switch ret.Status {
	case domain.ReturnStatusSubmitted, domain.ReturnStatusPaid, domain.ReturnStatusOverdue:
		return &lifecycle.ImmutableStateError{
			Entity: "tax_return",
			Status: string(ret.Status),
			Action: "delete",
		}
	}

	return s.gorm.WithContext(ctx).Delete(&domain.TaxReturn{}, "id = ?", id).Error
}

func (s *Service) load(ctx context.Context, ownerID, id snowflake.ID) (*domain.TaxReturn, error) {
	ret, err := s.repo.FindOne(ctx, &domain.TaxReturn{ID: id, OwnerID: ownerID})
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, domain.ErrNotFound
	}
	return ret, nil
}

// normalizePeriod validates the "YYYY-MM" declaration period.
func normalizePeriod(raw string) (string, error) {
	period := strings.TrimSpace(raw)
	t, err := time.Parse("2006-01", period)
	if err != nil {
		return "", domain.ErrInvalidPeriod
	}
	return t.Format("2006-01"), nil
}

func parseID(raw string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(raw))
}
