package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/defterhane/defterhane/internal/customer/domain"
	"github.com/defterhane/defterhane/internal/ownerctx"
	"github.com/defterhane/defterhane/pkg/db/pagination"
	"github.com/defterhane/defterhane/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	gorm  *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node

	repo repository.Repository[domain.Customer]
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		gorm:  p.DB,
		log:   p.Log.Named("customer.service"),
		genID: p.GenID,
		repo:  repository.ProvideStore[domain.Customer](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCustomerRequest) (domain.Customer, error) {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.Customer{}, domain.ErrInvalidOwner
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Customer{}, domain.ErrInvalidName
	}
	email := strings.TrimSpace(req.Email)
	if email != "" && !strings.Contains(email, "@") {
		return domain.Customer{}, domain.ErrInvalidEmail
	}

	now := time.Now().UTC()
	customer := domain.Customer{
		ID:        s.genID.Generate(),
		OwnerID:   ownerID,
		Name:      name,
		TaxNumber: strings.TrimSpace(req.TaxNumber),
		TaxOffice: strings.TrimSpace(req.TaxOffice),
		Email:     email,
		Address:   strings.TrimSpace(req.Address),
		Metadata:  datatypes.JSONMap{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, &customer); err != nil {
		return domain.Customer{}, err
	}
	return customer, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateCustomerRequest) (domain.Customer, error) {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.Customer{}, domain.ErrInvalidOwner
	}
	id, err := parseID(req.CustomerID)
	if err != nil {
		return domain.Customer{}, err
	}

	customer, err := s.load(ctx, ownerID, id)
	if err != nil {
		return domain.Customer{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Customer{}, domain.ErrInvalidName
		}
		customer.Name = name
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email != "" && !strings.Contains(email, "@") {
			return domain.Customer{}, domain.ErrInvalidEmail
		}
		customer.Email = email
	}
	if req.TaxNumber != nil {
		customer.TaxNumber = strings.TrimSpace(*req.TaxNumber)
	}
	if req.TaxOffice != nil {
		customer.TaxOffice = strings.TrimSpace(*req.TaxOffice)
	}
	if req.Address != nil {
		customer.Address = strings.TrimSpace(*req.Address)
	}
	customer.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, customer); err != nil {
		return domain.Customer{}, err
	}
	return *customer, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetCustomerRequest) (domain.Customer, error) {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.Customer{}, domain.ErrInvalidOwner
	}
	id, err := parseID(req.ID)
	if err != nil {
		return domain.Customer{}, err
	}

	customer, err := s.load(ctx, ownerID, id)
	if err != nil {
		return domain.Customer{}, err
	}
	return *customer, nil
}

func (s *Service) List(ctx context.Context, req domain.ListCustomerRequest) (domain.ListCustomerResponse, error) {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.ListCustomerResponse{}, domain.ErrInvalidOwner
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	stmt := s.gorm.WithContext(ctx).
		Model(&domain.Customer{}).
		Where("owner_id = ?", ownerID).
		Order("id DESC").
		Limit(pageSize + 1)
	if name := strings.TrimSpace(req.Name); name != "" {
		stmt = stmt.Where("name LIKE ?", "%"+name+"%")
	}
	if taxNumber := strings.TrimSpace(req.TaxNumber); taxNumber != "" {
		stmt = stmt.Where("tax_number = ?", taxNumber)
	}
	if req.PageToken != "" {
		cursor, err := pagination.DecodeCursor(req.PageToken)
		if err != nil {
			return domain.ListCustomerResponse{}, domain.ErrInvalidID
		}
		stmt = stmt.Where("id < ?", cursor.ID)
	}

	var items []*domain.Customer
	if err := stmt.Find(&items).Error; err != nil {
		return domain.ListCustomerResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(c *domain.Customer) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{ID: c.ID.String()})
		if err != nil {
			return ""
		}
		return token
	})
	if len(items) > pageSize {
		items = items[:pageSize]
	}

	customers := make([]domain.Customer, 0, len(items))
	for _, item := range items {
		customers = append(customers, *item)
	}
	return domain.ListCustomerResponse{PageInfo: *pageInfo, Customers: customers}, nil
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok || ownerID == 0 {
		return domain.ErrInvalidOwner
	}
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	if _, err := s.load(ctx, ownerID, id); err != nil {
		return err
	}
	return s.gorm.WithContext(ctx).Delete(&domain.Customer{}, "id = ?", id).Error
}

func (s *Service) load(ctx context.Context, ownerID, id snowflake.ID) (*domain.Customer, error) {
	customer, err := s.repo.FindOne(ctx, &domain.Customer{ID: id, OwnerID: ownerID})
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return customer, nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
