package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	catalogdomain "github.com/warungkita/pos/internal/catalog/domain"
	"github.com/warungkita/pos/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  catalogdomain.Repository
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID *snowflake.Node
	repo  catalogdomain.Repository
}

func NewService(p ServiceParam) catalogdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("catalog.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req catalogdomain.CreateProductRequest) (*catalogdomain.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, catalogdomain.ErrInvalidName
	}
	if req.Price < 0 {
		return nil, catalogdomain.ErrInvalidPrice
	}

	product := &catalogdomain.Product{
		ID:     s.genID.Generate().Int64(),
		UUID:   uuid.NewString(),
		Name:   name,
		Price:  req.Price,
		Image:  req.Image,
		Active: true,
	}

	if err := s.repo.Insert(ctx, s.db, product); err != nil {
		s.log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	return product, nil
}

func (s *Service) List(ctx context.Context, req catalogdomain.ListProductsRequest) (catalogdomain.ListProductsResponse, error) {
	page := req.Page.Normalize()

	products, total, err := s.repo.List(ctx, s.db, req.Scope, page)
	if err != nil {
		return catalogdomain.ListProductsResponse{}, err
	}

	return catalogdomain.ListProductsResponse{
		PageInfo: pagination.BuildPageInfo(page, total),
		Products: products,
	}, nil
}

func (s *Service) All(ctx context.Context) ([]catalogdomain.Product, error) {
	return s.repo.ListAll(ctx, s.db)
}

func (s *Service) Get(ctx context.Context, productUUID string) (*catalogdomain.Product, error) {
	return s.repo.FindByUUID(ctx, s.db, productUUID, catalogdomain.ScopeDefault)
}

func (s *Service) Update(ctx context.Context, productUUID string, req catalogdomain.UpdateProductRequest) (*catalogdomain.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, catalogdomain.ErrInvalidName
	}
	if req.Price < 0 {
		return nil, catalogdomain.ErrInvalidPrice
	}

	product, err := s.repo.FindByUUID(ctx, s.db, productUUID, catalogdomain.ScopeDefault)
	if err != nil {
		return nil, err
	}

	product.Name = name
	product.Price = req.Price
	if req.Active != nil {
		product.Active = *req.Active
	}
	if req.Image != nil {
		product.Image = req.Image
	}

	if err := s.repo.Update(ctx, s.db, product); err != nil {
		s.log.Error("failed to update product",
			zap.String("product_uuid", productUUID),
			zap.Error(err),
		)
		return nil, err
	}

	return product, nil
}

func (s *Service) Delete(ctx context.Context, productUUID string) (*catalogdomain.Product, error) {
	product, err := s.repo.FindByUUID(ctx, s.db, productUUID, catalogdomain.ScopeDefault)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SoftDelete(ctx, s.db, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *Service) Restore(ctx context.Context, productUUID string) (*catalogdomain.Product, error) {
	product, err := s.repo.FindByUUID(ctx, s.db, productUUID, catalogdomain.ScopeOnlyDeleted)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Restore(ctx, s.db, product); err != nil {
		return nil, err
	}

	product.DeletedAt = gorm.DeletedAt{}
	return product, nil
}

func (s *Service) ForceDelete(ctx context.Context, productUUID string) error {
	product, err := s.repo.FindByUUID(ctx, s.db, productUUID, catalogdomain.ScopeWithDeleted)
	if err != nil {
		return err
	}

	return s.repo.ForceDelete(ctx, s.db, product)
}
