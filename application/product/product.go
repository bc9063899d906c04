package product

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/muhammadheryan/community-market/constant"
	"github.com/muhammadheryan/community-market/model"
	productRepo "github.com/muhammadheryan/community-market/repository/product"
	"github.com/muhammadheryan/community-market/utils/errors"
	"github.com/muhammadheryan/community-market/utils/logger"
	"go.uber.org/zap"
)

type ProductApp interface {
	CreateProduct(ctx context.Context, actor model.Principal, req *model.CreateProductRequest) (*model.ProductEntity, error)
	ListProducts(ctx context.Context, filter model.ProductFilter) (*model.ProductListResponse, error)
	GetProduct(ctx context.Context, id uint64) (*model.ProductDetail, error)
	UpdateProduct(ctx context.Context, id uint64, actor model.Principal, req *model.UpdateProductRequest) (*model.ProductDetail, error)
	UpdateStock(ctx context.Context, id uint64, actor model.Principal, stock int64) (*model.ProductDetail, error)
	DeleteProduct(ctx context.Context, id uint64, actor model.Principal) error
}

type productAppImpl struct {
	productRepo productRepo.ProductRepository
}

func NewProductApp(productRepo productRepo.ProductRepository) ProductApp {
	return &productAppImpl{productRepo: productRepo}
}

func (s *productAppImpl) CreateProduct(ctx context.Context, actor model.Principal, req *model.CreateProductRequest) (*model.ProductEntity, error) {
	if req.Price.IsNegative() || req.StockQuantity < 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	entity, err := s.productRepo.Create(ctx, &model.ProductEntity{
		UserID:        actor.UserID,
		Title:         req.Title,
		Description:   req.Description,
		Price:         req.Price,
		Category:      req.Category,
		Type:          req.Type,
		Address:       req.Address,
		Coordinate:    req.Coordinate,
		StockQuantity: req.StockQuantity,
		IsRecommend:   req.IsRecommend,
	})
	if err != nil {
		logger.Error("[CreateProduct] error productRepo.Create", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return entity, nil
}

func (s *productAppImpl) ListProducts(ctx context.Context, filter model.ProductFilter) (*model.ProductListResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PerPage <= 0 {
		filter.PerPage = 10
	}

	items, total, err := s.productRepo.List(ctx, &filter)
	if err != nil {
		logger.Error("[ListProducts] error productRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.ProductListResponse{
		Items:      items,
		TotalCount: total,
		Page:       filter.Page,
		PerPage:    filter.PerPage,
	}, nil
}

func (s *productAppImpl) GetProduct(ctx context.Context, id uint64) (*model.ProductDetail, error) {
	result, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[GetProduct] error productRepo.GetByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if result == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	return result, nil
}

// getOwned loads a product the actor may modify: its owner or an admin
func (s *productAppImpl) getOwned(ctx context.Context, op string, id uint64, actor model.Principal) (*model.ProductDetail, error) {
	p, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error(op+" error productRepo.GetByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if p == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	if !actor.IsAdmin && p.UserID != actor.UserID {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}
	return p, nil
}

func (s *productAppImpl) UpdateProduct(ctx context.Context, id uint64, actor model.Principal, req *model.UpdateProductRequest) (*model.ProductDetail, error) {
	p, err := s.getOwned(ctx, "[UpdateProduct]", id, actor)
	if err != nil {
		return nil, err
	}

	e := p.ProductEntity
	if req.Title != nil {
		e.Title = *req.Title
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, errors.SetCustomError(constant.ErrInvalidRequest)
		}
		e.Price = *req.Price
	}
	if req.Category != nil {
		e.Category = *req.Category
	}
	if req.Type != nil {
		e.Type = *req.Type
	}
	if req.Address != nil {
		e.Address = *req.Address
	}
	if req.Coordinate != nil {
		e.Coordinate = *req.Coordinate
	}
	if req.StockQuantity != nil && *req.StockQuantity < 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	if req.IsRecommend != nil {
		e.IsRecommend = *req.IsRecommend
	}

	if err := s.productRepo.Update(ctx, &e); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.SetCustomError(constant.ErrNotFound)
		}
		logger.Error("[UpdateProduct] error productRepo.Update", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	// Stock is written only when the caller set it, so an edit racing a
	// confirmation cannot restore the stock the confirmation took.
	if req.StockQuantity != nil {
		if err := s.productRepo.UpdateStock(ctx, id, *req.StockQuantity); err != nil {
			if stderrors.Is(err, sql.ErrNoRows) {
				return nil, errors.SetCustomError(constant.ErrNotFound)
			}
			logger.Error("[UpdateProduct] error productRepo.UpdateStock", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		e.StockQuantity = *req.StockQuantity
	}

	p.ProductEntity = e
	return p, nil
}

// UpdateStock overwrites stock_quantity directly. It does not coordinate with
// pending reservations; confirmation re-checks stock under lock.
func (s *productAppImpl) UpdateStock(ctx context.Context, id uint64, actor model.Principal, stock int64) (*model.ProductDetail, error) {
	if stock < 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	p, err := s.getOwned(ctx, "[UpdateStock]", id, actor)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.UpdateStock(ctx, id, stock); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.SetCustomError(constant.ErrNotFound)
		}
		logger.Error("[UpdateStock] error productRepo.UpdateStock", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	p.StockQuantity = stock
	return p, nil
}

func (s *productAppImpl) DeleteProduct(ctx context.Context, id uint64, actor model.Principal) error {
	if _, err := s.getOwned(ctx, "[DeleteProduct]", id, actor); err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.SetCustomError(constant.ErrNotFound)
		}
		logger.Error("[DeleteProduct] error productRepo.Delete", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}
