package product_test

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"testing"

	appproduct "github.com/muhammadheryan/community-market/application/product"
	"github.com/muhammadheryan/community-market/constant"
	productmocks "github.com/muhammadheryan/community-market/mocks/repository/product"
	"github.com/muhammadheryan/community-market/model"
	cerr "github.com/muhammadheryan/community-market/utils/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func ownedProduct(id, owner uint64, stock int64) *model.ProductDetail {
	return &model.ProductDetail{
		ProductEntity: model.ProductEntity{
			ID:            id,
			UserID:        owner,
			Title:         "Sourdough loaf",
			Price:         decimal.RequireFromString("4.50"),
			Category:      "food",
			Type:          constant.ProductTypeMarket,
			StockQuantity: stock,
		},
		OwnerName: "Baker",
	}
}

func checkErr(t *testing.T, err error, wantErr bool, errCode constant.ErrorType) {
	t.Helper()
	if (err != nil) != wantErr {
		t.Fatalf("error = %v, wantErr %v", err, wantErr)
	}
	if !wantErr {
		return
	}
	var ce cerr.CustomError
	if !errors.As(err, &ce) {
		t.Fatalf("error type = %T, want CustomError", err)
	}
	if ce.ErrorCode() != constant.ErrorTypeCode[errCode] {
		t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[errCode])
	}
}

func TestProductApp_ListProducts(t *testing.T) {
	type fields struct {
		productRepo *productmocks.ProductRepository
	}
	tests := []struct {
		name     string
		filter   model.ProductFilter
		mockCall func(f fields)
		want     *model.ProductListResponse
		wantErr  bool
	}{
		{
			name:   "success: list products with pagination",
			filter: model.ProductFilter{Type: constant.ProductTypeMarket, Page: 2, PerPage: 5},
			mockCall: func(f fields) {
				f.productRepo.
					On("List", mock.Anything, &model.ProductFilter{Type: constant.ProductTypeMarket, Page: 2, PerPage: 5}).
					Return([]model.ProductDetail{*ownedProduct(1, 7, 3)}, int64(6), nil).
					Once()
			},
			want: &model.ProductListResponse{
				Items:      []model.ProductDetail{*ownedProduct(1, 7, 3)},
				TotalCount: 6,
				Page:       2,
				PerPage:    5,
			},
		},
		{
			name:   "success: zero paging falls back to defaults",
			filter: model.ProductFilter{},
			mockCall: func(f fields) {
				f.productRepo.
					On("List", mock.Anything, &model.ProductFilter{Page: 1, PerPage: 10}).
					Return([]model.ProductDetail{}, int64(0), nil).
					Once()
			},
			want: &model.ProductListResponse{
				Items:   []model.ProductDetail{},
				Page:    1,
				PerPage: 10,
			},
		},
		{
			name:   "error: repository fails",
			filter: model.ProductFilter{},
			mockCall: func(f fields) {
				f.productRepo.
					On("List", mock.Anything, mock.Anything).
					Return(nil, int64(0), errors.New("db error")).
					Once()
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := fields{productRepo: productmocks.NewProductRepository(t)}
			tt.mockCall(f)

			got, err := appproduct.NewProductApp(f.productRepo).ListProducts(context.Background(), tt.filter)
			checkErr(t, err, tt.wantErr, constant.ErrInternal)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ListProducts() got = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestProductApp_GetProduct(t *testing.T) {
	tests := []struct {
		name     string
		mockCall func(repo *productmocks.ProductRepository)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success",
			mockCall: func(repo *productmocks.ProductRepository) {
				repo.On("GetByID", mock.Anything, uint64(1)).Return(ownedProduct(1, 7, 3), nil).Once()
			},
		},
		{
			name: "error: not found",
			mockCall: func(repo *productmocks.ProductRepository) {
				repo.On("GetByID", mock.Anything, uint64(1)).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
		{
			name: "error: repository fails",
			mockCall: func(repo *productmocks.ProductRepository) {
				repo.On("GetByID", mock.Anything, uint64(1)).Return(nil, errors.New("db error")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			repo := productmocks.NewProductRepository(t)
			tt.mockCall(repo)

			_, err := appproduct.NewProductApp(repo).GetProduct(context.Background(), 1)
			checkErr(t, err, tt.wantErr, tt.errCode)
		})
	}
}

func TestProductApp_CreateProduct(t *testing.T) {
	tests := []struct {
		name     string
		req      *model.CreateProductRequest
		mockCall func(repo *productmocks.ProductRepository)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: owner is the actor",
			req:  &model.CreateProductRequest{Title: "Jam", Price: decimal.RequireFromString("3.20"), Category: "food", Type: constant.ProductTypeMarket, StockQuantity: 12},
			mockCall: func(repo *productmocks.ProductRepository) {
				repo.On("Create", mock.Anything, mock.MatchedBy(func(e *model.ProductEntity) bool {
					return e.UserID == 7 && e.Title == "Jam" && e.StockQuantity == 12 && e.Price.Equal(decimal.RequireFromString("3.2"))
				})).Return(&model.ProductEntity{ID: 9, UserID: 7}, nil).Once()
			},
		},
		{
			name:     "error: negative price",
			req:      &model.CreateProductRequest{Title: "Jam", Price: decimal.NewFromInt(-1), Category: "food", Type: constant.ProductTypeMarket},
			mockCall: func(repo *productmocks.ProductRepository) {},
			wantErr:  true,
			errCode:  constant.ErrInvalidRequest,
		},
		{
			name:     "error: negative stock",
			req:      &model.CreateProductRequest{Title: "Jam", Category: "food", Type: constant.ProductTypeMarket, StockQuantity: -1},
			mockCall: func(repo *productmocks.ProductRepository) {},
			wantErr:  true,
			errCode:  constant.ErrInvalidRequest,
		},
		{
			name: "error: insert fails",
			req:  &model.CreateProductRequest{Title: "Jam", Category: "food", Type: constant.ProductTypeBarter},
			mockCall: func(repo *productmocks.ProductRepository) {
				repo.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db error")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			repo := productmocks.NewProductRepository(t)
			tt.mockCall(repo)

			_, err := appproduct.NewProductApp(repo).CreateProduct(context.Background(), model.Principal{UserID: 7}, tt.req)
			checkErr(t, err, tt.wantErr, tt.errCode)
		})
	}
}

func TestProductApp_UpdateProduct(t *testing.T) {
	title := "Rye loaf"
	stock := int64(20)
	negative := int64(-2)

	tests := []struct {
		name     string
		actor    model.Principal
		req      *model.UpdateProductRequest
		mockCall func(repo *productmocks.ProductRepository)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:  "success: owner sets stock directly",
			actor: model.Principal{UserID: 7},
			req:   &model.UpdateProductRequest{Title: &title, StockQuantity: &stock},
			mockCall: func(repo *productmocks.ProductRepository) {
				repo.On("GetByID", mock.Anything, uint64(1)).Return(ownedProduct(1, 7, 3), nil).Once()
				repo.On("Update", mock.Anything, mock.MatchedBy(func(e *model.ProductEntity) bool {
					return e.ID == 1 && e.Title == title && e.Category == "food"
				})).Return(nil).Once()
				repo.On("UpdateStock", mock.Anything, uint64(1), stock).Return(nil).Once()
			},
		},
		{
			name:  "success: title-only edit never writes stock",
			actor: model.Principal{UserID: 7},
			req:   &model.UpdateProductRequest{Title: &title},
			mockCall: func(repo *productmocks.ProductRepository) {
				repo.On("GetByID", mock.Anything, uint64(1)).Return(ownedProduct(1, 7, 3), nil).Once()
				repo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()
			},
		},
		{
			name:  "error: stock write fails",
			actor: model.Principal{UserID: 7},
			req:   &model.UpdateProductRequest{Title: &title, StockQuantity: &stock},
			mockCall: func(repo *productmocks.ProductRepository) {
				repo.On("GetByID", mock.Anything, uint64(1)).Return(ownedProduct(1, 7, 3), nil).Once()
				repo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()
				repo.On("UpdateStock", mock.Anything, uint64(1), stock).Return(errors.New("db error")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
		{
			name:  "success: admin edits another user's product",
			actor: model.Principal{UserID: 99, IsAdmin: true},
			req:   &model.UpdateProductRequest{Title: &title},
			mockCall: func(repo *productmocks.ProductRepository) {
				repo.On("GetByID", mock.Anything, uint64(1)).Return(ownedProduct(1, 7, 3), nil).Once()
				repo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()
			},
		},
		{
			name:  "error: not owner",
			actor: model.Principal{UserID: 8},
			req:   &model.UpdateProductRequest{Title: &title},
			mockCall: func(repo *productmocks.ProductRepository) {
				repo.On("GetByID", mock.Anything, uint64(1)).Return(ownedProduct(1, 7, 3), nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrForbidden,
		},
		{
			name:  "error: negative stock",
			actor: model.Principal{UserID: 7},
			req:   &model.UpdateProductRequest{StockQuantity: &negative},
			mockCall: func(repo *productmocks.ProductRepository) {
				repo.On("GetByID", mock.Anything, uint64(1)).Return(ownedProduct(1, 7, 3), nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
		{
			name:  "error: deleted between read and update",
			actor: model.Principal{UserID: 7},
			req:   &model.UpdateProductRequest{Title: &title},
			mockCall: func(repo *productmocks.ProductRepository) {
				repo.On("GetByID", mock.Anything, uint64(1)).Return(ownedProduct(1, 7, 3), nil).Once()
				repo.On("Update", mock.Anything, mock.Anything).Return(sql.ErrNoRows).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			repo := productmocks.NewProductRepository(t)
			tt.mockCall(repo)

			got, err := appproduct.NewProductApp(repo).UpdateProduct(context.Background(), 1, tt.actor, tt.req)
			checkErr(t, err, tt.wantErr, tt.errCode)
			if !tt.wantErr && got.Title != title {
				t.Errorf("UpdateProduct() title = %s, want %s", got.Title, title)
			}
		})
	}
}

func TestProductApp_UpdateStock(t *testing.T) {
	tests := []struct {
		name     string
		stock    int64
		mockCall func(repo *productmocks.ProductRepository)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:  "success",
			stock: 0,
			mockCall: func(repo *productmocks.ProductRepository) {
				repo.On("GetByID", mock.Anything, uint64(1)).Return(ownedProduct(1, 7, 3), nil).Once()
				repo.On("UpdateStock", mock.Anything, uint64(1), int64(0)).Return(nil).Once()
			},
		},
		{
			name:     "error: negative",
			stock:    -1,
			mockCall: func(repo *productmocks.ProductRepository) {},
			wantErr:  true,
			errCode:  constant.ErrInvalidRequest,
		},
		{
			name:  "error: repository fails",
			stock: 4,
			mockCall: func(repo *productmocks.ProductRepository) {
				repo.On("GetByID", mock.Anything, uint64(1)).Return(ownedProduct(1, 7, 3), nil).Once()
				repo.On("UpdateStock", mock.Anything, uint64(1), int64(4)).Return(errors.New("db error")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			repo := productmocks.NewProductRepository(t)
			tt.mockCall(repo)

			got, err := appproduct.NewProductApp(repo).UpdateStock(context.Background(), 1, model.Principal{UserID: 7}, tt.stock)
			checkErr(t, err, tt.wantErr, tt.errCode)
			if !tt.wantErr && got.StockQuantity != tt.stock {
				t.Errorf("UpdateStock() stock = %d, want %d", got.StockQuantity, tt.stock)
			}
		})
	}
}

func TestProductApp_DeleteProduct(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := productmocks.NewProductRepository(t)
		repo.On("GetByID", mock.Anything, uint64(1)).Return(ownedProduct(1, 7, 3), nil).Once()
		repo.On("Delete", mock.Anything, uint64(1)).Return(nil).Once()

		err := appproduct.NewProductApp(repo).DeleteProduct(context.Background(), 1, model.Principal{UserID: 7})
		checkErr(t, err, false, constant.Successful)
	})

	t.Run("error: not found", func(t *testing.T) {
		repo := productmocks.NewProductRepository(t)
		repo.On("GetByID", mock.Anything, uint64(1)).Return(nil, nil).Once()

		err := appproduct.NewProductApp(repo).DeleteProduct(context.Background(), 1, model.Principal{UserID: 7})
		checkErr(t, err, true, constant.ErrNotFound)
	})
}
