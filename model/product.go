package model

import (
	"time"

	"github.com/muhammadheryan/community-market/constant"
	"github.com/shopspring/decimal"
)

// ProductEntity represents the product table entity
type ProductEntity struct {
	ID            uint64               `db:"id" json:"id"`
	UserID        uint64               `db:"user_id" json:"user_id"`
	Title         string               `db:"title" json:"title"`
	Description   string               `db:"description" json:"description,omitempty"`
	Price         decimal.Decimal      `db:"price" json:"price"`
	Category      string               `db:"category" json:"category"`
	Type          constant.ProductType `db:"type" json:"type"`
	Address       string               `db:"address" json:"address,omitempty"`
	Coordinate    string               `db:"coordinate" json:"coordinate,omitempty"`
	StockQuantity int64                `db:"stock_quantity" json:"stock_quantity"`
	IsRecommend   bool                 `db:"is_recommend" json:"is_recommend"`
	CreatedAt     time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt     *time.Time           `db:"updated_at" json:"updated_at,omitempty"`
}

// ProductDetail is a product joined with its owner's display name
type ProductDetail struct {
	ProductEntity
	OwnerName string `db:"owner_name" json:"owner_name"`
}

// ProductStock is the locked stock row read inside the confirmation transaction
type ProductStock struct {
	ID            uint64 `db:"id"`
	UserID        uint64 `db:"user_id"`
	StockQuantity int64  `db:"stock_quantity"`
}

// ProductFilter lists the recognized product list options
type ProductFilter struct {
	OwnerID     uint64
	Type        constant.ProductType `validate:"omitempty,oneof=market willing barter"`
	Category    string
	IsRecommend *bool
	Search      string
	Page        int `validate:"gte=0"`
	PerPage     int `validate:"gte=0,lte=100"`
}

type CreateProductRequest struct {
	Title         string               `json:"title" validate:"required,max=255"`
	Description   string               `json:"description"`
	Price         decimal.Decimal      `json:"price"`
	Category      string               `json:"category" validate:"required"`
	Type          constant.ProductType `json:"type" validate:"required,oneof=market willing barter"`
	Address       string               `json:"address"`
	Coordinate    string               `json:"coordinate"`
	StockQuantity int64                `json:"stock_quantity" validate:"gte=0"`
	IsRecommend   bool                 `json:"is_recommend"`
}

// UpdateProductRequest carries optional fields; nil means unchanged
type UpdateProductRequest struct {
	Title         *string               `json:"title" validate:"omitempty,max=255"`
	Description   *string               `json:"description"`
	Price         *decimal.Decimal      `json:"price"`
	Category      *string               `json:"category"`
	Type          *constant.ProductType `json:"type" validate:"omitempty,oneof=market willing barter"`
	Address       *string               `json:"address"`
	Coordinate    *string               `json:"coordinate"`
	StockQuantity *int64                `json:"stock_quantity" validate:"omitempty,gte=0"`
	IsRecommend   *bool                 `json:"is_recommend"`
}

type UpdateStockRequest struct {
	StockQuantity *int64 `json:"stock_quantity" validate:"required,gte=0"`
}

type ProductListResponse struct {
	Items      []ProductDetail `json:"items"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	PerPage    int             `json:"per_page"`
}
