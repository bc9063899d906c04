package model

import (
	"time"

	"github.com/muhammadheryan/community-market/constant"
	"github.com/shopspring/decimal"
)

// ReservationEntity represents the reservation table entity
type ReservationEntity struct {
	ID              uint64                     `db:"reservation_id" json:"reservation_id"`
	UserID          uint64                     `db:"user_id" json:"user_id"`
	ProductID       uint64                     `db:"product_id" json:"product_id"`
	Quantity        int64                      `db:"quantity" json:"quantity"`
	Note            string                     `db:"note" json:"note,omitempty"`
	ShippingAddress string                     `db:"shipping_address" json:"shipping_address,omitempty"`
	Status          constant.ReservationStatus `db:"status" json:"status"`
	CreatedAt       time.Time                  `db:"created_at" json:"created_at"`
	UpdatedAt       *time.Time                 `db:"updated_at" json:"updated_at,omitempty"`
}

// ReservationDetail is a reservation joined with its product and both parties
type ReservationDetail struct {
	ReservationEntity
	ProductTitle   string          `db:"product_title" json:"product_title"`
	ProductPrice   decimal.Decimal `db:"product_price" json:"product_price"`
	ProductOwnerID uint64          `db:"product_owner_id" json:"product_owner_id"`
	OwnerName      string          `db:"owner_name" json:"owner_name"`
	CustomerName   string          `db:"customer_name" json:"customer_name"`
}

// ReservationFilter lists the recognized reservation list options.
// Zero values are ignored.
type ReservationFilter struct {
	CustomerID     uint64
	ProductOwnerID uint64
	ProductID      uint64
	Status         constant.ReservationStatus `validate:"omitempty,oneof=pending confirmed cancelled"`
	Page           int                        `validate:"gte=0"`
	PerPage        int                        `validate:"gte=0,lte=100"`
}

type CreateReservationRequest struct {
	ProductID       uint64 `json:"product_id" validate:"required"`
	Quantity        int64  `json:"quantity"`
	Note            string `json:"note" validate:"max=1000"`
	ShippingAddress string `json:"shipping_address" validate:"max=500"`
}

type UpdateReservationRequest struct {
	Quantity        *int64  `json:"quantity"`
	Note            *string `json:"note" validate:"omitempty,max=1000"`
	ShippingAddress *string `json:"shipping_address" validate:"omitempty,max=500"`
}

type UpdateReservationStatusRequest struct {
	Status constant.ReservationStatus `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

type ReservationListResponse struct {
	Items      []ReservationDetail `json:"items"`
	TotalCount int64               `json:"total_count"`
	Page       int                 `json:"page"`
	PerPage    int                 `json:"per_page"`
}

// StatusCount is one row of a GROUP BY status aggregate
type StatusCount struct {
	Status constant.ReservationStatus `db:"status"`
	Total  int64                      `db:"total"`
}

type ReservationCounts struct {
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Cancelled int64 `json:"cancelled"`
	Total     int64 `json:"total"`
}

type ReservationStats struct {
	AsCustomer ReservationCounts `json:"as_customer"`
	AsOwner    ReservationCounts `json:"as_owner"`
}
