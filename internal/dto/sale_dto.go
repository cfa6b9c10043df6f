package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SaleItemRequest struct {
	ProductID   string          `json:"product_id"   validate:"required,uuid"`
	ProductName string          `json:"product_name" validate:"required"`
	Quantity    int             `json:"quantity"     validate:"required,min=1"`
	Price       decimal.Decimal `json:"price"        validate:"min=0"`
}

type CreateSaleRequest struct {
	ClientName  string  `json:"client_name" validate:"required"`
	ClientPhone *string `json:"client_phone"`
	StaffID     string  `json:"staff_id"   validate:"required,uuid"`
	// Commission is the percentage negotiated for this sale (0–100).
	Commission    decimal.Decimal   `json:"commission" validate:"min=0,max=100"`
	Discount      decimal.Decimal   `json:"discount"   validate:"min=0"`
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=cash card transfer"`
	Items         []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
	Notes         *string           `json:"notes"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type SaleResponse struct {
	ID            string             `json:"id"`
	ClientName    string             `json:"client_name"`
	ClientPhone   *string            `json:"client_phone,omitempty"`
	StaffID       string             `json:"staff_id"`
	StaffName     string             `json:"staff_name"`
	Commission    decimal.Decimal    `json:"commission"`
	Discount      decimal.Decimal    `json:"discount"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	Status        string             `json:"status"`
	Notes         *string            `json:"notes,omitempty"`
	Items         []SaleItemResponse `json:"items"`
	CreatedAt     string             `json:"created_at"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int            `json:"total"`
}
