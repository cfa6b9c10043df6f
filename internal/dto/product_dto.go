package dto

import "github.com/shopspring/decimal"

type CreateProductRequest struct {
	Name      string          `json:"name"       validate:"required"`
	Category  string          `json:"category"`
	CostPrice decimal.Decimal `json:"cost_price" validate:"min=0"`
	Price     decimal.Decimal `json:"price"      validate:"min=0"`
	Stock     int             `json:"stock"      validate:"min=0"`
	MinStock  int             `json:"min_stock"  validate:"min=0"`
}

type UpdateProductRequest struct {
	Name      string          `json:"name"       validate:"required"`
	Category  string          `json:"category"`
	CostPrice decimal.Decimal `json:"cost_price" validate:"min=0"`
	Price     decimal.Decimal `json:"price"      validate:"min=0"`
	MinStock  int             `json:"min_stock"  validate:"min=0"`
}

// AdjustStockRequest applies a manual stock delta (restock or correction).
// Negative deltas are rejected when they would take stock below zero.
type AdjustStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Reason string `json:"reason"`
}

type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	CostPrice decimal.Decimal `json:"cost_price"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	MinStock  int             `json:"min_stock"`
	Active    bool            `json:"active"`
}
