package dto

import "github.com/shopspring/decimal"

type CreateExpenseRequest struct {
	// Category is free-form; blank falls back to "Otros".
	Category    string          `json:"category"`
	Description *string         `json:"description"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
}

type ExpenseResponse struct {
	ID          string          `json:"id"`
	Category    string          `json:"category"`
	Description *string         `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   string          `json:"created_at"`
}
