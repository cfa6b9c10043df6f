package dto

import "github.com/shopspring/decimal"

type CreateCreditRequest struct {
	ClientName  string          `json:"client_name" validate:"required"`
	ClientPhone string          `json:"client_phone"`
	ProductID   string          `json:"product_id" validate:"required,uuid"`
	Price       decimal.Decimal `json:"price"      validate:"required"`
	DueDate     string          `json:"due_date"   validate:"required"` // YYYY-MM-DD
	Notes       *string         `json:"notes"`
}

type AddPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=cash card transfer"`
	Notes         *string         `json:"notes"`
}

type PaymentResponse struct {
	ID            string          `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Notes         *string         `json:"notes,omitempty"`
	CreatedAt     string          `json:"created_at"`
}

type CreditResponse struct {
	ID              string            `json:"id"`
	Code            string            `json:"code"`
	ClientName      string            `json:"client_name"`
	ClientPhone     string            `json:"client_phone,omitempty"`
	ProductID       string            `json:"product_id"`
	ProductName     string            `json:"product_name"`
	CostPrice       decimal.Decimal   `json:"cost_price"`
	Price           decimal.Decimal   `json:"price"`
	RemainingAmount decimal.Decimal   `json:"remaining_amount"`
	Status          string            `json:"status"`
	DueDate         string            `json:"due_date"`
	Notes           *string           `json:"notes,omitempty"`
	Payments        []PaymentResponse `json:"payments"`
	CreatedAt       string            `json:"created_at"`
}
