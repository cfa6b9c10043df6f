package dto

import "github.com/shopspring/decimal"

type CreateStaffRequest struct {
	Name  string  `json:"name" validate:"required"`
	Phone *string `json:"phone"`
}

type StaffResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Phone     *string `json:"phone,omitempty"`
	Active    bool    `json:"active"`
	CreatedAt string  `json:"created_at"`
}

// CommissionDiscount is an ad-hoc deduction applied to a commission report.
// Discounts live only in the reporting session — they are not persisted.
type CommissionDiscount struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
	Reason string          `json:"reason" validate:"required"`
}

// CommissionReportRequest carries the transient discounts of the session.
type CommissionReportRequest struct {
	Discounts []CommissionDiscount `json:"discounts" validate:"omitempty,dive"`
}

// CommissionSaleLine is one completed sale in the commission detail table.
type CommissionSaleLine struct {
	SaleID     string          `json:"sale_id"`
	ClientName string          `json:"client_name"`
	Total      decimal.Decimal `json:"total"`
	Rate       decimal.Decimal `json:"rate"`
	Commission decimal.Decimal `json:"commission"`
	CreatedAt  string          `json:"created_at"`
}

// CommissionReport aggregates a staff member's completed sales.
// FinalCommission may be negative when discounts exceed the gross amount.
type CommissionReport struct {
	StaffID         string               `json:"staff_id"`
	StaffName       string               `json:"staff_name"`
	TotalSales      decimal.Decimal      `json:"total_sales"`
	TotalCommission decimal.Decimal      `json:"total_commission"`
	TotalDiscounts  decimal.Decimal      `json:"total_discounts"`
	FinalCommission decimal.Decimal      `json:"final_commission"`
	Sales           []CommissionSaleLine `json:"sales"`
	Discounts       []CommissionDiscount `json:"discounts"`
}
