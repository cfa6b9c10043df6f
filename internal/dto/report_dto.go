package dto

import "github.com/shopspring/decimal"

// FinancialSummary is the full profit-and-loss waterfall derived from
// completed sales and expenses. All values come from one consistent read
// snapshot; every ratio degrades to 0 on empty data instead of NaN/Inf.
type FinancialSummary struct {
	// Sales
	GrossSales     decimal.Decimal `json:"gross_sales"`
	TotalDiscounts decimal.Decimal `json:"total_discounts"`
	NetSales       decimal.Decimal `json:"net_sales"`

	// Costs
	CostOfSales decimal.Decimal `json:"cost_of_sales"`
	GrossProfit decimal.Decimal `json:"gross_profit"`

	// Expenses
	OperatingExpenses  decimal.Decimal            `json:"operating_expenses"`
	ExpensesByCategory map[string]decimal.Decimal `json:"expenses_by_category"`

	// Profit
	OperatingProfit  decimal.Decimal `json:"operating_profit"`
	TotalCommissions decimal.Decimal `json:"total_commissions"`
	NetProfit        decimal.Decimal `json:"net_profit"`

	// Ratios
	TotalTransactions int             `json:"total_transactions"`
	AverageTicket     decimal.Decimal `json:"average_ticket"`
	ProfitMargin      decimal.Decimal `json:"profit_margin"`

	// Payment methods
	SalesByPaymentMethod     map[string]decimal.Decimal `json:"sales_by_payment_method"`
	PaymentMethodPercentages map[string]decimal.Decimal `json:"payment_method_percentages"`
}
