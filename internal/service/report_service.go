package service

import (
	"context"

	"github.com/emerpc1992/horale/internal/cache"
	"github.com/emerpc1992/horale/internal/dto"
	"github.com/emerpc1992/horale/internal/model"
	"github.com/emerpc1992/horale/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReportService interface {
	GetFinancialSummary(ctx context.Context) (*dto.FinancialSummary, error)
}

type reportService struct {
	saleRepo    repository.SaleRepository
	expenseRepo repository.ExpenseRepository
	summaries   *cache.SummaryCache
}

func NewReportService(
	saleRepo repository.SaleRepository,
	expenseRepo repository.ExpenseRepository,
	summaries *cache.SummaryCache,
) ReportService {
	return &reportService{saleRepo: saleRepo, expenseRepo: expenseRepo, summaries: summaries}
}

// GetFinancialSummary derives the profit-and-loss waterfall from completed
// sales and all expenses. Both tables are read inside one transaction so a
// concurrent sale never shows up in half of the derived values.
func (s *reportService) GetFinancialSummary(ctx context.Context) (*dto.FinancialSummary, error) {
	if cached, ok := s.summaries.Get(ctx); ok {
		return cached, nil
	}

	var sales []model.Sale
	var expenses []model.Expense
	txErr := runTx(ctx, s.saleRepo.DB(), func(tx *gorm.DB) error {
		var err error
		if sales, err = s.saleRepo.ListByStatusTx(tx, model.SaleCompleted); err != nil {
			return err
		}
		expenses, err = s.expenseRepo.ListTx(tx)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}

	summary := buildFinancialSummary(sales, expenses)
	s.summaries.Set(ctx, summary)
	return summary, nil
}

// buildFinancialSummary is a pure function of a completed-sales snapshot and
// the expense set. Order matters: discounts, costs and payment buckets all
// come from the same completed-only subset.
func buildFinancialSummary(sales []model.Sale, expenses []model.Expense) *dto.FinancialSummary {
	grossSales := decimal.Zero
	costOfSales := decimal.Zero
	totalDiscounts := decimal.Zero
	totalCommissions := decimal.Zero
	salesByMethod := make(map[string]decimal.Decimal)

	for _, sale := range sales {
		grossSales = grossSales.Add(sale.Total)
		totalDiscounts = totalDiscounts.Add(sale.Discount)
		totalCommissions = totalCommissions.Add(sale.Total.Mul(sale.Commission).Div(oneHundred))

		for _, item := range sale.Items {
			costOfSales = costOfSales.Add(item.CostPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		method := sale.PaymentMethod
		switch method {
		case model.PaymentCash, model.PaymentCard, model.PaymentTransfer:
		default:
			method = model.PaymentOther
		}
		salesByMethod[method] = salesByMethod[method].Add(sale.Total)
	}

	netSales := grossSales.Sub(totalDiscounts)
	grossProfit := netSales.Sub(costOfSales)

	expensesByCategory := make(map[string]decimal.Decimal)
	operatingExpenses := decimal.Zero
	for _, e := range expenses {
		category := e.Category
		if category == "" {
			category = model.ExpenseDefaultCategory
		}
		expensesByCategory[category] = expensesByCategory[category].Add(e.Amount)
		operatingExpenses = operatingExpenses.Add(e.Amount)
	}

	operatingProfit := grossProfit.Sub(operatingExpenses)
	netProfit := operatingProfit.Sub(totalCommissions)

	// Percentages only exist when there were gross sales; an empty mapping
	// beats a division by zero.
	percentages := make(map[string]decimal.Decimal)
	if grossSales.IsPositive() {
		for method, amount := range salesByMethod {
			percentages[method] = amount.Div(grossSales).Mul(oneHundred)
		}
	}

	averageTicket := decimal.Zero
	if len(sales) > 0 {
		averageTicket = netSales.Div(decimal.NewFromInt(int64(len(sales))))
	}

	profitMargin := decimal.Zero
	if netSales.IsPositive() {
		profitMargin = netProfit.Div(netSales).Mul(oneHundred)
	}

	return &dto.FinancialSummary{
		GrossSales:               grossSales,
		TotalDiscounts:           totalDiscounts,
		NetSales:                 netSales,
		CostOfSales:              costOfSales,
		GrossProfit:              grossProfit,
		OperatingExpenses:        operatingExpenses,
		ExpensesByCategory:       expensesByCategory,
		OperatingProfit:          operatingProfit,
		TotalCommissions:         totalCommissions,
		NetProfit:                netProfit,
		TotalTransactions:        len(sales),
		AverageTicket:            averageTicket,
		ProfitMargin:             profitMargin,
		SalesByPaymentMethod:     salesByMethod,
		PaymentMethodPercentages: percentages,
	}
}
