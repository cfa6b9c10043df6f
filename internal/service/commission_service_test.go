package service

import (
	"context"
	"errors"
	"testing"

	"github.com/emerpc1992/horale/internal/dto"
	"github.com/emerpc1992/horale/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStaffCommissions_PerSaleRate(t *testing.T) {
	env := newTestEnv(t)
	staff := env.seedStaff(t, "María")
	p := env.seedProduct(t, "Shampoo", 30, 55, 50)

	// Same staff, different negotiated rates per sale.
	env.seedSale(t, staff.ID.String(), 10, 0, model.PaymentCash, []dto.SaleItemRequest{item(p, 2, 100)}) // total 200, commission 20
	env.seedSale(t, staff.ID.String(), 5, 0, model.PaymentCard, []dto.SaleItemRequest{item(p, 1, 100)}) // total 100, commission 5

	report, err := env.commissions.ComputeStaffCommissions(context.Background(), staff.ID, nil)
	require.NoError(t, err)

	assert.True(t, report.TotalSales.Equal(decimal.NewFromInt(300)), "total sales = %s", report.TotalSales)
	assert.True(t, report.TotalCommission.Equal(decimal.NewFromInt(25)), "total commission = %s", report.TotalCommission)
	assert.True(t, report.FinalCommission.Equal(decimal.NewFromInt(25)))
	assert.Len(t, report.Sales, 2)
	assert.Empty(t, report.Discounts)
}

func TestComputeStaffCommissions_ExcludesCancelledSales(t *testing.T) {
	env := newTestEnv(t)
	staff := env.seedStaff(t, "María")
	p := env.seedProduct(t, "Shampoo", 30, 55, 50)

	kept := env.seedSale(t, staff.ID.String(), 10, 0, model.PaymentCash, []dto.SaleItemRequest{item(p, 1, 100)})
	voided := env.seedSale(t, staff.ID.String(), 10, 0, model.PaymentCash, []dto.SaleItemRequest{item(p, 1, 100)})
	require.NoError(t, env.saleSvc.CancelSale(context.Background(), uuid.MustParse(voided.ID)))

	report, err := env.commissions.ComputeStaffCommissions(context.Background(), staff.ID, nil)
	require.NoError(t, err)

	require.Len(t, report.Sales, 1)
	assert.Equal(t, kept.ID, report.Sales[0].SaleID)
	assert.True(t, report.TotalCommission.Equal(decimal.NewFromInt(10)))
}

func TestComputeStaffCommissions_DiscountsCanGoNegative(t *testing.T) {
	env := newTestEnv(t)
	staff := env.seedStaff(t, "María")
	p := env.seedProduct(t, "Shampoo", 30, 55, 50)

	env.seedSale(t, staff.ID.String(), 10, 0, model.PaymentCash, []dto.SaleItemRequest{item(p, 1, 100)}) // commission 10

	discounts := []dto.CommissionDiscount{
		{Amount: decimal.NewFromInt(8), Reason: "adelanto"},
		{Amount: decimal.NewFromInt(7), Reason: "préstamo"},
	}
	report, err := env.commissions.ComputeStaffCommissions(context.Background(), staff.ID, discounts)
	require.NoError(t, err)

	assert.True(t, report.TotalDiscounts.Equal(decimal.NewFromInt(15)))
	// No floor at zero: 10 − 15 = −5.
	assert.True(t, report.FinalCommission.Equal(decimal.NewFromInt(-5)), "final = %s", report.FinalCommission)
}

func TestComputeStaffCommissions_DiscountsAreTransient(t *testing.T) {
	env := newTestEnv(t)
	staff := env.seedStaff(t, "María")
	p := env.seedProduct(t, "Shampoo", 30, 55, 50)
	env.seedSale(t, staff.ID.String(), 10, 0, model.PaymentCash, []dto.SaleItemRequest{item(p, 1, 100)})

	_, err := env.commissions.ComputeStaffCommissions(context.Background(), staff.ID,
		[]dto.CommissionDiscount{{Amount: decimal.NewFromInt(4), Reason: "adelanto"}})
	require.NoError(t, err)

	// The next report starts clean.
	report, err := env.commissions.ComputeStaffCommissions(context.Background(), staff.ID, nil)
	require.NoError(t, err)
	assert.True(t, report.TotalDiscounts.IsZero())
	assert.True(t, report.FinalCommission.Equal(decimal.NewFromInt(10)))
}

func TestComputeStaffCommissions_RejectsNonPositiveDiscount(t *testing.T) {
	env := newTestEnv(t)
	staff := env.seedStaff(t, "María")

	_, err := env.commissions.ComputeStaffCommissions(context.Background(), staff.ID,
		[]dto.CommissionDiscount{{Amount: decimal.Zero, Reason: "nada"}})
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestComputeStaffCommissions_UnknownStaff(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.commissions.ComputeStaffCommissions(context.Background(), uuid.New(), nil)
	assert.True(t, errors.Is(err, ErrStaffNotFound))
}

func TestClearStaffCommissions_CoversAllStatuses(t *testing.T) {
	env := newTestEnv(t)
	staff := env.seedStaff(t, "María")
	other := env.seedStaff(t, "Carlos")
	p := env.seedProduct(t, "Shampoo", 30, 55, 50)

	env.seedSale(t, staff.ID.String(), 10, 0, model.PaymentCash, []dto.SaleItemRequest{item(p, 1, 100)})
	voided := env.seedSale(t, staff.ID.String(), 10, 0, model.PaymentCash, []dto.SaleItemRequest{item(p, 1, 100)})
	require.NoError(t, env.saleSvc.CancelSale(context.Background(), uuid.MustParse(voided.ID)))
	env.seedSale(t, other.ID.String(), 10, 0, model.PaymentCash, []dto.SaleItemRequest{item(p, 1, 100)})

	cleared, err := env.commissions.ClearStaffCommissions(context.Background(), staff.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, cleared)

	report, err := env.commissions.ComputeStaffCommissions(context.Background(), staff.ID, nil)
	require.NoError(t, err)
	assert.True(t, report.TotalCommission.IsZero())
	// Sale totals are untouched; only the rate was zeroed.
	assert.True(t, report.TotalSales.Equal(decimal.NewFromInt(100)))

	// Other staff members keep their commissions.
	otherReport, err := env.commissions.ComputeStaffCommissions(context.Background(), other.ID, nil)
	require.NoError(t, err)
	assert.True(t, otherReport.TotalCommission.Equal(decimal.NewFromInt(10)))
}

func TestClearStaffCommissions_UnknownStaff(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.commissions.ClearStaffCommissions(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, ErrStaffNotFound))
}
