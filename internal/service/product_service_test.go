package service

import (
	"context"
	"testing"

	"github.com/emerpc1992/horale/internal/dto"
	"github.com/emerpc1992/horale/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductCreateAndDefaults(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.productSvc.Create(context.Background(), dto.CreateProductRequest{
		Name:      "Gel fijador",
		CostPrice: decimal.NewFromInt(20),
		Price:     decimal.NewFromInt(45),
		Stock:     10,
		MinStock:  3,
	})
	require.NoError(t, err)
	assert.Equal(t, "Otros", resp.Category)
	assert.True(t, resp.Active)
}

func TestAdjustStock_NegativeDeltaIsGuarded(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedProduct(t, "Gel", 20, 45, 5)

	resp, err := env.productSvc.AdjustStock(context.Background(), p.ID, -3)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Stock)

	_, err = env.productSvc.AdjustStock(context.Background(), p.ID, -3)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, env.productStock(t, p.ID))
}

func TestAdjustStock_PositiveDelta(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedProduct(t, "Gel", 20, 45, 5)

	resp, err := env.productSvc.AdjustStock(context.Background(), p.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 12, resp.Stock)
}

func TestListLowStock(t *testing.T) {
	env := newTestEnv(t)
	low := env.seedProduct(t, "Gel", 20, 45, 5) // stock == min_stock (5)
	env.seedProduct(t, "Shampoo", 30, 55, 20)

	got, err := env.productSvc.ListLowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, low.ID.String(), got[0].ID)
}

func TestDeactivateProduct_HidesFromDefaultList(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedProduct(t, "Gel", 20, 45, 5)
	env.seedProduct(t, "Shampoo", 30, 55, 20)

	require.NoError(t, env.productSvc.Deactivate(context.Background(), p.ID))

	active, err := env.productSvc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := env.productSvc.List(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestProductCreatedInactiveStaysInactive(t *testing.T) {
	env := newTestEnv(t)

	p := &model.Product{
		Name:      "Descontinuado",
		CostPrice: decimal.NewFromInt(10),
		Price:     decimal.NewFromInt(20),
		Stock:     0,
		MinStock:  5,
		Active:    false,
	}
	require.NoError(t, env.products.Create(context.Background(), p))

	stored, err := env.products.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)

	active, err := env.productSvc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestAdjustStock_UnknownProduct(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.productSvc.AdjustStock(context.Background(), uuid.New(), 1)
	var notFound *ProductNotFoundError
	assert.ErrorAs(t, err, &notFound)
}
