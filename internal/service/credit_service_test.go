package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/emerpc1992/horale/internal/dto"
	"github.com/emerpc1992/horale/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCredit_SnapshotsProductAndLeavesStock(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedProduct(t, "Plancha", 200, 350, 3)

	credit, err := env.creditSvc.CreateCredit(context.Background(), dto.CreateCreditRequest{
		ClientName: "Ana",
		ProductID:  p.ID.String(),
		Price:      decimal.NewFromInt(350),
		DueDate:    "2026-12-31",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(credit.Code, "CR-"))
	assert.Equal(t, "Plancha", credit.ProductName)
	assert.True(t, credit.CostPrice.Equal(decimal.NewFromInt(200)))
	assert.True(t, credit.RemainingAmount.Equal(decimal.NewFromInt(350)))
	assert.Equal(t, model.CreditPending, credit.Status)

	// A credit reserves nothing until it converts into a sale.
	assert.Equal(t, 3, env.productStock(t, p.ID))
}

func TestCreateCredit_UnknownProduct(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.creditSvc.CreateCredit(context.Background(), dto.CreateCreditRequest{
		ClientName: "Ana",
		ProductID:  uuid.NewString(),
		Price:      decimal.NewFromInt(100),
		DueDate:    "2026-12-31",
	})
	var notFound *ProductNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestCreateCredit_BadDueDate(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedProduct(t, "Plancha", 200, 350, 3)
	_, err := env.creditSvc.CreateCredit(context.Background(), dto.CreateCreditRequest{
		ClientName: "Ana",
		ProductID:  p.ID.String(),
		Price:      decimal.NewFromInt(100),
		DueDate:    "31/12/2026",
	})
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestAddPayment_SettlesCredit(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedProduct(t, "Plancha", 200, 350, 3)

	credit, err := env.creditSvc.CreateCredit(context.Background(), dto.CreateCreditRequest{
		ClientName: "Ana",
		ProductID:  p.ID.String(),
		Price:      decimal.NewFromInt(300),
		DueDate:    "2026-12-31",
	})
	require.NoError(t, err)
	id := uuid.MustParse(credit.ID)

	partial, err := env.creditSvc.AddPayment(context.Background(), id, dto.AddPaymentRequest{
		Amount:        decimal.NewFromInt(100),
		PaymentMethod: model.PaymentCash,
	})
	require.NoError(t, err)
	assert.True(t, partial.RemainingAmount.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, model.CreditPending, partial.Status)

	settled, err := env.creditSvc.AddPayment(context.Background(), id, dto.AddPaymentRequest{
		Amount:        decimal.NewFromInt(200),
		PaymentMethod: model.PaymentCard,
	})
	require.NoError(t, err)
	assert.True(t, settled.RemainingAmount.IsZero())
	assert.Equal(t, model.CreditPaid, settled.Status)
	assert.Len(t, settled.Payments, 2)

	// Further payments against a settled credit are rejected.
	_, err = env.creditSvc.AddPayment(context.Background(), id, dto.AddPaymentRequest{
		Amount:        decimal.NewFromInt(1),
		PaymentMethod: model.PaymentCash,
	})
	assert.True(t, errors.Is(err, ErrCreditAlreadyPaid))
}

func TestAddPayment_CannotOverdraw(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedProduct(t, "Plancha", 200, 350, 3)

	credit, err := env.creditSvc.CreateCredit(context.Background(), dto.CreateCreditRequest{
		ClientName: "Ana",
		ProductID:  p.ID.String(),
		Price:      decimal.NewFromInt(100),
		DueDate:    "2026-12-31",
	})
	require.NoError(t, err)

	_, err = env.creditSvc.AddPayment(context.Background(), uuid.MustParse(credit.ID), dto.AddPaymentRequest{
		Amount:        decimal.NewFromInt(150),
		PaymentMethod: model.PaymentCash,
	})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	// The rejected payment must not leave a row behind.
	got, err := env.creditSvc.ListCredits(context.Background(), model.CreditPending)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Payments)
	assert.True(t, got[0].RemainingAmount.Equal(decimal.NewFromInt(100)))
}

func TestAddPayment_UnknownCredit(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.creditSvc.AddPayment(context.Background(), uuid.New(), dto.AddPaymentRequest{
		Amount:        decimal.NewFromInt(10),
		PaymentMethod: model.PaymentCash,
	})
	assert.True(t, errors.Is(err, ErrCreditNotFound))
}
