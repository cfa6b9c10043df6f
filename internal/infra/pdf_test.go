package infra

import (
	"os"
	"testing"
	"time"

	"github.com/emerpc1992/horale/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReceiptPDF(t *testing.T) {
	sale := &model.Sale{
		ID:            uuid.New(),
		ClientName:    "Cliente Test",
		StaffName:     "María",
		Discount:      decimal.NewFromInt(5),
		Subtotal:      decimal.NewFromInt(110),
		Total:         decimal.NewFromInt(105),
		PaymentMethod: model.PaymentCash,
		Status:        model.SaleCompleted,
		CreatedAt:     time.Now(),
		Items: []model.SaleItem{{
			ProductName: "Shampoo con un nombre muy largo que se trunca",
			Quantity:    2,
			Price:       decimal.NewFromInt(55),
			Subtotal:    decimal.NewFromInt(110),
		}},
	}

	path, err := GenerateReceiptPDF(sale, "Horale", t.TempDir())
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	head := make([]byte, 5)
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	_, err = f.Read(head)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(head))
}
