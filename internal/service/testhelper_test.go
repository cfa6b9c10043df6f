package service

import (
	"context"
	"testing"

	"github.com/emerpc1992/horale/internal/dto"
	"github.com/emerpc1992/horale/internal/infra"
	"github.com/emerpc1992/horale/internal/model"
	"github.com/emerpc1992/horale/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires the real services against an in-memory SQLite database, so
// the transactional guarantees (rollback, guarded decrement) are exercised
// for real instead of being stubbed away.
type testEnv struct {
	db          *gorm.DB
	products    repository.ProductRepository
	staff       repository.StaffRepository
	sales       repository.SaleRepository
	expenses    repository.ExpenseRepository
	credits     repository.CreditRepository
	saleSvc     SaleService
	commissions CommissionService
	reports     ReportService
	expenseSvc  ExpenseService
	productSvc  ProductService
	creditSvc   CreditService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// Unique DSN per test: shared-cache in-memory DBs with the same name
	// would leak state between tests.
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, infra.RunMigrations(db))

	products := repository.NewProductRepository(db)
	staff := repository.NewStaffRepository(db)
	sales := repository.NewSaleRepository(db)
	expenses := repository.NewExpenseRepository(db)
	credits := repository.NewCreditRepository(db)

	return &testEnv{
		db:          db,
		products:    products,
		staff:       staff,
		sales:       sales,
		expenses:    expenses,
		credits:     credits,
		saleSvc:     NewSaleService(sales, products, staff, nil, nil, "Horale", t.TempDir()),
		commissions: NewCommissionService(sales, staff, nil),
		reports:     NewReportService(sales, expenses, nil),
		expenseSvc:  NewExpenseService(expenses, nil),
		productSvc:  NewProductService(products),
		creditSvc:   NewCreditService(credits, products),
	}
}

func (e *testEnv) seedProduct(t *testing.T, name string, cost, price int64, stock int) *model.Product {
	t.Helper()
	p := &model.Product{
		Name:      name,
		CostPrice: decimal.NewFromInt(cost),
		Price:     decimal.NewFromInt(price),
		Stock:     stock,
		MinStock:  5,
		Active:    true,
	}
	require.NoError(t, e.products.Create(context.Background(), p))
	return p
}

func (e *testEnv) seedStaff(t *testing.T, name string) *model.Staff {
	t.Helper()
	s := &model.Staff{Name: name, Active: true}
	require.NoError(t, e.staff.Create(context.Background(), s))
	return s
}

// seedSale pushes one sale through the real service path.
func (e *testEnv) seedSale(t *testing.T, staffID string, commission, discount int64, method string, items []dto.SaleItemRequest) *dto.SaleResponse {
	t.Helper()
	resp, err := e.saleSvc.CreateSale(context.Background(), dto.CreateSaleRequest{
		ClientName:    "Cliente Test",
		StaffID:       staffID,
		Commission:    decimal.NewFromInt(commission),
		Discount:      decimal.NewFromInt(discount),
		PaymentMethod: method,
		Items:         items,
	})
	require.NoError(t, err)
	return resp
}

func (e *testEnv) productStock(t *testing.T, id uuid.UUID) int {
	t.Helper()
	p, err := e.products.FindByID(context.Background(), id)
	require.NoError(t, err)
	return p.Stock
}

func item(p *model.Product, qty int, price int64) dto.SaleItemRequest {
	return dto.SaleItemRequest{
		ProductID:   p.ID.String(),
		ProductName: p.Name,
		Quantity:    qty,
		Price:       decimal.NewFromInt(price),
	}
}
