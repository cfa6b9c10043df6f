package service

import (
	"context"
	"fmt"

	"github.com/emerpc1992/horale/internal/cache"
	"github.com/emerpc1992/horale/internal/dto"
	"github.com/emerpc1992/horale/internal/infra"
	"github.com/emerpc1992/horale/internal/model"
	"github.com/emerpc1992/horale/internal/repository"
	"github.com/emerpc1992/horale/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleService interface {
	CreateSale(ctx context.Context, req dto.CreateSaleRequest) (*dto.SaleResponse, error)
	CancelSale(ctx context.Context, id uuid.UUID) error
	GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	ListSales(ctx context.Context) (*dto.SaleListResponse, error)
	// GenerateReceipt renders the sale's PDF receipt and returns its path.
	GenerateReceipt(ctx context.Context, id uuid.UUID) (string, error)
}

type saleService struct {
	repo         repository.SaleRepository
	productRepo  repository.ProductRepository
	staffRepo    repository.StaffRepository
	summaries    *cache.SummaryCache
	dispatcher   *worker.Dispatcher
	businessName string
	storagePath  string
}

func NewSaleService(
	repo repository.SaleRepository,
	productRepo repository.ProductRepository,
	staffRepo repository.StaffRepository,
	summaries *cache.SummaryCache,
	dispatcher *worker.Dispatcher,
	businessName, storagePath string,
) SaleService {
	return &saleService{
		repo:         repo,
		productRepo:  productRepo,
		staffRepo:    staffRepo,
		summaries:    summaries,
		dispatcher:   dispatcher,
		businessName: businessName,
		storagePath:  storagePath,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// CreateSale registers a sale atomically: the sale row, one item row per
// line with the product's cost price snapshotted, and a guarded stock
// decrement per item. Any failure rolls back every row — no partial sale,
// no partial stock decrement.
func (s *saleService) CreateSale(ctx context.Context, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	staffID, err := uuid.Parse(req.StaffID)
	if err != nil {
		return nil, &ValidationError{Detail: fmt.Sprintf("staff_id inválido: %s", req.StaffID)}
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, &ValidationError{Detail: fmt.Sprintf("cantidad inválida para %s", item.ProductName)}
		}
		if item.Price.IsNegative() {
			return nil, &ValidationError{Detail: fmt.Sprintf("precio inválido para %s", item.ProductName)}
		}
	}
	if req.Discount.IsNegative() {
		return nil, &ValidationError{Detail: "el descuento no puede ser negativo"}
	}

	// Staff name is denormalized into the sale so later staff edits never
	// rewrite historical reports.
	staff, err := s.staffRepo.FindByID(ctx, staffID)
	if err != nil {
		return nil, ErrStaffNotFound
	}

	subtotal := decimal.Zero
	for _, item := range req.Items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	total := subtotal.Sub(req.Discount)

	sale := model.Sale{
		ClientName:    req.ClientName,
		ClientPhone:   req.ClientPhone,
		StaffID:       staff.ID,
		StaffName:     staff.Name,
		Commission:    req.Commission,
		Discount:      req.Discount,
		Subtotal:      subtotal,
		Total:         total,
		PaymentMethod: req.PaymentMethod,
		Status:        model.SaleCompleted,
		Notes:         req.Notes,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, &sale); err != nil {
			return err
		}

		for _, item := range req.Items {
			pid, err := uuid.Parse(item.ProductID)
			if err != nil {
				return &ValidationError{Detail: fmt.Sprintf("product_id inválido: %s", item.ProductID)}
			}
			p, err := s.productRepo.FindByIDTx(tx, pid)
			if err != nil {
				return &ProductNotFoundError{Name: item.ProductName}
			}

			saleItem := model.SaleItem{
				SaleID:      sale.ID,
				ProductID:   p.ID,
				ProductName: item.ProductName,
				Quantity:    item.Quantity,
				Price:       item.Price,
				CostPrice:   p.CostPrice,
				Subtotal:    item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
			}
			if err := s.repo.CreateItemTx(tx, &saleItem); err != nil {
				return err
			}
			sale.Items = append(sale.Items, saleItem)

			// Guarded decrement: the WHERE clause checks stock at the moment
			// of the UPDATE, so there is no window between check and mutate.
			ok, err := s.productRepo.DecrementStockTx(tx, p.ID, item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return &InsufficientStockError{Product: item.ProductName}
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.summaries.Invalidate(ctx)
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueReceipt(ctx, sale.ID.String())
	}

	return saleToResponse(&sale), nil
}

// CancelSale restores each item's quantity back onto the product as an
// additive delta and flips the sale status. Items and monetary fields stay
// untouched for the audit trail. Cancelling twice is rejected.
func (s *saleService) CancelSale(ctx context.Context, id uuid.UUID) error {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrSaleNotFound
	}
	if sale.Status == model.SaleCancelled {
		return ErrSaleAlreadyCancelled
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, item := range sale.Items {
			if err := s.productRepo.AddStockTx(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return s.repo.UpdateStatusTx(tx, id, model.SaleCancelled)
	})
	if txErr != nil {
		return txErr
	}

	s.summaries.Invalidate(ctx)
	return nil
}

func (s *saleService) GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrSaleNotFound
	}
	return saleToResponse(sale), nil
}

// ListSales returns all sales, newest first, each joined with its items.
func (s *saleService) ListSales(ctx context.Context) (*dto.SaleListResponse, error) {
	sales, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	data := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		data = append(data, *saleToResponse(&sales[i]))
	}
	return &dto.SaleListResponse{Data: data, Total: len(data)}, nil
}

func (s *saleService) GenerateReceipt(ctx context.Context, id uuid.UUID) (string, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", ErrSaleNotFound
	}
	return infra.GenerateReceiptPDF(sale, s.businessName, s.storagePath)
}

func saleToResponse(s *model.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			CostPrice:   item.CostPrice,
			Subtotal:    item.Subtotal,
		})
	}
	return &dto.SaleResponse{
		ID:            s.ID.String(),
		ClientName:    s.ClientName,
		ClientPhone:   s.ClientPhone,
		StaffID:       s.StaffID.String(),
		StaffName:     s.StaffName,
		Commission:    s.Commission,
		Discount:      s.Discount,
		Subtotal:      s.Subtotal,
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod,
		Status:        s.Status,
		Notes:         s.Notes,
		Items:         items,
		CreatedAt:     s.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
