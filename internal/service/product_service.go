package service

import (
	"context"

	"github.com/emerpc1992/horale/internal/dto"
	"github.com/emerpc1992/horale/internal/model"
	"github.com/emerpc1992/horale/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, includeInactive bool) ([]dto.ProductResponse, error)
	ListLowStock(ctx context.Context) ([]dto.ProductResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*dto.ProductResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	category := req.Category
	if category == "" {
		category = "Otros"
	}
	minStock := req.MinStock
	if minStock == 0 {
		minStock = 5
	}
	p := model.Product{
		Name:      req.Name,
		Category:  category,
		CostPrice: req.CostPrice,
		Price:     req.Price,
		Stock:     req.Stock,
		MinStock:  minStock,
		Active:    true,
	}
	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, err
	}
	return productToResponse(&p), nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, &ProductNotFoundError{Name: id.String()}
	}
	return productToResponse(p), nil
}

func (s *productService) List(ctx context.Context, includeInactive bool) ([]dto.ProductResponse, error) {
	products, err := s.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, *productToResponse(&products[i]))
	}
	return out, nil
}

func (s *productService) ListLowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := s.repo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, *productToResponse(&products[i]))
	}
	return out, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, &ProductNotFoundError{Name: id.String()}
	}
	p.Name = req.Name
	if req.Category != "" {
		p.Category = req.Category
	}
	p.CostPrice = req.CostPrice
	p.Price = req.Price
	p.MinStock = req.MinStock
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

// AdjustStock applies a manual delta. Negative deltas reuse the guarded
// decrement so a correction can never push stock below zero.
func (s *productService) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, &ProductNotFoundError{Name: id.String()}
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if delta >= 0 {
			return s.repo.AddStockTx(tx, id, delta)
		}
		ok, err := s.repo.DecrementStockTx(tx, id, -delta)
		if err != nil {
			return err
		}
		if !ok {
			return &InsufficientStockError{Product: p.Name}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return productToResponse(updated), nil
}

func (s *productService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return &ProductNotFoundError{Name: id.String()}
	}
	return s.repo.Deactivate(ctx, id)
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:        p.ID.String(),
		Name:      p.Name,
		Category:  p.Category,
		CostPrice: p.CostPrice,
		Price:     p.Price,
		Stock:     p.Stock,
		MinStock:  p.MinStock,
		Active:    p.Active,
	}
}
