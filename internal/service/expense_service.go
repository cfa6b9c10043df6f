package service

import (
	"context"

	"github.com/emerpc1992/horale/internal/cache"
	"github.com/emerpc1992/horale/internal/dto"
	"github.com/emerpc1992/horale/internal/model"
	"github.com/emerpc1992/horale/internal/repository"

	"github.com/google/uuid"
)

type ExpenseService interface {
	Create(ctx context.Context, req dto.CreateExpenseRequest) (*dto.ExpenseResponse, error)
	List(ctx context.Context) ([]dto.ExpenseResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type expenseService struct {
	repo      repository.ExpenseRepository
	summaries *cache.SummaryCache
}

func NewExpenseService(repo repository.ExpenseRepository, summaries *cache.SummaryCache) ExpenseService {
	return &expenseService{repo: repo, summaries: summaries}
}

func (s *expenseService) Create(ctx context.Context, req dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, &ValidationError{Detail: "el monto del gasto debe ser mayor a cero"}
	}
	category := req.Category
	if category == "" {
		category = model.ExpenseDefaultCategory
	}
	e := model.Expense{
		Category:    category,
		Description: req.Description,
		Amount:      req.Amount,
	}
	if err := s.repo.Create(ctx, &e); err != nil {
		return nil, err
	}
	s.summaries.Invalidate(ctx)
	return expenseToResponse(&e), nil
}

func (s *expenseService) List(ctx context.Context) ([]dto.ExpenseResponse, error) {
	expenses, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		out = append(out, *expenseToResponse(&expenses[i]))
	}
	return out, nil
}

func (s *expenseService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.summaries.Invalidate(ctx)
	return nil
}

func expenseToResponse(e *model.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:          e.ID.String(),
		Category:    e.Category,
		Description: e.Description,
		Amount:      e.Amount,
		CreatedAt:   e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
