package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/emerpc1992/horale/internal/dto"
	"github.com/emerpc1992/horale/internal/model"
	"github.com/emerpc1992/horale/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreditService interface {
	CreateCredit(ctx context.Context, req dto.CreateCreditRequest) (*dto.CreditResponse, error)
	AddPayment(ctx context.Context, creditID uuid.UUID, req dto.AddPaymentRequest) (*dto.CreditResponse, error)
	ListCredits(ctx context.Context, status string) ([]dto.CreditResponse, error)
}

type creditService struct {
	repo        repository.CreditRepository
	productRepo repository.ProductRepository
}

func NewCreditService(repo repository.CreditRepository, productRepo repository.ProductRepository) CreditService {
	return &creditService{repo: repo, productRepo: productRepo}
}

// CreateCredit snapshots the product's name and cost price into the credit,
// same capture-at-mutation rule as sale items. Stock is not touched: a
// credit reserves nothing until it converts into a sale.
func (s *creditService) CreateCredit(ctx context.Context, req dto.CreateCreditRequest) (*dto.CreditResponse, error) {
	pid, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, &ValidationError{Detail: fmt.Sprintf("product_id inválido: %s", req.ProductID)}
	}
	if !req.Price.IsPositive() {
		return nil, &ValidationError{Detail: "el precio debe ser mayor a cero"}
	}
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return nil, &ValidationError{Detail: fmt.Sprintf("due_date inválida: %s", req.DueDate)}
	}

	p, err := s.productRepo.FindByID(ctx, pid)
	if err != nil {
		return nil, &ProductNotFoundError{Name: req.ProductID}
	}

	credit := model.Credit{
		Code:            newCreditCode(),
		ClientName:      req.ClientName,
		ClientPhone:     req.ClientPhone,
		ProductID:       p.ID,
		ProductName:     p.Name,
		CostPrice:       p.CostPrice,
		Price:           req.Price,
		RemainingAmount: req.Price,
		Status:          model.CreditPending,
		DueDate:         dueDate,
		Notes:           req.Notes,
	}
	if err := s.repo.Create(ctx, &credit); err != nil {
		return nil, err
	}
	return creditToResponse(&credit), nil
}

// AddPayment records an installment atomically: the payment row plus the
// credit's balance and status in one transaction. The balance read happens
// inside the transaction, so two overlapping payments cannot overdraw.
func (s *creditService) AddPayment(ctx context.Context, creditID uuid.UUID, req dto.AddPaymentRequest) (*dto.CreditResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, &ValidationError{Detail: "el monto del abono debe ser mayor a cero"}
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		credit, err := s.repo.FindByIDTx(tx, creditID)
		if err != nil {
			return ErrCreditNotFound
		}
		if credit.Status == model.CreditPaid {
			return ErrCreditAlreadyPaid
		}
		if req.Amount.GreaterThan(credit.RemainingAmount) {
			return &ValidationError{Detail: "el monto excede el saldo pendiente"}
		}

		payment := model.Payment{
			CreditID:      credit.ID,
			Amount:        req.Amount,
			PaymentMethod: req.PaymentMethod,
			Notes:         req.Notes,
		}
		if err := s.repo.CreatePaymentTx(tx, &payment); err != nil {
			return err
		}

		remaining := credit.RemainingAmount.Sub(req.Amount)
		status := model.CreditPending
		if remaining.IsZero() {
			status = model.CreditPaid
		}
		return s.repo.UpdateBalanceTx(tx, credit.ID, remaining, status)
	})
	if txErr != nil {
		return nil, txErr
	}

	credit, err := s.repo.FindByID(ctx, creditID)
	if err != nil {
		return nil, err
	}
	return creditToResponse(credit), nil
}

func (s *creditService) ListCredits(ctx context.Context, status string) ([]dto.CreditResponse, error) {
	credits, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CreditResponse, 0, len(credits))
	for i := range credits {
		out = append(out, *creditToResponse(&credits[i]))
	}
	return out, nil
}

// newCreditCode builds a short human-readable reference like CR-1A2B3C4D.
func newCreditCode() string {
	return "CR-" + strings.ToUpper(uuid.NewString()[:8])
}

func creditToResponse(c *model.Credit) *dto.CreditResponse {
	payments := make([]dto.PaymentResponse, 0, len(c.Payments))
	for _, p := range c.Payments {
		payments = append(payments, dto.PaymentResponse{
			ID:            p.ID.String(),
			Amount:        p.Amount,
			PaymentMethod: p.PaymentMethod,
			Notes:         p.Notes,
			CreatedAt:     p.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	return &dto.CreditResponse{
		ID:              c.ID.String(),
		Code:            c.Code,
		ClientName:      c.ClientName,
		ClientPhone:     c.ClientPhone,
		ProductID:       c.ProductID.String(),
		ProductName:     c.ProductName,
		CostPrice:       c.CostPrice,
		Price:           c.Price,
		RemainingAmount: c.RemainingAmount,
		Status:          c.Status,
		DueDate:         c.DueDate.Format("2006-01-02"),
		Notes:           c.Notes,
		Payments:        payments,
		CreatedAt:       c.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
