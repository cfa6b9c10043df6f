package service

import (
	"context"

	"github.com/emerpc1992/horale/internal/cache"
	"github.com/emerpc1992/horale/internal/dto"
	"github.com/emerpc1992/horale/internal/model"
	"github.com/emerpc1992/horale/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CommissionService interface {
	ComputeStaffCommissions(ctx context.Context, staffID uuid.UUID, discounts []dto.CommissionDiscount) (*dto.CommissionReport, error)
	ClearStaffCommissions(ctx context.Context, staffID uuid.UUID) (int64, error)
}

type commissionService struct {
	saleRepo  repository.SaleRepository
	staffRepo repository.StaffRepository
	summaries *cache.SummaryCache
}

func NewCommissionService(
	saleRepo repository.SaleRepository,
	staffRepo repository.StaffRepository,
	summaries *cache.SummaryCache,
) CommissionService {
	return &commissionService{saleRepo: saleRepo, staffRepo: staffRepo, summaries: summaries}
}

var oneHundred = decimal.NewFromInt(100)

// ComputeStaffCommissions sums a staff member's completed sales and applies
// the session's ad-hoc discounts. Each sale carries its own negotiated rate,
// so the commission is evaluated per sale. Discounts are transient — they
// live only in this report, never in the store — and there is no floor at
// zero: a discount larger than the gross commission yields a negative final
// commission on purpose.
func (s *commissionService) ComputeStaffCommissions(ctx context.Context, staffID uuid.UUID, discounts []dto.CommissionDiscount) (*dto.CommissionReport, error) {
	staff, err := s.staffRepo.FindByID(ctx, staffID)
	if err != nil {
		return nil, ErrStaffNotFound
	}
	for _, d := range discounts {
		if !d.Amount.IsPositive() {
			return nil, &ValidationError{Detail: "el monto del descuento debe ser mayor a cero"}
		}
	}

	sales, err := s.saleRepo.ListByStaff(ctx, staffID, model.SaleCompleted)
	if err != nil {
		return nil, err
	}

	totalSales := decimal.Zero
	totalCommission := decimal.Zero
	lines := make([]dto.CommissionSaleLine, 0, len(sales))
	for _, sale := range sales {
		commission := sale.Total.Mul(sale.Commission).Div(oneHundred)
		totalSales = totalSales.Add(sale.Total)
		totalCommission = totalCommission.Add(commission)
		lines = append(lines, dto.CommissionSaleLine{
			SaleID:     sale.ID.String(),
			ClientName: sale.ClientName,
			Total:      sale.Total,
			Rate:       sale.Commission,
			Commission: commission,
			CreatedAt:  sale.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}

	totalDiscounts := decimal.Zero
	for _, d := range discounts {
		totalDiscounts = totalDiscounts.Add(d.Amount)
	}

	if discounts == nil {
		discounts = []dto.CommissionDiscount{}
	}
	return &dto.CommissionReport{
		StaffID:         staff.ID.String(),
		StaffName:       staff.Name,
		TotalSales:      totalSales,
		TotalCommission: totalCommission,
		TotalDiscounts:  totalDiscounts,
		FinalCommission: totalCommission.Sub(totalDiscounts),
		Sales:           lines,
		Discounts:       discounts,
	}, nil
}

// ClearStaffCommissions zeroes the commission percentage on every sale of
// the staff member, completed and cancelled alike. This rewrites historical
// rows irreversibly; the HTTP boundary demands explicit confirmation before
// calling in here.
func (s *commissionService) ClearStaffCommissions(ctx context.Context, staffID uuid.UUID) (int64, error) {
	if _, err := s.staffRepo.FindByID(ctx, staffID); err != nil {
		return 0, ErrStaffNotFound
	}

	var cleared int64
	txErr := runTx(ctx, s.saleRepo.DB(), func(tx *gorm.DB) error {
		n, err := s.saleRepo.ClearCommissionsTx(tx, staffID)
		cleared = n
		return err
	})
	if txErr != nil {
		return 0, txErr
	}

	s.summaries.Invalidate(ctx)
	return cleared, nil
}
