package repository

import (
	"context"

	"github.com/emerpc1992/horale/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreditRepository interface {
	Create(ctx context.Context, c *model.Credit) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Credit, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Credit, error)
	List(ctx context.Context, status string) ([]model.Credit, error)
	CreatePaymentTx(tx *gorm.DB, p *model.Payment) error
	UpdateBalanceTx(tx *gorm.DB, id uuid.UUID, remaining decimal.Decimal, status string) error
	DB() *gorm.DB
}

type creditRepo struct{ db *gorm.DB }

func NewCreditRepository(db *gorm.DB) CreditRepository { return &creditRepo{db: db} }

func (r *creditRepo) DB() *gorm.DB { return r.db }

func (r *creditRepo) Create(ctx context.Context, c *model.Credit) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *creditRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Credit, error) {
	var c model.Credit
	err := r.db.WithContext(ctx).Preload("Payments").First(&c, "id = ?", id).Error
	return &c, err
}

func (r *creditRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Credit, error) {
	var c model.Credit
	err := tx.Preload("Payments").First(&c, "id = ?", id).Error
	return &c, err
}

func (r *creditRepo) List(ctx context.Context, status string) ([]model.Credit, error) {
	var credits []model.Credit
	q := r.db.WithContext(ctx).Preload("Payments").Order("created_at DESC")
	if status != "" && status != "all" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&credits).Error
	return credits, err
}

func (r *creditRepo) CreatePaymentTx(tx *gorm.DB, p *model.Payment) error {
	return tx.Create(p).Error
}

func (r *creditRepo) UpdateBalanceTx(tx *gorm.DB, id uuid.UUID, remaining decimal.Decimal, status string) error {
	return tx.Model(&model.Credit{}).Where("id = ?", id).Updates(map[string]interface{}{
		"remaining_amount": remaining,
		"status":           status,
	}).Error
}
