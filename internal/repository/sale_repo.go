package repository

import (
	"context"

	"github.com/emerpc1992/horale/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error
	CreateItemTx(tx *gorm.DB, item *model.SaleItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context) ([]model.Sale, error)
	ListByStaff(ctx context.Context, staffID uuid.UUID, status string) ([]model.Sale, error)
	// ListByStatusTx scans within a transaction so the financial report sees
	// one consistent snapshot.
	ListByStatusTx(tx *gorm.DB, status string) ([]model.Sale, error)
	UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error
	// ClearCommissionsTx zeroes the commission of every sale of the given
	// staff member, any status. Returns the number of rows rewritten.
	ClearCommissionsTx(tx *gorm.DB, staffID uuid.UUID) (int64, error)
	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error {
	return tx.WithContext(ctx).Create(s).Error
}

func (r *saleRepo) CreateItemTx(tx *gorm.DB, item *model.SaleItem) error {
	return tx.Create(item).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).Preload("Items").First(&s, "id = ?", id).Error
	return &s, err
}

func (r *saleRepo) List(ctx context.Context) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).Preload("Items").
		Order("created_at DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) ListByStaff(ctx context.Context, staffID uuid.UUID, status string) ([]model.Sale, error) {
	var sales []model.Sale
	q := r.db.WithContext(ctx).Where("staff_id = ?", staffID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("created_at DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) ListByStatusTx(tx *gorm.DB, status string) ([]model.Sale, error) {
	var sales []model.Sale
	err := tx.Preload("Items").Where("status = ?", status).Find(&sales).Error
	return sales, err
}

func (r *saleRepo) UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error {
	return tx.Model(&model.Sale{}).Where("id = ?", id).Update("status", status).Error
}

func (r *saleRepo) ClearCommissionsTx(tx *gorm.DB, staffID uuid.UUID) (int64, error) {
	res := tx.Model(&model.Sale{}).Where("staff_id = ?", staffID).Update("commission", 0)
	return res.RowsAffected, res.Error
}
