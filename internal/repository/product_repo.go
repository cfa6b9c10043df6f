package repository

import (
	"context"

	"github.com/emerpc1992/horale/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository defines the data access contract for the catalog.
// Services depend on this interface, not on the concrete GORM implementation.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context, includeInactive bool) ([]model.Product, error)
	ListLowStock(ctx context.Context) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	Deactivate(ctx context.Context, id uuid.UUID) error

	// DecrementStockTx decrements stock inside a transaction, guarded so the
	// row is only touched when enough stock exists at the moment of the
	// UPDATE. Returns false when the guard rejected the decrement.
	DecrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) (bool, error)
	// AddStockTx applies an additive stock delta inside a transaction
	// (cancellation restore, manual adjustment).
	AddStockTx(tx *gorm.DB, id uuid.UUID, delta int) error

	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) DB() *gorm.DB { return r.db }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := tx.First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productRepo) List(ctx context.Context, includeInactive bool) ([]model.Product, error) {
	var products []model.Product
	q := r.db.WithContext(ctx).Order("name ASC")
	if !includeInactive {
		q = q.Where("active = ?", true)
	}
	err := q.Find(&products).Error
	return products, err
}

func (r *productRepo) ListLowStock(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("active = ? AND stock <= min_stock", true).
		Order("stock ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Update("active", false).Error
}

func (r *productRepo) DecrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) (bool, error) {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND stock >= ?", id, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *productRepo) AddStockTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.Product{}).Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", delta)).Error
}
