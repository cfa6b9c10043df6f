package repository

import (
	"context"

	"github.com/emerpc1992/horale/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExpenseRepository interface {
	Create(ctx context.Context, e *model.Expense) error
	List(ctx context.Context) ([]model.Expense, error)
	// ListTx scans within the financial report's read transaction.
	ListTx(tx *gorm.DB) ([]model.Expense, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type expenseRepo struct{ db *gorm.DB }

func NewExpenseRepository(db *gorm.DB) ExpenseRepository { return &expenseRepo{db: db} }

func (r *expenseRepo) Create(ctx context.Context, e *model.Expense) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *expenseRepo) List(ctx context.Context) ([]model.Expense, error) {
	var expenses []model.Expense
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepo) ListTx(tx *gorm.DB) ([]model.Expense, error) {
	var expenses []model.Expense
	err := tx.Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Expense{}, "id = ?", id).Error
}
