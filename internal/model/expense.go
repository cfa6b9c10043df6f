package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ExpenseDefaultCategory buckets expenses recorded without a category.
const ExpenseDefaultCategory = "Otros"

// Expense is an operating expense. Read-only to the financial report.
type Expense struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Category    string    `gorm:"index;not null;default:'Otros'"`
	Description *string
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time       `gorm:"index"`
}

func (e *Expense) BeforeCreate(_ *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
