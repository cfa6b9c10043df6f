package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Credit statuses.
const (
	CreditPending = "pending"
	CreditPaid    = "paid"
)

// Credit is a product handed over on credit, paid off in installments.
// ProductName and CostPrice are snapshots taken at creation time, same
// capture-at-mutation rule as SaleItem.
type Credit struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code            string    `gorm:"uniqueIndex;not null"`
	ClientName      string    `gorm:"not null"`
	ClientPhone     string
	ProductID       uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductName     string          `gorm:"not null"`
	CostPrice       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	RemainingAmount decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Status          string          `gorm:"index;not null;default:'pending'"`
	DueDate         time.Time
	Notes           *string
	CreatedAt       time.Time

	Payments []Payment `gorm:"foreignKey:CreditID"`
}

func (c *Credit) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Payment is one installment against a credit.
type Payment struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CreditID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PaymentMethod string          `gorm:"not null"`
	Notes         *string
	CreatedAt     time.Time
}

func (p *Payment) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
