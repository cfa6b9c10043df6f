package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sale statuses. A cancelled sale keeps its items and monetary fields so
// historical reports stay auditable; only Status changes.
const (
	SaleCompleted = "completed"
	SaleCancelled = "cancelled"
)

// Payment methods accepted at the register. Anything else is bucketed as
// "other" by the financial report.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
	PaymentOther    = "other"
)

// Sale is one ticket. StaffName is copied from the staff record at creation
// time so renaming a staff member never rewrites historical reports.
// Invariant: Total = Subtotal - Discount, Subtotal = Σ item.Quantity×item.Price.
type Sale struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClientName  string    `gorm:"not null"`
	ClientPhone *string
	StaffID     uuid.UUID `gorm:"type:uuid;index;not null"`
	StaffName   string    `gorm:"not null"`
	// Commission is a percentage (0–100) negotiated per sale.
	Commission    decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	Discount      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PaymentMethod string          `gorm:"not null"`
	Status        string          `gorm:"index;not null;default:'completed'"`
	Notes         *string
	CreatedAt     time.Time `gorm:"index"`

	Items []SaleItem `gorm:"foreignKey:SaleID"`
}

// BeforeCreate assigns the UUID in Go — SQLite has no uuid default.
func (s *Sale) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// SaleItem is created once with its sale and never mutated afterwards.
// ProductName and CostPrice are snapshots taken from the product inside the
// sale transaction; later product edits do not affect them.
type SaleItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SaleID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductName string          `gorm:"not null"`
	Quantity    int             `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CostPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

func (i *SaleItem) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
