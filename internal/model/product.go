package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is the catalog entry. Stock is only mutated through guarded
// UPDATE ... SET stock = stock ± n statements inside sale transactions, so
// it can never go below zero.
type Product struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"index;not null"`
	Category  string    `gorm:"not null;default:'Otros'"`
	CostPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock     int             `gorm:"not null;default:0"`
	MinStock  int             `gorm:"not null;default:5"`
	// No column default so that Active=false survives the INSERT.
	Active    bool            `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Product) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
