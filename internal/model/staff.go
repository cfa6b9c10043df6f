package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Staff is a staff member who earns commissions. Commission totals are not
// stored here — they are derived on demand from the sales table.
type Staff struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	Phone     *string
	// No column default so that Active=false survives the INSERT.
	Active    bool `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Staff) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
