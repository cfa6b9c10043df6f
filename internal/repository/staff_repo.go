package repository

import (
	"context"

	"github.com/emerpc1992/horale/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StaffRepository interface {
	Create(ctx context.Context, s *model.Staff) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Staff, error)
	List(ctx context.Context, includeInactive bool) ([]model.Staff, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type staffRepo struct{ db *gorm.DB }

func NewStaffRepository(db *gorm.DB) StaffRepository { return &staffRepo{db: db} }

func (r *staffRepo) Create(ctx context.Context, s *model.Staff) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *staffRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Staff, error) {
	var s model.Staff
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return &s, err
}

func (r *staffRepo) List(ctx context.Context, includeInactive bool) ([]model.Staff, error) {
	var staff []model.Staff
	q := r.db.WithContext(ctx).Order("name ASC")
	if !includeInactive {
		q = q.Where("active = ?", true)
	}
	err := q.Find(&staff).Error
	return staff, err
}

func (r *staffRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Staff{}).Where("id = ?", id).Update("active", false).Error
}
