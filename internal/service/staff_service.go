package service

import (
	"context"

	"github.com/emerpc1992/horale/internal/dto"
	"github.com/emerpc1992/horale/internal/model"
	"github.com/emerpc1992/horale/internal/repository"

	"github.com/google/uuid"
)

type StaffService interface {
	Create(ctx context.Context, req dto.CreateStaffRequest) (*dto.StaffResponse, error)
	List(ctx context.Context, includeInactive bool) ([]dto.StaffResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type staffService struct {
	repo repository.StaffRepository
}

func NewStaffService(repo repository.StaffRepository) StaffService {
	return &staffService{repo: repo}
}

func (s *staffService) Create(ctx context.Context, req dto.CreateStaffRequest) (*dto.StaffResponse, error) {
	member := model.Staff{Name: req.Name, Phone: req.Phone, Active: true}
	if err := s.repo.Create(ctx, &member); err != nil {
		return nil, err
	}
	return staffToResponse(&member), nil
}

func (s *staffService) List(ctx context.Context, includeInactive bool) ([]dto.StaffResponse, error) {
	staff, err := s.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StaffResponse, 0, len(staff))
	for i := range staff {
		out = append(out, *staffToResponse(&staff[i]))
	}
	return out, nil
}

// Deactivate hides the staff member from new sales. Historical sales keep
// the denormalized staff name, so reports are unaffected.
func (s *staffService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrStaffNotFound
	}
	return s.repo.Deactivate(ctx, id)
}

func staffToResponse(m *model.Staff) *dto.StaffResponse {
	return &dto.StaffResponse{
		ID:        m.ID.String(),
		Name:      m.Name,
		Phone:     m.Phone,
		Active:    m.Active,
		CreatedAt: m.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
