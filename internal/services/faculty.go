package services

import (
	"context"

	"github.com/mastergurukulam/apiserver/types"
)

// FacultyRepository defines persistence operations for faculty profiles.
type FacultyRepository interface {
	List(ctx context.Context, offset, limit int) ([]types.Faculty, int, error)
	Get(ctx context.Context, id int) (types.Faculty, error)
	Create(ctx context.Context, member types.Faculty) (types.Faculty, error)
	Update(ctx context.Context, member types.Faculty) (types.Faculty, error)
	Delete(ctx context.Context, id int) error
}

// FacultyService encapsulates faculty use-cases.
type FacultyService struct {
	repo FacultyRepository
}

func NewFacultyService(repo FacultyRepository) *FacultyService {
	return &FacultyService{repo: repo}
}

func (s *FacultyService) List(ctx context.Context, offset, limit int) ([]types.Faculty, int, error) {
	return s.repo.List(ctx, offset, clampLimit(limit))
}

func (s *FacultyService) Get(ctx context.Context, id int) (types.Faculty, error) {
	return s.repo.Get(ctx, id)
}

func (s *FacultyService) Create(ctx context.Context, member types.Faculty) (types.Faculty, error) {
	return s.repo.Create(ctx, member)
}

func (s *FacultyService) Update(ctx context.Context, member types.Faculty) (types.Faculty, error) {
	return s.repo.Update(ctx, member)
}

func (s *FacultyService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
