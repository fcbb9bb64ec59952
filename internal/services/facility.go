package services

import (
	"context"

	"github.com/mastergurukulam/apiserver/types"
)

// FacilityRepository defines persistence operations for facilities.
type FacilityRepository interface {
	List(ctx context.Context, offset, limit int) ([]types.Facility, int, error)
	Get(ctx context.Context, id int) (types.Facility, error)
	Create(ctx context.Context, facility types.Facility) (types.Facility, error)
	Update(ctx context.Context, facility types.Facility) (types.Facility, error)
	Delete(ctx context.Context, id int) error
}

// FacilityService encapsulates facility use-cases.
type FacilityService struct {
	repo FacilityRepository
}

func NewFacilityService(repo FacilityRepository) *FacilityService {
	return &FacilityService{repo: repo}
}

func (s *FacilityService) List(ctx context.Context, offset, limit int) ([]types.Facility, int, error) {
	return s.repo.List(ctx, offset, clampLimit(limit))
}

func (s *FacilityService) Get(ctx context.Context, id int) (types.Facility, error) {
	return s.repo.Get(ctx, id)
}

func (s *FacilityService) Create(ctx context.Context, facility types.Facility) (types.Facility, error) {
	return s.repo.Create(ctx, facility)
}

func (s *FacilityService) Update(ctx context.Context, facility types.Facility) (types.Facility, error) {
	return s.repo.Update(ctx, facility)
}

func (s *FacilityService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
