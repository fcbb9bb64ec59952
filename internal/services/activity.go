package services

import (
	"context"

	"github.com/mastergurukulam/apiserver/types"
)

// ActivityRepository defines persistence operations for activities.
type ActivityRepository interface {
	List(ctx context.Context, offset, limit int) ([]types.Activity, int, error)
	Get(ctx context.Context, id int) (types.Activity, error)
	Create(ctx context.Context, activity types.Activity) (types.Activity, error)
	Update(ctx context.Context, activity types.Activity) (types.Activity, error)
	Delete(ctx context.Context, id int) error
}

// ActivityService encapsulates activity use-cases.
type ActivityService struct {
	repo ActivityRepository
}

func NewActivityService(repo ActivityRepository) *ActivityService {
	return &ActivityService{repo: repo}
}

func (s *ActivityService) List(ctx context.Context, offset, limit int) ([]types.Activity, int, error) {
	return s.repo.List(ctx, offset, clampLimit(limit))
}

func (s *ActivityService) Get(ctx context.Context, id int) (types.Activity, error) {
	return s.repo.Get(ctx, id)
}

func (s *ActivityService) Create(ctx context.Context, activity types.Activity) (types.Activity, error) {
	return s.repo.Create(ctx, activity)
}

func (s *ActivityService) Update(ctx context.Context, activity types.Activity) (types.Activity, error) {
	return s.repo.Update(ctx, activity)
}

func (s *ActivityService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
