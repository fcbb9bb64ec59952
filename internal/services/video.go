package services

import (
	"context"

	"github.com/mastergurukulam/apiserver/types"
)

// VideoRepository defines persistence operations for videos.
type VideoRepository interface {
	List(ctx context.Context, offset, limit int) ([]types.Video, int, error)
	Get(ctx context.Context, id int) (types.Video, error)
	Create(ctx context.Context, video types.Video) (types.Video, error)
	Update(ctx context.Context, video types.Video) (types.Video, error)
	Delete(ctx context.Context, id int) error
}

// VideoService encapsulates video use-cases.
type VideoService struct {
	repo VideoRepository
}

func NewVideoService(repo VideoRepository) *VideoService {
	return &VideoService{repo: repo}
}

func (s *VideoService) List(ctx context.Context, offset, limit int) ([]types.Video, int, error) {
	return s.repo.List(ctx, offset, clampLimit(limit))
}

func (s *VideoService) Get(ctx context.Context, id int) (types.Video, error) {
	return s.repo.Get(ctx, id)
}

func (s *VideoService) Create(ctx context.Context, video types.Video) (types.Video, error) {
	return s.repo.Create(ctx, video)
}

func (s *VideoService) Update(ctx context.Context, video types.Video) (types.Video, error) {
	return s.repo.Update(ctx, video)
}

func (s *VideoService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
