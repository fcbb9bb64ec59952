package services

import (
	"context"

	"github.com/mastergurukulam/apiserver/types"
)

// CourseRepository defines persistence operations for courses.
type CourseRepository interface {
	List(ctx context.Context, offset, limit int) ([]types.Course, int, error)
	Get(ctx context.Context, id int) (types.Course, error)
	Create(ctx context.Context, course types.Course) (types.Course, error)
	Update(ctx context.Context, course types.Course) (types.Course, error)
	Delete(ctx context.Context, id int) error
}

// CourseService encapsulates course use-cases.
type CourseService struct {
	repo CourseRepository
}

func NewCourseService(repo CourseRepository) *CourseService {
	return &CourseService{repo: repo}
}

func (s *CourseService) List(ctx context.Context, offset, limit int) ([]types.Course, int, error) {
	return s.repo.List(ctx, offset, clampLimit(limit))
}

func (s *CourseService) Get(ctx context.Context, id int) (types.Course, error) {
	return s.repo.Get(ctx, id)
}

func (s *CourseService) Create(ctx context.Context, course types.Course) (types.Course, error) {
	return s.repo.Create(ctx, course)
}

func (s *CourseService) Update(ctx context.Context, course types.Course) (types.Course, error) {
	return s.repo.Update(ctx, course)
}

func (s *CourseService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 10
	}
	if limit > 100 {
		return 100
	}
	return limit
}
