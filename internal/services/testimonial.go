package services

import (
	"context"

	"github.com/mastergurukulam/apiserver/types"
)

// TestimonialRepository defines persistence operations for testimonials.
type TestimonialRepository interface {
	List(ctx context.Context, offset, limit int) ([]types.Testimonial, int, error)
	Get(ctx context.Context, id int) (types.Testimonial, error)
	Create(ctx context.Context, testimonial types.Testimonial) (types.Testimonial, error)
	Update(ctx context.Context, testimonial types.Testimonial) (types.Testimonial, error)
	Delete(ctx context.Context, id int) error
}

// TestimonialService encapsulates testimonial use-cases.
type TestimonialService struct {
	repo TestimonialRepository
}

func NewTestimonialService(repo TestimonialRepository) *TestimonialService {
	return &TestimonialService{repo: repo}
}

func (s *TestimonialService) List(ctx context.Context, offset, limit int) ([]types.Testimonial, int, error) {
	return s.repo.List(ctx, offset, clampLimit(limit))
}

func (s *TestimonialService) Get(ctx context.Context, id int) (types.Testimonial, error) {
	return s.repo.Get(ctx, id)
}

func (s *TestimonialService) Create(ctx context.Context, testimonial types.Testimonial) (types.Testimonial, error) {
	return s.repo.Create(ctx, testimonial)
}

func (s *TestimonialService) Update(ctx context.Context, testimonial types.Testimonial) (types.Testimonial, error) {
	return s.repo.Update(ctx, testimonial)
}

func (s *TestimonialService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
