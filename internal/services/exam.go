package services

import (
	"context"

	"github.com/mastergurukulam/apiserver/types"
)

// ExamRepository defines persistence operations for exams.
type ExamRepository interface {
	List(ctx context.Context, offset, limit int) ([]types.Exam, int, error)
	Get(ctx context.Context, id int) (types.Exam, error)
	Create(ctx context.Context, exam types.Exam) (types.Exam, error)
	Update(ctx context.Context, exam types.Exam) (types.Exam, error)
	Delete(ctx context.Context, id int) error
}

// ExamService encapsulates exam use-cases.
type ExamService struct {
	repo ExamRepository
}

func NewExamService(repo ExamRepository) *ExamService {
	return &ExamService{repo: repo}
}

func (s *ExamService) List(ctx context.Context, offset, limit int) ([]types.Exam, int, error) {
	return s.repo.List(ctx, offset, clampLimit(limit))
}

func (s *ExamService) Get(ctx context.Context, id int) (types.Exam, error) {
	return s.repo.Get(ctx, id)
}

func (s *ExamService) Create(ctx context.Context, exam types.Exam) (types.Exam, error) {
	return s.repo.Create(ctx, exam)
}

func (s *ExamService) Update(ctx context.Context, exam types.Exam) (types.Exam, error) {
	return s.repo.Update(ctx, exam)
}

func (s *ExamService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
