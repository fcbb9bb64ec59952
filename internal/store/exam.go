package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mastergurukulam/apiserver/types"
)

// ExamRepository handles persistence for exams.
type ExamRepository struct {
	db *sql.DB
}

func NewExamRepository(db *sql.DB) *ExamRepository {
	return &ExamRepository{db: db}
}

const examColumns = `id, title, description, banner, registration_start_date, registration_end_date,
		exam_fee, is_registration_open, result_published, result_link, answer_book_link,
		created_at, updated_at`

func scanExamRow(scan func(...any) error) (types.Exam, error) {
	var exam types.Exam
	err := scan(
		&exam.ID,
		&exam.Title,
		&exam.Description,
		&exam.Banner,
		&exam.RegistrationStartDate,
		&exam.RegistrationEndDate,
		&exam.ExamFee,
		&exam.IsRegistrationOpen,
		&exam.ResultPublished,
		&exam.ResultLink,
		&exam.AnswerBookLink,
		&exam.CreatedAt,
		&exam.UpdatedAt,
	)
	return exam, err
}

func (r *ExamRepository) List(ctx context.Context, offset, limit int) ([]types.Exam, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 20
	}

	const countQuery = `SELECT COUNT(1) FROM exams`
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, classify(err)
	}

	const listQuery = `
		SELECT ` + examColumns + `
		FROM exams
		ORDER BY created_at DESC
		OFFSET $1 LIMIT $2`
	rows, err := r.db.QueryContext(ctx, listQuery, offset, limit)
	if err != nil {
		return nil, 0, classify(err)
	}
	defer rows.Close()

	exams := make([]types.Exam, 0, limit)
	for rows.Next() {
		exam, err := scanExamRow(rows.Scan)
		if err != nil {
			return nil, 0, classify(err)
		}
		exams = append(exams, exam)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, classify(err)
	}
	return exams, total, nil
}

func (r *ExamRepository) Get(ctx context.Context, id int) (types.Exam, error) {
	const query = `
		SELECT ` + examColumns + `
		FROM exams
		WHERE id = $1`
	exam, err := scanExamRow(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Exam{}, ErrNotFound
		}
		return types.Exam{}, classify(err)
	}
	return exam, nil
}

func (r *ExamRepository) Create(ctx context.Context, exam types.Exam) (types.Exam, error) {
	now := time.Now()
	exam.CreatedAt = now
	exam.UpdatedAt = now

	const query = `
		INSERT INTO exams (title, description, banner, registration_start_date, registration_end_date,
			exam_fee, is_registration_open, result_published, result_link, answer_book_link,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		exam.Title,
		exam.Description,
		exam.Banner,
		exam.RegistrationStartDate,
		exam.RegistrationEndDate,
		exam.ExamFee,
		exam.IsRegistrationOpen,
		exam.ResultPublished,
		exam.ResultLink,
		exam.AnswerBookLink,
		exam.CreatedAt,
		exam.UpdatedAt,
	).Scan(&exam.ID); err != nil {
		return types.Exam{}, classify(err)
	}
	return exam, nil
}

func (r *ExamRepository) Update(ctx context.Context, exam types.Exam) (types.Exam, error) {
	exam.UpdatedAt = time.Now()

	const query = `
		UPDATE exams
		SET title = $1,
			description = $2,
			banner = $3,
			registration_start_date = $4,
			registration_end_date = $5,
			exam_fee = $6,
			is_registration_open = $7,
			result_published = $8,
			result_link = $9,
			answer_book_link = $10,
			updated_at = $11
		WHERE id = $12`
	result, err := r.db.ExecContext(
		ctx,
		query,
		exam.Title,
		exam.Description,
		exam.Banner,
		exam.RegistrationStartDate,
		exam.RegistrationEndDate,
		exam.ExamFee,
		exam.IsRegistrationOpen,
		exam.ResultPublished,
		exam.ResultLink,
		exam.AnswerBookLink,
		exam.UpdatedAt,
		exam.ID,
	)
	if err != nil {
		return types.Exam{}, classify(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Exam{}, err
	}
	if affected == 0 {
		return types.Exam{}, ErrNotFound
	}
	return exam, nil
}

func (r *ExamRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM exams WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return classify(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
