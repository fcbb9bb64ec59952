package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mastergurukulam/apiserver/types"
)

// CourseRepository handles persistence for courses.
type CourseRepository struct {
	db *sql.DB
}

func NewCourseRepository(db *sql.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) List(ctx context.Context, offset, limit int) ([]types.Course, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 20
	}

	const countQuery = `SELECT COUNT(1) FROM courses`
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, classify(err)
	}

	const listQuery = `
		SELECT id, title, duration, description, created_at, updated_at
		FROM courses
		ORDER BY created_at DESC
		OFFSET $1 LIMIT $2`
	rows, err := r.db.QueryContext(ctx, listQuery, offset, limit)
	if err != nil {
		return nil, 0, classify(err)
	}
	defer rows.Close()

	courses := make([]types.Course, 0, limit)
	for rows.Next() {
		var course types.Course
		if err := rows.Scan(
			&course.ID,
			&course.Title,
			&course.Duration,
			&course.Description,
			&course.CreatedAt,
			&course.UpdatedAt,
		); err != nil {
			return nil, 0, classify(err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, classify(err)
	}
	return courses, total, nil
}

func (r *CourseRepository) Get(ctx context.Context, id int) (types.Course, error) {
	const query = `
		SELECT id, title, duration, description, created_at, updated_at
		FROM courses
		WHERE id = $1`
	var course types.Course
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&course.ID,
		&course.Title,
		&course.Duration,
		&course.Description,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Course{}, ErrNotFound
		}
		return types.Course{}, classify(err)
	}
	return course, nil
}

func (r *CourseRepository) Create(ctx context.Context, course types.Course) (types.Course, error) {
	now := time.Now()
	course.CreatedAt = now
	course.UpdatedAt = now

	const query = `
		INSERT INTO courses (title, duration, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		course.Title,
		course.Duration,
		course.Description,
		course.CreatedAt,
		course.UpdatedAt,
	).Scan(&course.ID); err != nil {
		return types.Course{}, classify(err)
	}
	return course, nil
}

func (r *CourseRepository) Update(ctx context.Context, course types.Course) (types.Course, error) {
	course.UpdatedAt = time.Now()

	const query = `
		UPDATE courses
		SET title = $1,
			duration = $2,
			description = $3,
			updated_at = $4
		WHERE id = $5`
	result, err := r.db.ExecContext(
		ctx,
		query,
		course.Title,
		course.Duration,
		course.Description,
		course.UpdatedAt,
		course.ID,
	)
	if err != nil {
		return types.Course{}, classify(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Course{}, err
	}
	if affected == 0 {
		return types.Course{}, ErrNotFound
	}
	return course, nil
}

func (r *CourseRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM courses WHERE id = $1`
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
