package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mastergurukulam/apiserver/types"
)

// TestimonialRepository handles persistence for testimonials.
type TestimonialRepository struct {
	db *sql.DB
}

func NewTestimonialRepository(db *sql.DB) *TestimonialRepository {
	return &TestimonialRepository{db: db}
}

func (r *TestimonialRepository) List(ctx context.Context, offset, limit int) ([]types.Testimonial, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 20
	}

	const countQuery = `SELECT COUNT(1) FROM testimonials`
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, classify(err)
	}

	const listQuery = `
		SELECT id, name, course, feedback, image, created_at, updated_at
		FROM testimonials
		ORDER BY created_at DESC
		OFFSET $1 LIMIT $2`
	rows, err := r.db.QueryContext(ctx, listQuery, offset, limit)
	if err != nil {
		return nil, 0, classify(err)
	}
	defer rows.Close()

	testimonials := make([]types.Testimonial, 0, limit)
	for rows.Next() {
		var testimonial types.Testimonial
		if err := rows.Scan(
			&testimonial.ID,
			&testimonial.Name,
			&testimonial.Course,
			&testimonial.Feedback,
			&testimonial.Image,
			&testimonial.CreatedAt,
			&testimonial.UpdatedAt,
		); err != nil {
			return nil, 0, classify(err)
		}
		testimonials = append(testimonials, testimonial)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, classify(err)
	}
	return testimonials, total, nil
}

func (r *TestimonialRepository) Get(ctx context.Context, id int) (types.Testimonial, error) {
	const query = `
		SELECT id, name, course, feedback, image, created_at, updated_at
		FROM testimonials
		WHERE id = $1`
	var testimonial types.Testimonial
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&testimonial.ID,
		&testimonial.Name,
		&testimonial.Course,
		&testimonial.Feedback,
		&testimonial.Image,
		&testimonial.CreatedAt,
		&testimonial.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Testimonial{}, ErrNotFound
		}
		return types.Testimonial{}, classify(err)
	}
	return testimonial, nil
}

func (r *TestimonialRepository) Create(ctx context.Context, testimonial types.Testimonial) (types.Testimonial, error) {
	now := time.Now()
	testimonial.CreatedAt = now
	testimonial.UpdatedAt = now

	const query = `
		INSERT INTO testimonials (name, course, feedback, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		testimonial.Name,
		testimonial.Course,
		testimonial.Feedback,
		testimonial.Image,
		testimonial.CreatedAt,
		testimonial.UpdatedAt,
	).Scan(&testimonial.ID); err != nil {
		return types.Testimonial{}, classify(err)
	}
	return testimonial, nil
}

func (r *TestimonialRepository) Update(ctx context.Context, testimonial types.Testimonial) (types.Testimonial, error) {
	testimonial.UpdatedAt = time.Now()

	const query = `
		UPDATE testimonials
		SET name = $1,
			course = $2,
			feedback = $3,
			image = $4,
			updated_at = $5
		WHERE id = $6`
	result, err := r.db.ExecContext(
		ctx,
		query,
		testimonial.Name,
		testimonial.Course,
		testimonial.Feedback,
		testimonial.Image,
		testimonial.UpdatedAt,
		testimonial.ID,
	)
	if err != nil {
		return types.Testimonial{}, classify(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Testimonial{}, err
	}
	if affected == 0 {
		return types.Testimonial{}, ErrNotFound
	}
	return testimonial, nil
}

func (r *TestimonialRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM testimonials WHERE id = $1`
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
