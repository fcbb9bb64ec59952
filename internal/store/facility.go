package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mastergurukulam/apiserver/types"
)

// FacilityRepository handles persistence for facilities.
type FacilityRepository struct {
	db *sql.DB
}

func NewFacilityRepository(db *sql.DB) *FacilityRepository {
	return &FacilityRepository{db: db}
}

func (r *FacilityRepository) List(ctx context.Context, offset, limit int) ([]types.Facility, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 20
	}

	const countQuery = `SELECT COUNT(1) FROM facilities`
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, classify(err)
	}

	const listQuery = `
		SELECT id, name, description, image, created_at, updated_at
		FROM facilities
		ORDER BY created_at DESC
		OFFSET $1 LIMIT $2`
	rows, err := r.db.QueryContext(ctx, listQuery, offset, limit)
	if err != nil {
		return nil, 0, classify(err)
	}
	defer rows.Close()

	facilities := make([]types.Facility, 0, limit)
	for rows.Next() {
		var facility types.Facility
		if err := rows.Scan(
			&facility.ID,
			&facility.Name,
			&facility.Description,
			&facility.Image,
			&facility.CreatedAt,
			&facility.UpdatedAt,
		); err != nil {
			return nil, 0, classify(err)
		}
		facilities = append(facilities, facility)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, classify(err)
	}
	return facilities, total, nil
}

func (r *FacilityRepository) Get(ctx context.Context, id int) (types.Facility, error) {
	const query = `
		SELECT id, name, description, image, created_at, updated_at
		FROM facilities
		WHERE id = $1`
	var facility types.Facility
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&facility.ID,
		&facility.Name,
		&facility.Description,
		&facility.Image,
		&facility.CreatedAt,
		&facility.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Facility{}, ErrNotFound
		}
		return types.Facility{}, classify(err)
	}
	return facility, nil
}

func (r *FacilityRepository) Create(ctx context.Context, facility types.Facility) (types.Facility, error) {
	now := time.Now()
	facility.CreatedAt = now
	facility.UpdatedAt = now

	const query = `
		INSERT INTO facilities (name, description, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		facility.Name,
		facility.Description,
		facility.Image,
		facility.CreatedAt,
		facility.UpdatedAt,
	).Scan(&facility.ID); err != nil {
		return types.Facility{}, classify(err)
	}
	return facility, nil
}

func (r *FacilityRepository) Update(ctx context.Context, facility types.Facility) (types.Facility, error) {
	facility.UpdatedAt = time.Now()

	const query = `
		UPDATE facilities
		SET name = $1,
			description = $2,
			image = $3,
			updated_at = $4
		WHERE id = $5`
	result, err := r.db.ExecContext(
		ctx,
		query,
		facility.Name,
		facility.Description,
		facility.Image,
		facility.UpdatedAt,
		facility.ID,
	)
	if err != nil {
		return types.Facility{}, classify(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Facility{}, err
	}
	if affected == 0 {
		return types.Facility{}, ErrNotFound
	}
	return facility, nil
}

func (r *FacilityRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM facilities WHERE id = $1`
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
