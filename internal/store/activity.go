package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/mastergurukulam/apiserver/types"
)

// ActivityRepository handles persistence for activities.
// Image URLs are stored as a JSON array in a single column.
type ActivityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) List(ctx context.Context, offset, limit int) ([]types.Activity, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 20
	}

	const countQuery = `SELECT COUNT(1) FROM activities`
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, classify(err)
	}

	const listQuery = `
		SELECT id, title, description, images, date, type, created_at, updated_at
		FROM activities
		ORDER BY created_at DESC
		OFFSET $1 LIMIT $2`
	rows, err := r.db.QueryContext(ctx, listQuery, offset, limit)
	if err != nil {
		return nil, 0, classify(err)
	}
	defer rows.Close()

	activities := make([]types.Activity, 0, limit)
	for rows.Next() {
		var activity types.Activity
		var imagesJSON []byte
		if err := rows.Scan(
			&activity.ID,
			&activity.Title,
			&activity.Description,
			&imagesJSON,
			&activity.Date,
			&activity.Type,
			&activity.CreatedAt,
			&activity.UpdatedAt,
		); err != nil {
			return nil, 0, classify(err)
		}
		_ = json.Unmarshal(imagesJSON, &activity.Images)
		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, classify(err)
	}
	return activities, total, nil
}

func (r *ActivityRepository) Get(ctx context.Context, id int) (types.Activity, error) {
	const query = `
		SELECT id, title, description, images, date, type, created_at, updated_at
		FROM activities
		WHERE id = $1`
	var activity types.Activity
	var imagesJSON []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&activity.ID,
		&activity.Title,
		&activity.Description,
		&imagesJSON,
		&activity.Date,
		&activity.Type,
		&activity.CreatedAt,
		&activity.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Activity{}, ErrNotFound
		}
		return types.Activity{}, classify(err)
	}
	_ = json.Unmarshal(imagesJSON, &activity.Images)
	return activity, nil
}

func (r *ActivityRepository) Create(ctx context.Context, activity types.Activity) (types.Activity, error) {
	now := time.Now()
	activity.CreatedAt = now
	activity.UpdatedAt = now

	imagesJSON, err := json.Marshal(activity.Images)
	if err != nil {
		return types.Activity{}, err
	}

	const query = `
		INSERT INTO activities (title, description, images, date, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		activity.Title,
		activity.Description,
		imagesJSON,
		activity.Date,
		activity.Type,
		activity.CreatedAt,
		activity.UpdatedAt,
	).Scan(&activity.ID); err != nil {
		return types.Activity{}, classify(err)
	}
	return activity, nil
}

func (r *ActivityRepository) Update(ctx context.Context, activity types.Activity) (types.Activity, error) {
	activity.UpdatedAt = time.Now()

	imagesJSON, err := json.Marshal(activity.Images)
	if err != nil {
		return types.Activity{}, err
	}

	const query = `
		UPDATE activities
		SET title = $1,
			description = $2,
			images = $3,
			date = $4,
			type = $5,
			updated_at = $6
		WHERE id = $7`
	result, err := r.db.ExecContext(
		ctx,
		query,
		activity.Title,
		activity.Description,
		imagesJSON,
		activity.Date,
		activity.Type,
		activity.UpdatedAt,
		activity.ID,
	)
	if err != nil {
		return types.Activity{}, classify(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Activity{}, err
	}
	if affected == 0 {
		return types.Activity{}, ErrNotFound
	}
	return activity, nil
}

func (r *ActivityRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM activities WHERE id = $1`
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
