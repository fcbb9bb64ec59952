package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mastergurukulam/apiserver/types"
)

// VideoRepository handles persistence for videos.
type VideoRepository struct {
	db *sql.DB
}

func NewVideoRepository(db *sql.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) List(ctx context.Context, offset, limit int) ([]types.Video, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 20
	}

	const countQuery = `SELECT COUNT(1) FROM videos`
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, classify(err)
	}

	const listQuery = `
		SELECT id, url, type, created_at, updated_at
		FROM videos
		ORDER BY created_at DESC
		OFFSET $1 LIMIT $2`
	rows, err := r.db.QueryContext(ctx, listQuery, offset, limit)
	if err != nil {
		return nil, 0, classify(err)
	}
	defer rows.Close()

	videos := make([]types.Video, 0, limit)
	for rows.Next() {
		var video types.Video
		if err := rows.Scan(
			&video.ID,
			&video.URL,
			&video.Type,
			&video.CreatedAt,
			&video.UpdatedAt,
		); err != nil {
			return nil, 0, classify(err)
		}
		videos = append(videos, video)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, classify(err)
	}
	return videos, total, nil
}

func (r *VideoRepository) Get(ctx context.Context, id int) (types.Video, error) {
	const query = `
		SELECT id, url, type, created_at, updated_at
		FROM videos
		WHERE id = $1`
	var video types.Video
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&video.ID,
		&video.URL,
		&video.Type,
		&video.CreatedAt,
		&video.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Video{}, ErrNotFound
		}
		return types.Video{}, classify(err)
	}
	return video, nil
}

func (r *VideoRepository) Create(ctx context.Context, video types.Video) (types.Video, error) {
	now := time.Now()
	video.CreatedAt = now
	video.UpdatedAt = now

	const query = `
		INSERT INTO videos (url, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		video.URL,
		video.Type,
		video.CreatedAt,
		video.UpdatedAt,
	).Scan(&video.ID); err != nil {
		return types.Video{}, classify(err)
	}
	return video, nil
}

func (r *VideoRepository) Update(ctx context.Context, video types.Video) (types.Video, error) {
	video.UpdatedAt = time.Now()

	const query = `
		UPDATE videos
		SET url = $1,
			type = $2,
			updated_at = $3
		WHERE id = $4`
	result, err := r.db.ExecContext(
		ctx,
		query,
		video.URL,
		video.Type,
		video.UpdatedAt,
		video.ID,
	)
	if err != nil {
		return types.Video{}, classify(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Video{}, err
	}
	if affected == 0 {
		return types.Video{}, ErrNotFound
	}
	return video, nil
}

func (r *VideoRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM videos WHERE id = $1`
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
