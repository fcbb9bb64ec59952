package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mastergurukulam/apiserver/types"
)

// FacultyRepository handles persistence for faculty profiles.
type FacultyRepository struct {
	db *sql.DB
}

func NewFacultyRepository(db *sql.DB) *FacultyRepository {
	return &FacultyRepository{db: db}
}

func (r *FacultyRepository) List(ctx context.Context, offset, limit int) ([]types.Faculty, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 20
	}

	const countQuery = `SELECT COUNT(1) FROM faculty`
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, classify(err)
	}

	const listQuery = `
		SELECT id, name, subject, qualification, bio, photo, created_at, updated_at
		FROM faculty
		ORDER BY created_at DESC
		OFFSET $1 LIMIT $2`
	rows, err := r.db.QueryContext(ctx, listQuery, offset, limit)
	if err != nil {
		return nil, 0, classify(err)
	}
	defer rows.Close()

	members := make([]types.Faculty, 0, limit)
	for rows.Next() {
		var member types.Faculty
		if err := rows.Scan(
			&member.ID,
			&member.Name,
			&member.Subject,
			&member.Qualification,
			&member.Bio,
			&member.Photo,
			&member.CreatedAt,
			&member.UpdatedAt,
		); err != nil {
			return nil, 0, classify(err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, classify(err)
	}
	return members, total, nil
}

func (r *FacultyRepository) Get(ctx context.Context, id int) (types.Faculty, error) {
	const query = `
		SELECT id, name, subject, qualification, bio, photo, created_at, updated_at
		FROM faculty
		WHERE id = $1`
	var member types.Faculty
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&member.ID,
		&member.Name,
		&member.Subject,
		&member.Qualification,
		&member.Bio,
		&member.Photo,
		&member.CreatedAt,
		&member.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Faculty{}, ErrNotFound
		}
		return types.Faculty{}, classify(err)
	}
	return member, nil
}

func (r *FacultyRepository) Create(ctx context.Context, member types.Faculty) (types.Faculty, error) {
	now := time.Now()
	member.CreatedAt = now
	member.UpdatedAt = now

	const query = `
		INSERT INTO faculty (name, subject, qualification, bio, photo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		member.Name,
		member.Subject,
		member.Qualification,
		member.Bio,
		member.Photo,
		member.CreatedAt,
		member.UpdatedAt,
	).Scan(&member.ID); err != nil {
		return types.Faculty{}, classify(err)
	}
	return member, nil
}

func (r *FacultyRepository) Update(ctx context.Context, member types.Faculty) (types.Faculty, error) {
	member.UpdatedAt = time.Now()

	const query = `
		UPDATE faculty
		SET name = $1,
			subject = $2,
			qualification = $3,
			bio = $4,
			photo = $5,
			updated_at = $6
		WHERE id = $7`
	result, err := r.db.ExecContext(
		ctx,
		query,
		member.Name,
		member.Subject,
		member.Qualification,
		member.Bio,
		member.Photo,
		member.UpdatedAt,
		member.ID,
	)
	if err != nil {
		return types.Faculty{}, classify(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Faculty{}, err
	}
	if affected == 0 {
		return types.Faculty{}, ErrNotFound
	}
	return member, nil
}

func (r *FacultyRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM faculty WHERE id = $1`
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
