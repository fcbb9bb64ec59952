package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/mastergurukulam/apiserver/types"
)

// AdminRepository handles persistence for admin accounts.
//
// Username and email uniqueness is enforced case-insensitively by unique
// indexes over lower(username) and lower(email); concurrent creators race
// safely and the loser observes ErrDuplicate.
type AdminRepository struct {
	db *sql.DB
}

func NewAdminRepository(db *sql.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

const adminColumns = `id, username, email, role, password_hash, created_at, updated_at`

func scanAdmin(row *sql.Row) (types.Admin, error) {
	var admin types.Admin
	err := row.Scan(
		&admin.ID,
		&admin.Username,
		&admin.Email,
		&admin.Role,
		&admin.PasswordHash,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Admin{}, ErrNotFound
		}
		return types.Admin{}, classify(err)
	}
	return admin, nil
}

func (r *AdminRepository) GetByID(ctx context.Context, id int) (types.Admin, error) {
	const query = `
		SELECT ` + adminColumns + `
		FROM admins
		WHERE id = $1`
	return scanAdmin(r.db.QueryRowContext(ctx, query, id))
}

// GetByUsername matches the username case-insensitively.
func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (types.Admin, error) {
	const query = `
		SELECT ` + adminColumns + `
		FROM admins
		WHERE lower(username) = lower($1)`
	return scanAdmin(r.db.QueryRowContext(ctx, query, username))
}

// GetByEmail matches the email case-insensitively.
func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (types.Admin, error) {
	const query = `
		SELECT ` + adminColumns + `
		FROM admins
		WHERE lower(email) = lower($1)`
	return scanAdmin(r.db.QueryRowContext(ctx, query, email))
}

func (r *AdminRepository) List(ctx context.Context) ([]types.Admin, error) {
	const query = `
		SELECT ` + adminColumns + `
		FROM admins
		ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	admins := make([]types.Admin, 0)
	for rows.Next() {
		var admin types.Admin
		if err := rows.Scan(
			&admin.ID,
			&admin.Username,
			&admin.Email,
			&admin.Role,
			&admin.PasswordHash,
			&admin.CreatedAt,
			&admin.UpdatedAt,
		); err != nil {
			return nil, classify(err)
		}
		admins = append(admins, admin)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return admins, nil
}

func (r *AdminRepository) Create(ctx context.Context, admin types.Admin) (types.Admin, error) {
	now := time.Now()
	admin.Username = strings.ToLower(admin.Username)
	admin.Email = strings.ToLower(admin.Email)
	admin.CreatedAt = now
	admin.UpdatedAt = now

	const query = `
		INSERT INTO admins (username, email, role, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		admin.Username,
		admin.Email,
		admin.Role,
		admin.PasswordHash,
		admin.CreatedAt,
		admin.UpdatedAt,
	).Scan(&admin.ID); err != nil {
		return types.Admin{}, classify(err)
	}
	return admin, nil
}

func (r *AdminRepository) Update(ctx context.Context, admin types.Admin) (types.Admin, error) {
	admin.Username = strings.ToLower(admin.Username)
	admin.Email = strings.ToLower(admin.Email)
	admin.UpdatedAt = time.Now()

	const query = `
		UPDATE admins
		SET username = $1,
			email = $2,
			role = $3,
			password_hash = $4,
			updated_at = $5
		WHERE id = $6`
	result, err := r.db.ExecContext(
		ctx,
		query,
		admin.Username,
		admin.Email,
		admin.Role,
		admin.PasswordHash,
		admin.UpdatedAt,
		admin.ID,
	)
	if err != nil {
		return types.Admin{}, classify(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Admin{}, err
	}
	if affected == 0 {
		return types.Admin{}, ErrNotFound
	}
	return admin, nil
}

func (r *AdminRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM admins WHERE id = $1`
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
