package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mastergurukulam/apiserver/types"
)

// ContactRepository handles persistence for contact enquiries.
// Enquiries are created by the public form and read/deleted by admins;
// there is no update path.
type ContactRepository struct {
	db *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) List(ctx context.Context, offset, limit int) ([]types.Contact, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 20
	}

	const countQuery = `SELECT COUNT(1) FROM contacts`
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, classify(err)
	}

	const listQuery = `
		SELECT id, name, email, mobile, message, created_at, updated_at
		FROM contacts
		ORDER BY created_at DESC
		OFFSET $1 LIMIT $2`
	rows, err := r.db.QueryContext(ctx, listQuery, offset, limit)
	if err != nil {
		return nil, 0, classify(err)
	}
	defer rows.Close()

	contacts := make([]types.Contact, 0, limit)
	for rows.Next() {
		var contact types.Contact
		if err := rows.Scan(
			&contact.ID,
			&contact.Name,
			&contact.Email,
			&contact.Mobile,
			&contact.Message,
			&contact.CreatedAt,
			&contact.UpdatedAt,
		); err != nil {
			return nil, 0, classify(err)
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, classify(err)
	}
	return contacts, total, nil
}

func (r *ContactRepository) Get(ctx context.Context, id int) (types.Contact, error) {
	const query = `
		SELECT id, name, email, mobile, message, created_at, updated_at
		FROM contacts
		WHERE id = $1`
	var contact types.Contact
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&contact.ID,
		&contact.Name,
		&contact.Email,
		&contact.Mobile,
		&contact.Message,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Contact{}, ErrNotFound
		}
		return types.Contact{}, classify(err)
	}
	return contact, nil
}

func (r *ContactRepository) Create(ctx context.Context, contact types.Contact) (types.Contact, error) {
	now := time.Now()
	contact.CreatedAt = now
	contact.UpdatedAt = now

	const query = `
		INSERT INTO contacts (name, email, mobile, message, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		contact.Name,
		contact.Email,
		contact.Mobile,
		contact.Message,
		contact.CreatedAt,
		contact.UpdatedAt,
	).Scan(&contact.ID); err != nil {
		return types.Contact{}, classify(err)
	}
	return contact, nil
}

func (r *ContactRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM contacts WHERE id = $1`
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
