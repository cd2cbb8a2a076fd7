package repository

import (
	"context"
	"database/sql"

	"github.com/IsraelAraujo70/shopping-list/internal/models"
)

// ListShareRepository implements ListShareRepo for PostgreSQL/SQLite
type ListShareRepository struct {
	db *sql.DB
}

// NewListShareRepository creates a new ListShareRepository
func NewListShareRepository(db *sql.DB) *ListShareRepository {
	return &ListShareRepository{db: db}
}

func (r *ListShareRepository) GetByListID(ctx context.Context, listID string) ([]*models.ListShare, error) {
	query := `SELECT id, list_id, user_id, can_edit, created_at, updated_at
			  FROM list_shares WHERE list_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanShares(rows)
}

func (r *ListShareRepository) GetByUserID(ctx context.Context, userID string) ([]*models.ListShare, error) {
	query := `SELECT id, list_id, user_id, can_edit, created_at, updated_at
			  FROM list_shares WHERE user_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanShares(rows)
}

func (r *ListShareRepository) GetShare(ctx context.Context, listID, userID string) (*models.ListShare, error) {
	query := `SELECT id, list_id, user_id, can_edit, created_at, updated_at
			  FROM list_shares WHERE list_id = $1 AND user_id = $2`

	var s models.ListShare
	err := r.db.QueryRowContext(ctx, query, listID, userID).Scan(
		&s.ID, &s.ListID, &s.UserID, &s.CanEdit, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ListShareRepository) Upsert(ctx context.Context, share *models.ListShare) error {
	query := `INSERT INTO list_shares (id, list_id, user_id, can_edit, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  ON CONFLICT (list_id, user_id)
			  DO UPDATE SET can_edit = $4, updated_at = $6`

	_, err := r.db.ExecContext(ctx, query,
		share.ID, share.ListID, share.UserID, share.CanEdit, share.CreatedAt, share.UpdatedAt)
	return err
}

func (r *ListShareRepository) Remove(ctx context.Context, listID, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM list_shares WHERE list_id = $1 AND user_id = $2`, listID, userID)
	return err
}

func scanShares(rows *sql.Rows) ([]*models.ListShare, error) {
	var shares []*models.ListShare
	for rows.Next() {
		var s models.ListShare
		if err := rows.Scan(&s.ID, &s.ListID, &s.UserID, &s.CanEdit, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		shares = append(shares, &s)
	}
	return shares, rows.Err()
}
