package repository

import (
	"context"
	"database/sql"

	"github.com/IsraelAraujo70/shopping-list/internal/models"
	"github.com/IsraelAraujo70/shopping-list/internal/observability"
)

// ListRepository implements ListRepo for PostgreSQL/SQLite
type ListRepository struct {
	db *sql.DB
}

// NewListRepository creates a new ListRepository
func NewListRepository(db *sql.DB) *ListRepository {
	return &ListRepository{db: db}
}

func (r *ListRepository) GetByID(ctx context.Context, id string) (*models.List, error) {
	query := `SELECT id, user_id, name, family_id, created_at, updated_at
			  FROM lists WHERE id = $1`

	var l models.List
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&l.ID, &l.UserID, &l.Name, &l.FamilyID, &l.CreatedAt, &l.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *ListRepository) GetAllForUser(ctx context.Context, userID string) ([]*models.List, error) {
	query := `SELECT id, user_id, name, family_id, created_at, updated_at
			  FROM lists WHERE user_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLists(rows)
}

func (r *ListRepository) GetByFamilyID(ctx context.Context, familyID string) ([]*models.List, error) {
	query := `SELECT id, user_id, name, family_id, created_at, updated_at
			  FROM lists WHERE family_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, familyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLists(rows)
}

func (r *ListRepository) Add(ctx context.Context, list *models.List) error {
	query := `INSERT INTO lists (id, user_id, name, family_id, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		list.ID, list.UserID, list.Name, list.FamilyID, list.CreatedAt, list.UpdatedAt)
	return err
}

func (r *ListRepository) Update(ctx context.Context, list *models.List) error {
	query := `UPDATE lists SET name = $1, family_id = $2, updated_at = $3 WHERE id = $4`

	_, err := r.db.ExecContext(ctx, query, list.Name, list.FamilyID, list.UpdatedAt, list.ID)
	return err
}

// DeleteCascade removes shares, items, then the list row, children before
// parent, in one transaction so a concurrent reader never observes a
// partially deleted list.
func (r *ListRepository) DeleteCascade(ctx context.Context, id string) error {
	ctx, span := observability.StartDBSpan(ctx, "DELETE CASCADE", "lists")
	defer span.End()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM list_shares WHERE list_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE list_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM lists WHERE id = $1`, id); err != nil {
		return err
	}

	return tx.Commit()
}

func scanLists(rows *sql.Rows) ([]*models.List, error) {
	var lists []*models.List
	for rows.Next() {
		var l models.List
		if err := rows.Scan(&l.ID, &l.UserID, &l.Name, &l.FamilyID, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		lists = append(lists, &l)
	}
	return lists, rows.Err()
}
