package repository

import (
	"context"
	"database/sql"

	"github.com/IsraelAraujo70/shopping-list/internal/models"
)

// ItemRepository implements ItemRepo for PostgreSQL/SQLite
type ItemRepository struct {
	db *sql.DB
}

// NewItemRepository creates a new ItemRepository
func NewItemRepository(db *sql.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) GetByID(ctx context.Context, id string) (*models.Item, error) {
	query := `SELECT id, list_id, name, estimated_price, quantity, completed, created_at, updated_at
			  FROM items WHERE id = $1`

	var i models.Item
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&i.ID, &i.ListID, &i.Name, &i.EstimatedPrice, &i.Quantity, &i.Completed, &i.CreatedAt, &i.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *ItemRepository) GetByListID(ctx context.Context, listID string) ([]*models.Item, error) {
	query := `SELECT id, list_id, name, estimated_price, quantity, completed, created_at, updated_at
			  FROM items WHERE list_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		var i models.Item
		if err := rows.Scan(&i.ID, &i.ListID, &i.Name, &i.EstimatedPrice, &i.Quantity,
			&i.Completed, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, &i)
	}
	return items, rows.Err()
}

func (r *ItemRepository) Add(ctx context.Context, item *models.Item) error {
	query := `INSERT INTO items (id, list_id, name, estimated_price, quantity, completed, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.ListID, item.Name, item.EstimatedPrice, item.Quantity,
		item.Completed, item.CreatedAt, item.UpdatedAt)
	return err
}

func (r *ItemRepository) Update(ctx context.Context, item *models.Item) error {
	query := `UPDATE items SET name = $1, estimated_price = $2, quantity = $3,
			  completed = $4, updated_at = $5 WHERE id = $6`

	_, err := r.db.ExecContext(ctx, query,
		item.Name, item.EstimatedPrice, item.Quantity, item.Completed, item.UpdatedAt, item.ID)
	return err
}
