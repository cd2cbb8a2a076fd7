package repository

import (
	"context"
	"database/sql"

	"github.com/IsraelAraujo70/shopping-list/internal/models"
)

// FamilyRepository implements FamilyRepo for PostgreSQL/SQLite
type FamilyRepository struct {
	db *sql.DB
}

// NewFamilyRepository creates a new FamilyRepository
func NewFamilyRepository(db *sql.DB) *FamilyRepository {
	return &FamilyRepository{db: db}
}

func (r *FamilyRepository) GetByID(ctx context.Context, id string) (*models.Family, error) {
	query := `SELECT id, name, owner_id, created_at FROM families WHERE id = $1`

	var f models.Family
	err := r.db.QueryRowContext(ctx, query, id).Scan(&f.ID, &f.Name, &f.OwnerID, &f.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FamilyRepository) GetAllForMember(ctx context.Context, userID string) ([]*models.Family, error) {
	query := `SELECT f.id, f.name, f.owner_id, f.created_at
			  FROM families f
			  INNER JOIN family_members fm ON fm.family_id = f.id
			  WHERE fm.user_id = $1 ORDER BY f.created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var families []*models.Family
	for rows.Next() {
		var f models.Family
		if err := rows.Scan(&f.ID, &f.Name, &f.OwnerID, &f.CreatedAt); err != nil {
			return nil, err
		}
		families = append(families, &f)
	}
	return families, rows.Err()
}

func (r *FamilyRepository) Add(ctx context.Context, family *models.Family) error {
	query := `INSERT INTO families (id, name, owner_id, created_at) VALUES ($1, $2, $3, $4)`

	_, err := r.db.ExecContext(ctx, query, family.ID, family.Name, family.OwnerID, family.CreatedAt)
	return err
}

func (r *FamilyRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM families WHERE id = $1`, id)
	return err
}
