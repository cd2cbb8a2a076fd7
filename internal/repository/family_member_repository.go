package repository

import (
	"context"
	"database/sql"

	"github.com/IsraelAraujo70/shopping-list/internal/models"
)

// FamilyMemberRepository implements FamilyMemberRepo for PostgreSQL/SQLite
type FamilyMemberRepository struct {
	db *sql.DB
}

// NewFamilyMemberRepository creates a new FamilyMemberRepository
func NewFamilyMemberRepository(db *sql.DB) *FamilyMemberRepository {
	return &FamilyMemberRepository{db: db}
}

func (r *FamilyMemberRepository) GetByFamilyID(ctx context.Context, familyID string) ([]*models.FamilyMember, error) {
	query := `SELECT id, family_id, user_id, role, created_at, updated_at
			  FROM family_members WHERE family_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, familyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*models.FamilyMember
	for rows.Next() {
		var m models.FamilyMember
		if err := rows.Scan(&m.ID, &m.FamilyID, &m.UserID, &m.Role, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		members = append(members, &m)
	}
	return members, rows.Err()
}

func (r *FamilyMemberRepository) GetMember(ctx context.Context, familyID, userID string) (*models.FamilyMember, error) {
	query := `SELECT id, family_id, user_id, role, created_at, updated_at
			  FROM family_members WHERE family_id = $1 AND user_id = $2`

	var m models.FamilyMember
	err := r.db.QueryRowContext(ctx, query, familyID, userID).Scan(
		&m.ID, &m.FamilyID, &m.UserID, &m.Role, &m.CreatedAt, &m.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *FamilyMemberRepository) Add(ctx context.Context, member *models.FamilyMember) error {
	query := `INSERT INTO family_members (id, family_id, user_id, role, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		member.ID, member.FamilyID, member.UserID, member.Role, member.CreatedAt, member.UpdatedAt)
	return err
}

func (r *FamilyMemberRepository) Remove(ctx context.Context, familyID, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM family_members WHERE family_id = $1 AND user_id = $2`, familyID, userID)
	return err
}
