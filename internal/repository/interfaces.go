package repository

import (
	"context"

	"github.com/IsraelAraujo70/shopping-list/internal/models"
)

// ListRepo defines the interface for list persistence operations
type ListRepo interface {
	GetByID(ctx context.Context, id string) (*models.List, error)
	GetAllForUser(ctx context.Context, userID string) ([]*models.List, error)
	GetByFamilyID(ctx context.Context, familyID string) ([]*models.List, error)
	Add(ctx context.Context, list *models.List) error
	Update(ctx context.Context, list *models.List) error
	// DeleteCascade removes the list's shares, then its items, then the
	// list row itself, in a single transaction.
	DeleteCascade(ctx context.Context, id string) error
}

// ItemRepo defines the interface for item persistence operations
type ItemRepo interface {
	GetByID(ctx context.Context, id string) (*models.Item, error)
	GetByListID(ctx context.Context, listID string) ([]*models.Item, error)
	Add(ctx context.Context, item *models.Item) error
	Update(ctx context.Context, item *models.Item) error
}

// FamilyRepo defines the interface for family persistence operations
type FamilyRepo interface {
	GetByID(ctx context.Context, id string) (*models.Family, error)
	GetAllForMember(ctx context.Context, userID string) ([]*models.Family, error)
	Add(ctx context.Context, family *models.Family) error
	Delete(ctx context.Context, id string) error
}

// FamilyMemberRepo defines the interface for family membership operations
type FamilyMemberRepo interface {
	GetByFamilyID(ctx context.Context, familyID string) ([]*models.FamilyMember, error)
	GetMember(ctx context.Context, familyID, userID string) (*models.FamilyMember, error)
	Add(ctx context.Context, member *models.FamilyMember) error
	Remove(ctx context.Context, familyID, userID string) error
}

// ListShareRepo defines the interface for list share operations
type ListShareRepo interface {
	GetByListID(ctx context.Context, listID string) ([]*models.ListShare, error)
	GetByUserID(ctx context.Context, userID string) ([]*models.ListShare, error)
	GetShare(ctx context.Context, listID, userID string) (*models.ListShare, error)
	// Upsert inserts the share or, when a row for (list, user) already
	// exists, refreshes its can_edit flag and updated_at timestamp.
	Upsert(ctx context.Context, share *models.ListShare) error
	Remove(ctx context.Context, listID, userID string) error
}
