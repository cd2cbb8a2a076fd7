package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// List represents a shopping list owned by a single user
type List struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	FamilyID  *string   `json:"familyId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Computed fields (not stored in DB directly)
	Items   []*Item `json:"items,omitempty"`
	IsOwner bool    `json:"isOwner,omitempty"`
}

// NewList creates a new list with a generated ID
func NewList(userID, name string) (*List, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrListUserRequired
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrListNameRequired
	}

	now := time.Now().UTC()
	return &List{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsOwnedBy reports whether userID is the list's owner
func (l *List) IsOwnedBy(userID string) bool {
	return l.UserID == userID
}

// List errors
type ListError struct {
	Message string
}

func (e ListError) Error() string {
	return e.Message
}

var (
	ErrListNotFound                    = ListError{"list not found"}
	ErrListNameRequired                = ListError{"list name is required"}
	ErrListUserRequired                = ListError{"user ID is required"}
	ErrListNotOwner                    = ListError{"only the list owner may perform this operation"}
	ErrListNotOwnerOrShared            = ListError{"list is not owned by or shared with this user"}
	ErrListNotShared                   = ListError{"list is not shared with this user"}
	ErrListInsufficientSharePermission = ListError{"share does not grant edit permission"}
)
