package models

import (
	"time"

	"github.com/google/uuid"
)

// ListShare grants a non-owner user access to a list. Read is always
// permitted by a share; write requires CanEdit. Unique per (list, user).
type ListShare struct {
	ID        string    `json:"id"`
	ListID    string    `json:"listId"`
	UserID    string    `json:"userId"`
	CanEdit   bool      `json:"canEdit"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewListShare creates a new share association
func NewListShare(listID, userID string, canEdit bool) *ListShare {
	now := time.Now().UTC()
	return &ListShare{
		ID:        uuid.New().String(),
		ListID:    listID,
		UserID:    userID,
		CanEdit:   canEdit,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SharedList is a list annotated with the share that grants access to it
type SharedList struct {
	*List
	ShareID string `json:"shareId"`
	CanEdit bool   `json:"canEdit"`
}

// FamilyShareResult reports the outcome of a family-cascade share. A
// failure on one member's upsert does not cancel the others; failed
// member IDs are collected here instead.
type FamilyShareResult struct {
	SharedUserIDs []string `json:"sharedUserIds"`
	FailedUserIDs []string `json:"failedUserIds"`
}
