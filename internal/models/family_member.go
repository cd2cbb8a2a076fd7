package models

import (
	"time"

	"github.com/google/uuid"
)

// FamilyRole tags a membership row
type FamilyRole string

const (
	RoleOwner  FamilyRole = "owner"
	RoleMember FamilyRole = "member"
)

// FamilyMember links a user to a family with a role tag. Exactly one
// owner row exists per family and it always matches the family's owner.
type FamilyMember struct {
	ID        string     `json:"id"`
	FamilyID  string     `json:"familyId"`
	UserID    string     `json:"userId"`
	Role      FamilyRole `json:"role"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// NewFamilyMember creates a membership row
func NewFamilyMember(familyID, userID string, role FamilyRole) *FamilyMember {
	now := time.Now().UTC()
	return &FamilyMember{
		ID:        uuid.New().String(),
		FamilyID:  familyID,
		UserID:    userID,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
