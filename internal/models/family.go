package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Family represents a named group of users used as a bulk-sharing target
type Family struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`

	// Computed fields (not stored in DB directly)
	Members []*FamilyMember `json:"members,omitempty"`
	Lists   []*List         `json:"lists,omitempty"`
}

// NewFamily creates a new family owned by ownerID
func NewFamily(ownerID, name string) (*Family, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, ErrFamilyOwnerRequired
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrFamilyNameRequired
	}

	return &Family{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// IsOwnedBy reports whether userID is the family's owner
func (f *Family) IsOwnedBy(userID string) bool {
	return f.OwnerID == userID
}

// Family errors
type FamilyError struct {
	Message string
}

func (e FamilyError) Error() string {
	return e.Message
}

var (
	ErrFamilyNotFound      = FamilyError{"family not found"}
	ErrFamilyNameRequired  = FamilyError{"family name is required"}
	ErrFamilyOwnerRequired = FamilyError{"family owner ID is required"}
	ErrNotFamilyOwner      = FamilyError{"only the family owner may perform this operation"}
	ErrNotAMember          = FamilyError{"user is not a member of this family"}
	ErrAlreadyMember       = FamilyError{"user is already a member of this family"}
	ErrCannotRemoveOwner   = FamilyError{"the family owner cannot be removed"}
)

// InconsistencyError reports a partial write that could not be rolled back,
// leaving stored relations in a state that violates a model invariant. It is
// surfaced as an internal error distinct from validation failures so operators
// can detect partial-write bugs.
type InconsistencyError struct {
	Op  string
	Err error
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("data inconsistency during %s: %v", e.Op, e.Err)
}

func (e *InconsistencyError) Unwrap() error {
	return e.Err
}
