package services

import (
	"context"
	"fmt"

	"github.com/IsraelAraujo70/shopping-list/internal/models"
	"github.com/IsraelAraujo70/shopping-list/internal/repository"
)

// DenyReason explains why a capability was not granted
type DenyReason string

const (
	DenyNotOwnerOrShared            DenyReason = "not_owner_or_shared"
	DenyNotShared                   DenyReason = "not_shared"
	DenyInsufficientSharePermission DenyReason = "insufficient_share_permission"
	DenyNotOwner                    DenyReason = "not_owner"
	DenyNotFamilyOwner              DenyReason = "not_family_owner"
)

// Decision is the result of a capability query
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

// Err maps a denial to its typed model error. Returns nil for allowed
// decisions.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	switch d.Reason {
	case DenyNotOwnerOrShared:
		return models.ErrListNotOwnerOrShared
	case DenyNotShared:
		return models.ErrListNotShared
	case DenyInsufficientSharePermission:
		return models.ErrListInsufficientSharePermission
	case DenyNotOwner:
		return models.ErrListNotOwner
	case DenyNotFamilyOwner:
		return models.ErrNotFamilyOwner
	}
	return models.ErrListNotOwner
}

var allow = Decision{Allowed: true}

func deny(reason DenyReason) Decision {
	return Decision{Reason: reason}
}

// AuthzService answers capability queries over stored relations. It is
// stateless: every decision is a function of the actor, the resource and
// the share/membership rows. Checks run ownership first (no extra
// lookup), then the relation lookup, so the owner always wins.
type AuthzService struct {
	shareRepo  repository.ListShareRepo
	memberRepo repository.FamilyMemberRepo
}

// NewAuthzService creates a new AuthzService
func NewAuthzService(shareRepo repository.ListShareRepo, memberRepo repository.FamilyMemberRepo) *AuthzService {
	return &AuthzService{
		shareRepo:  shareRepo,
		memberRepo: memberRepo,
	}
}

// CanReadList grants read to the owner or to any user with a share,
// regardless of the share's edit flag.
func (s *AuthzService) CanReadList(ctx context.Context, actorID string, list *models.List) (Decision, error) {
	if list.IsOwnedBy(actorID) {
		return allow, nil
	}

	share, err := s.shareRepo.GetShare(ctx, list.ID, actorID)
	if err != nil {
		return Decision{}, fmt.Errorf("failed to look up share: %w", err)
	}
	if share != nil {
		return allow, nil
	}
	return deny(DenyNotOwnerOrShared), nil
}

// CanWriteListItems grants item mutations to the owner or to a user
// whose share carries can_edit.
func (s *AuthzService) CanWriteListItems(ctx context.Context, actorID string, list *models.List) (Decision, error) {
	if list.IsOwnedBy(actorID) {
		return allow, nil
	}

	share, err := s.shareRepo.GetShare(ctx, list.ID, actorID)
	if err != nil {
		return Decision{}, fmt.Errorf("failed to look up share: %w", err)
	}
	if share == nil {
		return deny(DenyNotShared), nil
	}
	if !share.CanEdit {
		return deny(DenyInsufficientSharePermission), nil
	}
	return allow, nil
}

// CanManageList grants share management, rename and delete to the owner
// only.
func (s *AuthzService) CanManageList(actorID string, list *models.List) Decision {
	if list.IsOwnedBy(actorID) {
		return allow
	}
	return deny(DenyNotOwner)
}

// CanManageFamily grants membership management to the family owner only.
func (s *AuthzService) CanManageFamily(actorID string, family *models.Family) Decision {
	if family.IsOwnedBy(actorID) {
		return allow
	}
	return deny(DenyNotFamilyOwner)
}

// IsFamilyMember reports whether actorID has a membership row in the
// family.
func (s *AuthzService) IsFamilyMember(ctx context.Context, actorID, familyID string) (bool, error) {
	member, err := s.memberRepo.GetMember(ctx, familyID, actorID)
	if err != nil {
		return false, fmt.Errorf("failed to look up membership: %w", err)
	}
	return member != nil, nil
}
