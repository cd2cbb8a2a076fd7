package services

import (
	"context"
	"fmt"

	"github.com/IsraelAraujo70/shopping-list/internal/models"
	"github.com/IsraelAraujo70/shopping-list/internal/observability"
	"github.com/IsraelAraujo70/shopping-list/internal/repository"
)

// FamilyService handles family and membership lifecycle operations
type FamilyService struct {
	familyRepo repository.FamilyRepo
	memberRepo repository.FamilyMemberRepo
	listRepo   repository.ListRepo
	authz      *AuthzService
}

// NewFamilyService creates a new FamilyService
func NewFamilyService(
	familyRepo repository.FamilyRepo,
	memberRepo repository.FamilyMemberRepo,
	listRepo repository.ListRepo,
	authz *AuthzService,
) *FamilyService {
	return &FamilyService{
		familyRepo: familyRepo,
		memberRepo: memberRepo,
		listRepo:   listRepo,
		authz:      authz,
	}
}

// CreateFamily creates a family and its owner membership row. A family
// without an owner row violates the model, so a failed membership insert
// compensates by removing the family; when the compensation itself fails
// the error is surfaced as a fatal inconsistency, never swallowed.
func (s *FamilyService) CreateFamily(ctx context.Context, ownerID, name string) (*models.Family, error) {
	ctx, span := observability.StartServiceSpan(ctx, "FamilyService", "CreateFamily")
	defer span.End()

	family, err := models.NewFamily(ownerID, name)
	if err != nil {
		return nil, err
	}

	if err := s.familyRepo.Add(ctx, family); err != nil {
		return nil, fmt.Errorf("failed to create family: %w", err)
	}

	owner := models.NewFamilyMember(family.ID, ownerID, models.RoleOwner)
	if err := s.memberRepo.Add(ctx, owner); err != nil {
		observability.RecordError(span, err)
		if delErr := s.familyRepo.Delete(ctx, family.ID); delErr != nil {
			return nil, &models.InconsistencyError{
				Op:  "create family",
				Err: fmt.Errorf("owner membership insert failed (%v) and family rollback failed: %w", err, delErr),
			}
		}
		return nil, fmt.Errorf("failed to create owner membership: %w", err)
	}

	family.Members = []*models.FamilyMember{owner}
	return family, nil
}

// ListFamilies returns the families the actor belongs to, each with its
// members and attached lists.
func (s *FamilyService) ListFamilies(ctx context.Context, actorID string) ([]*models.Family, error) {
	families, err := s.familyRepo.GetAllForMember(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get families: %w", err)
	}

	for _, family := range families {
		members, err := s.memberRepo.GetByFamilyID(ctx, family.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get members: %w", err)
		}
		family.Members = members

		lists, err := s.listRepo.GetByFamilyID(ctx, family.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get family lists: %w", err)
		}
		family.Lists = lists
	}
	return families, nil
}

// GetMembers returns a family's members; the caller must be a member
func (s *FamilyService) GetMembers(ctx context.Context, actorID, familyID string) ([]*models.FamilyMember, error) {
	family, err := s.familyRepo.GetByID(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get family: %w", err)
	}
	if family == nil {
		return nil, models.ErrFamilyNotFound
	}

	isMember, err := s.authz.IsFamilyMember(ctx, actorID, familyID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, models.ErrNotAMember
	}

	members, err := s.memberRepo.GetByFamilyID(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	return members, nil
}

// AddMember adds targetUserID to a family; owner only. Adding an
// existing member is a conflict.
func (s *FamilyService) AddMember(ctx context.Context, actorID, familyID, targetUserID string) (*models.FamilyMember, error) {
	family, err := s.familyRepo.GetByID(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get family: %w", err)
	}
	if family == nil {
		return nil, models.ErrFamilyNotFound
	}
	if d := s.authz.CanManageFamily(actorID, family); !d.Allowed {
		return nil, d.Err()
	}

	existing, err := s.memberRepo.GetMember(ctx, familyID, targetUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up membership: %w", err)
	}
	if existing != nil {
		return nil, models.ErrAlreadyMember
	}

	member := models.NewFamilyMember(familyID, targetUserID, models.RoleMember)
	if err := s.memberRepo.Add(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}
	return member, nil
}

// RemoveMember removes targetUserID from a family; owner only. The
// owner's own membership row is non-removable.
func (s *FamilyService) RemoveMember(ctx context.Context, actorID, familyID, targetUserID string) error {
	family, err := s.familyRepo.GetByID(ctx, familyID)
	if err != nil {
		return fmt.Errorf("failed to get family: %w", err)
	}
	if family == nil {
		return models.ErrFamilyNotFound
	}
	if d := s.authz.CanManageFamily(actorID, family); !d.Allowed {
		return d.Err()
	}

	if targetUserID == family.OwnerID {
		return models.ErrCannotRemoveOwner
	}

	existing, err := s.memberRepo.GetMember(ctx, familyID, targetUserID)
	if err != nil {
		return fmt.Errorf("failed to look up membership: %w", err)
	}
	if existing == nil {
		return models.ErrNotAMember
	}

	if err := s.memberRepo.Remove(ctx, familyID, targetUserID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}
