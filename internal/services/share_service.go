package services

import (
	"context"
	"fmt"

	"github.com/IsraelAraujo70/shopping-list/internal/models"
	"github.com/IsraelAraujo70/shopping-list/internal/observability"
	"github.com/IsraelAraujo70/shopping-list/internal/repository"
)

// ListEventPublisher receives list mutation events for live delivery.
// Implemented by the WebSocket hub; may be nil when realtime delivery is
// disabled.
type ListEventPublisher interface {
	PublishListEvent(listID, eventType string, payload interface{})
}

// ShareService coordinates ListShare rows: per-user grants, family-wide
// cascades and revocation. Every mutation is gated by the authorization
// engine before touching state.
type ShareService struct {
	listRepo   repository.ListRepo
	itemRepo   repository.ItemRepo
	shareRepo  repository.ListShareRepo
	familyRepo repository.FamilyRepo
	memberRepo repository.FamilyMemberRepo
	authz      *AuthzService
	events     ListEventPublisher
}

// NewShareService creates a new ShareService
func NewShareService(
	listRepo repository.ListRepo,
	itemRepo repository.ItemRepo,
	shareRepo repository.ListShareRepo,
	familyRepo repository.FamilyRepo,
	memberRepo repository.FamilyMemberRepo,
	authz *AuthzService,
	events ListEventPublisher,
) *ShareService {
	return &ShareService{
		listRepo:   listRepo,
		itemRepo:   itemRepo,
		shareRepo:  shareRepo,
		familyRepo: familyRepo,
		memberRepo: memberRepo,
		authz:      authz,
		events:     events,
	}
}

// ShareListWithUser grants targetUserID access to a list. Re-sharing an
// already shared list refreshes the existing row's edit flag instead of
// erroring, so the call is idempotent.
func (s *ShareService) ShareListWithUser(ctx context.Context, actorID, listID, targetUserID string, canEdit bool) (*models.ListShare, error) {
	ctx, span := observability.StartServiceSpan(ctx, "ShareService", "ShareListWithUser")
	defer span.End()

	list, err := s.listRepo.GetByID(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to get list: %w", err)
	}
	if list == nil {
		return nil, models.ErrListNotFound
	}
	if d := s.authz.CanManageList(actorID, list); !d.Allowed {
		return nil, d.Err()
	}

	share := models.NewListShare(listID, targetUserID, canEdit)
	if err := s.shareRepo.Upsert(ctx, share); err != nil {
		observability.RecordError(span, err)
		return nil, fmt.Errorf("failed to upsert share: %w", err)
	}

	// Re-read so the caller sees the surviving row, not the candidate
	// insert, when the upsert hit an existing (list, user) pair.
	stored, err := s.shareRepo.GetShare(ctx, listID, targetUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to read back share: %w", err)
	}

	s.publish(listID, "share.updated", stored)
	return stored, nil
}

// ShareListWithFamily upserts an edit-capable share for every member of
// the family except the actor. The actor must own the list and belong to
// the family (not necessarily as its owner). Per-member failures are
// collected into the result instead of aborting the batch.
func (s *ShareService) ShareListWithFamily(ctx context.Context, actorID, listID, familyID string) (*models.FamilyShareResult, error) {
	ctx, span := observability.StartServiceSpan(ctx, "ShareService", "ShareListWithFamily")
	defer span.End()

	list, err := s.listRepo.GetByID(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to get list: %w", err)
	}
	if list == nil {
		return nil, models.ErrListNotFound
	}
	if d := s.authz.CanManageList(actorID, list); !d.Allowed {
		return nil, d.Err()
	}

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
		return nil, fmt.Errorf("failed to get family members: %w", err)
	}

	result := &models.FamilyShareResult{}
	for _, member := range members {
		// Never share back to the acting user
		if member.UserID == actorID {
			continue
		}

		share := models.NewListShare(listID, member.UserID, true)
		if err := s.shareRepo.Upsert(ctx, share); err != nil {
			observability.WithContext(ctx).WithField("list_id", listID).
				Errorf("family cascade share failed for user %s: %v", member.UserID, err)
			result.FailedUserIDs = append(result.FailedUserIDs, member.UserID)
			continue
		}
		result.SharedUserIDs = append(result.SharedUserIDs, member.UserID)
	}

	s.publish(listID, "share.family_cascade", result)
	return result, nil
}

// ListShares returns all shares for a list; owner only.
func (s *ShareService) ListShares(ctx context.Context, actorID, listID string) ([]*models.ListShare, error) {
	list, err := s.listRepo.GetByID(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to get list: %w", err)
	}
	if list == nil {
		return nil, models.ErrListNotFound
	}
	if d := s.authz.CanManageList(actorID, list); !d.Allowed {
		return nil, d.Err()
	}

	shares, err := s.shareRepo.GetByListID(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shares: %w", err)
	}
	return shares, nil
}

// ListSharedWithMe returns every list shared with the actor, annotated
// with the share and loaded with the list's items.
func (s *ShareService) ListSharedWithMe(ctx context.Context, actorID string) ([]*models.SharedList, error) {
	shares, err := s.shareRepo.GetByUserID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shares: %w", err)
	}

	shared := make([]*models.SharedList, 0, len(shares))
	for _, share := range shares {
		list, err := s.listRepo.GetByID(ctx, share.ListID)
		if err != nil {
			return nil, fmt.Errorf("failed to get list: %w", err)
		}
		if list == nil {
			// Share row orphaned by a concurrent delete; skip it
			continue
		}

		items, err := s.itemRepo.GetByListID(ctx, share.ListID)
		if err != nil {
			return nil, fmt.Errorf("failed to get items: %w", err)
		}
		list.Items = items

		shared = append(shared, &models.SharedList{
			List:    list,
			ShareID: share.ID,
			CanEdit: share.CanEdit,
		})
	}
	return shared, nil
}

// RemoveShare revokes targetUserID's access to a list; owner only.
// Removing an absent share is a no-op, not an error.
func (s *ShareService) RemoveShare(ctx context.Context, actorID, listID, targetUserID string) error {
	list, err := s.listRepo.GetByID(ctx, listID)
	if err != nil {
		return fmt.Errorf("failed to get list: %w", err)
	}
	if list == nil {
		return models.ErrListNotFound
	}
	if d := s.authz.CanManageList(actorID, list); !d.Allowed {
		return d.Err()
	}

	if err := s.shareRepo.Remove(ctx, listID, targetUserID); err != nil {
		return fmt.Errorf("failed to remove share: %w", err)
	}

	s.publish(listID, "share.removed", map[string]string{"userId": targetUserID})
	return nil
}

func (s *ShareService) publish(listID, eventType string, payload interface{}) {
	if s.events != nil {
		s.events.PublishListEvent(listID, eventType, payload)
	}
}
