package services

import (
	"context"
	"fmt"
	"time"

	"github.com/IsraelAraujo70/shopping-list/internal/models"
	"github.com/IsraelAraujo70/shopping-list/internal/observability"
	"github.com/IsraelAraujo70/shopping-list/internal/repository"
)

// ListService handles list and item lifecycle operations
type ListService struct {
	listRepo  repository.ListRepo
	itemRepo  repository.ItemRepo
	shareRepo repository.ListShareRepo
	authz     *AuthzService
	events    ListEventPublisher
}

// NewListService creates a new ListService
func NewListService(
	listRepo repository.ListRepo,
	itemRepo repository.ItemRepo,
	shareRepo repository.ListShareRepo,
	authz *AuthzService,
	events ListEventPublisher,
) *ListService {
	return &ListService{
		listRepo:  listRepo,
		itemRepo:  itemRepo,
		shareRepo: shareRepo,
		authz:     authz,
		events:    events,
	}
}

// CreateList creates a new list owned by ownerID
func (s *ListService) CreateList(ctx context.Context, ownerID, name string) (*models.List, error) {
	list, err := models.NewList(ownerID, name)
	if err != nil {
		return nil, err
	}

	if err := s.listRepo.Add(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to create list: %w", err)
	}
	return list, nil
}

// GetList retrieves a list with its items; requires read access (owner
// or any share).
func (s *ListService) GetList(ctx context.Context, actorID, listID string) (*models.List, error) {
	list, err := s.listRepo.GetByID(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to get list: %w", err)
	}
	if list == nil {
		return nil, models.ErrListNotFound
	}

	d, err := s.authz.CanReadList(ctx, actorID, list)
	if err != nil {
		return nil, err
	}
	if !d.Allowed {
		return nil, d.Err()
	}

	items, err := s.itemRepo.GetByListID(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	list.Items = items
	list.IsOwner = list.IsOwnedBy(actorID)
	return list, nil
}

// ListOwned returns the lists owned by the actor, each with its items
func (s *ListService) ListOwned(ctx context.Context, actorID string) ([]*models.List, error) {
	lists, err := s.listRepo.GetAllForUser(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lists: %w", err)
	}

	for _, list := range lists {
		items, err := s.itemRepo.GetByListID(ctx, list.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get items: %w", err)
		}
		list.Items = items
		list.IsOwner = true
	}
	return lists, nil
}

// RenameList renames a list; owner only
func (s *ListService) RenameList(ctx context.Context, actorID, listID, name string) (*models.List, error) {
	if name == "" {
		return nil, models.ErrListNameRequired
	}

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

	list.Name = name
	list.UpdatedAt = time.Now().UTC()
	if err := s.listRepo.Update(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to rename list: %w", err)
	}

	s.publish(listID, "list.renamed", list)
	return list, nil
}

// DeleteList deletes a list and cascades to its items and shares; owner
// only.
func (s *ListService) DeleteList(ctx context.Context, actorID, listID string) error {
	ctx, span := observability.StartServiceSpan(ctx, "ListService", "DeleteList")
	defer span.End()

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

	if err := s.listRepo.DeleteCascade(ctx, listID); err != nil {
		observability.RecordError(span, err)
		return fmt.Errorf("failed to delete list: %w", err)
	}

	s.publish(listID, "list.deleted", map[string]string{"listId": listID})
	return nil
}

// AddItem adds an item to a list; requires write access (owner or
// edit-capable share).
func (s *ListService) AddItem(ctx context.Context, actorID, listID string, req *models.AddItemRequest) (*models.Item, error) {
	list, err := s.listRepo.GetByID(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to get list: %w", err)
	}
	if list == nil {
		return nil, models.ErrListNotFound
	}

	d, err := s.authz.CanWriteListItems(ctx, actorID, list)
	if err != nil {
		return nil, err
	}
	if !d.Allowed {
		return nil, d.Err()
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	item, err := models.NewItem(listID, req.Name, req.EstimatedPrice, quantity)
	if err != nil {
		return nil, err
	}

	if err := s.itemRepo.Add(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to add item: %w", err)
	}

	// Touch the list so clients see it moved; the item is already
	// persisted, so a failed touch is logged rather than surfaced
	list.UpdatedAt = time.Now().UTC()
	if err := s.listRepo.Update(ctx, list); err != nil {
		observability.WithContext(ctx).WithField("list_id", listID).
			Errorf("failed to touch list after item add: %v", err)
	}

	s.publish(listID, "item.added", item)
	return item, nil
}

// SetItemCompleted sets an item's completion flag; requires write access
func (s *ListService) SetItemCompleted(ctx context.Context, actorID, listID, itemID string, completed bool) (*models.Item, error) {
	list, err := s.listRepo.GetByID(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to get list: %w", err)
	}
	if list == nil {
		return nil, models.ErrListNotFound
	}

	d, err := s.authz.CanWriteListItems(ctx, actorID, list)
	if err != nil {
		return nil, err
	}
	if !d.Allowed {
		return nil, d.Err()
	}

	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	if item == nil || item.ListID != listID {
		return nil, models.ErrItemNotFound
	}

	item.Completed = completed
	item.UpdatedAt = time.Now().UTC()
	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	s.publish(listID, "item.updated", item)
	return item, nil
}

func (s *ListService) publish(listID, eventType string, payload interface{}) {
	if s.events != nil {
		s.events.PublishListEvent(listID, eventType, payload)
	}
}
