package services

import (
	"context"
	"sort"
	"sync"

	"github.com/IsraelAraujo70/shopping-list/internal/models"
)

// In-memory repository fakes backing the service tests. A single store
// holds all tables so cascades and cross-repo reads see the same state.

type fakeStore struct {
	mu       sync.Mutex
	lists    map[string]*models.List
	items    map[string]*models.Item
	shares   map[string]*models.ListShare    // listID|userID
	families map[string]*models.Family
	members  map[string]*models.FamilyMember // familyID|userID

	// Error injection knobs
	shareUpsertErr map[string]error // keyed by share user ID
	memberAddErr   error
	familyDelErr   error
	listUpdateErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		lists:          make(map[string]*models.List),
		items:          make(map[string]*models.Item),
		shares:         make(map[string]*models.ListShare),
		families:       make(map[string]*models.Family),
		members:        make(map[string]*models.FamilyMember),
		shareUpsertErr: make(map[string]error),
	}
}

func pairKey(a, b string) string {
	return a + "|" + b
}

type fakeListRepo struct{ s *fakeStore }

func (r *fakeListRepo) GetByID(ctx context.Context, id string) (*models.List, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if list, ok := r.s.lists[id]; ok {
		copied := *list
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeListRepo) GetAllForUser(ctx context.Context, userID string) ([]*models.List, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.List
	for _, list := range r.s.lists {
		if list.UserID == userID {
			copied := *list
			out = append(out, &copied)
		}
	}
	sortLists(out)
	return out, nil
}

func (r *fakeListRepo) GetByFamilyID(ctx context.Context, familyID string) ([]*models.List, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.List
	for _, list := range r.s.lists {
		if list.FamilyID != nil && *list.FamilyID == familyID {
			copied := *list
			out = append(out, &copied)
		}
	}
	sortLists(out)
	return out, nil
}

func (r *fakeListRepo) Add(ctx context.Context, list *models.List) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	copied := *list
	r.s.lists[list.ID] = &copied
	return nil
}

func (r *fakeListRepo) Update(ctx context.Context, list *models.List) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.listUpdateErr != nil {
		return r.s.listUpdateErr
	}
	copied := *list
	r.s.lists[list.ID] = &copied
	return nil
}

func (r *fakeListRepo) DeleteCascade(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for key, share := range r.s.shares {
		if share.ListID == id {
			delete(r.s.shares, key)
		}
	}
	for key, item := range r.s.items {
		if item.ListID == id {
			delete(r.s.items, key)
		}
	}
	delete(r.s.lists, id)
	return nil
}

func sortLists(lists []*models.List) {
	sort.Slice(lists, func(i, j int) bool { return lists[i].Name < lists[j].Name })
}

type fakeItemRepo struct{ s *fakeStore }

func (r *fakeItemRepo) GetByID(ctx context.Context, id string) (*models.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if item, ok := r.s.items[id]; ok {
		copied := *item
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeItemRepo) GetByListID(ctx context.Context, listID string) ([]*models.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Item
	for _, item := range r.s.items {
		if item.ListID == listID {
			copied := *item
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeItemRepo) Add(ctx context.Context, item *models.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	copied := *item
	r.s.items[item.ID] = &copied
	return nil
}

func (r *fakeItemRepo) Update(ctx context.Context, item *models.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	copied := *item
	r.s.items[item.ID] = &copied
	return nil
}

type fakeFamilyRepo struct{ s *fakeStore }

func (r *fakeFamilyRepo) GetByID(ctx context.Context, id string) (*models.Family, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if family, ok := r.s.families[id]; ok {
		copied := *family
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeFamilyRepo) GetAllForMember(ctx context.Context, userID string) ([]*models.Family, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Family
	for _, member := range r.s.members {
		if member.UserID != userID {
			continue
		}
		if family, ok := r.s.families[member.FamilyID]; ok {
			copied := *family
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeFamilyRepo) Add(ctx context.Context, family *models.Family) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	copied := *family
	r.s.families[family.ID] = &copied
	return nil
}

func (r *fakeFamilyRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.familyDelErr != nil {
		return r.s.familyDelErr
	}
	delete(r.s.families, id)
	return nil
}

type fakeFamilyMemberRepo struct{ s *fakeStore }

func (r *fakeFamilyMemberRepo) GetByFamilyID(ctx context.Context, familyID string) ([]*models.FamilyMember, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.FamilyMember
	for _, member := range r.s.members {
		if member.FamilyID == familyID {
			copied := *member
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r *fakeFamilyMemberRepo) GetMember(ctx context.Context, familyID, userID string) (*models.FamilyMember, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if member, ok := r.s.members[pairKey(familyID, userID)]; ok {
		copied := *member
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeFamilyMemberRepo) Add(ctx context.Context, member *models.FamilyMember) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.memberAddErr != nil {
		return r.s.memberAddErr
	}
	copied := *member
	r.s.members[pairKey(member.FamilyID, member.UserID)] = &copied
	return nil
}

func (r *fakeFamilyMemberRepo) Remove(ctx context.Context, familyID, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.members, pairKey(familyID, userID))
	return nil
}

type fakeListShareRepo struct{ s *fakeStore }

func (r *fakeListShareRepo) GetByListID(ctx context.Context, listID string) ([]*models.ListShare, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.ListShare
	for _, share := range r.s.shares {
		if share.ListID == listID {
			copied := *share
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r *fakeListShareRepo) GetByUserID(ctx context.Context, userID string) ([]*models.ListShare, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.ListShare
	for _, share := range r.s.shares {
		if share.UserID == userID {
			copied := *share
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ListID < out[j].ListID })
	return out, nil
}

func (r *fakeListShareRepo) GetShare(ctx context.Context, listID, userID string) (*models.ListShare, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if share, ok := r.s.shares[pairKey(listID, userID)]; ok {
		copied := *share
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeListShareRepo) Upsert(ctx context.Context, share *models.ListShare) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.shareUpsertErr[share.UserID]; err != nil {
		return err
	}
	key := pairKey(share.ListID, share.UserID)
	if existing, ok := r.s.shares[key]; ok {
		existing.CanEdit = share.CanEdit
		existing.UpdatedAt = share.UpdatedAt
		return nil
	}
	copied := *share
	r.s.shares[key] = &copied
	return nil
}

func (r *fakeListShareRepo) Remove(ctx context.Context, listID, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.shares, pairKey(listID, userID))
	return nil
}

type recordedEvent struct {
	ListID  string
	Type    string
	Payload interface{}
}

type eventRecorder struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *eventRecorder) PublishListEvent(listID, eventType string, payload interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{ListID: listID, Type: eventType, Payload: payload})
}

func (r *eventRecorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Type
	}
	return out
}

// fixture wires every service against a shared in-memory store
type fixture struct {
	store    *fakeStore
	events   *eventRecorder
	authz    *AuthzService
	lists    *ListService
	shares   *ShareService
	families *FamilyService
}

func newFixture() *fixture {
	store := newFakeStore()
	listRepo := &fakeListRepo{s: store}
	itemRepo := &fakeItemRepo{s: store}
	shareRepo := &fakeListShareRepo{s: store}
	familyRepo := &fakeFamilyRepo{s: store}
	memberRepo := &fakeFamilyMemberRepo{s: store}

	events := &eventRecorder{}
	authz := NewAuthzService(shareRepo, memberRepo)

	return &fixture{
		store:    store,
		events:   events,
		authz:    authz,
		lists:    NewListService(listRepo, itemRepo, shareRepo, authz, events),
		shares:   NewShareService(listRepo, itemRepo, shareRepo, familyRepo, memberRepo, authz, events),
		families: NewFamilyService(familyRepo, memberRepo, listRepo, authz),
	}
}
