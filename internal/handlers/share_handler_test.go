package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IsraelAraujo70/shopping-list/internal/middleware"
	"github.com/IsraelAraujo70/shopping-list/internal/models"
	"github.com/IsraelAraujo70/shopping-list/internal/services"
)

// Minimal in-memory repos for driving the share route end to end

type stubListRepo struct {
	list *models.List
}

func (r *stubListRepo) GetByID(ctx context.Context, id string) (*models.List, error) {
	if r.list != nil && r.list.ID == id {
		copied := *r.list
		return &copied, nil
	}
	return nil, nil
}

func (r *stubListRepo) GetAllForUser(ctx context.Context, userID string) ([]*models.List, error) {
	return nil, nil
}

func (r *stubListRepo) GetByFamilyID(ctx context.Context, familyID string) ([]*models.List, error) {
	return nil, nil
}

func (r *stubListRepo) Add(ctx context.Context, list *models.List) error    { return nil }
func (r *stubListRepo) Update(ctx context.Context, list *models.List) error { return nil }
func (r *stubListRepo) DeleteCascade(ctx context.Context, id string) error  { return nil }

type stubShareRepo struct {
	shares map[string]*models.ListShare // listID|userID
}

func newStubShareRepo() *stubShareRepo {
	return &stubShareRepo{shares: make(map[string]*models.ListShare)}
}

func (r *stubShareRepo) GetByListID(ctx context.Context, listID string) ([]*models.ListShare, error) {
	return nil, nil
}

func (r *stubShareRepo) GetByUserID(ctx context.Context, userID string) ([]*models.ListShare, error) {
	return nil, nil
}

func (r *stubShareRepo) GetShare(ctx context.Context, listID, userID string) (*models.ListShare, error) {
	if share, ok := r.shares[listID+"|"+userID]; ok {
		copied := *share
		return &copied, nil
	}
	return nil, nil
}

func (r *stubShareRepo) Upsert(ctx context.Context, share *models.ListShare) error {
	key := share.ListID + "|" + share.UserID
	if existing, ok := r.shares[key]; ok {
		existing.CanEdit = share.CanEdit
		existing.UpdatedAt = share.UpdatedAt
		return nil
	}
	copied := *share
	r.shares[key] = &copied
	return nil
}

func (r *stubShareRepo) Remove(ctx context.Context, listID, userID string) error {
	delete(r.shares, listID+"|"+userID)
	return nil
}

type stubMemberRepo struct{}

func (r *stubMemberRepo) GetByFamilyID(ctx context.Context, familyID string) ([]*models.FamilyMember, error) {
	return nil, nil
}

func (r *stubMemberRepo) GetMember(ctx context.Context, familyID, userID string) (*models.FamilyMember, error) {
	return nil, nil
}

func (r *stubMemberRepo) Add(ctx context.Context, member *models.FamilyMember) error { return nil }
func (r *stubMemberRepo) Remove(ctx context.Context, familyID, userID string) error  { return nil }

func newShareRouter(t *testing.T, ownerID string) (*chi.Mux, *models.List, *stubShareRepo) {
	t.Helper()

	list, err := models.NewList(ownerID, "Groceries")
	require.NoError(t, err)

	listRepo := &stubListRepo{list: list}
	shareRepo := newStubShareRepo()
	memberRepo := &stubMemberRepo{}

	authz := services.NewAuthzService(shareRepo, memberRepo)
	shareService := services.NewShareService(listRepo, nil, shareRepo, nil, memberRepo, authz, nil)
	handler := NewShareHandler(shareService, nil)

	r := chi.NewRouter()
	r.Post("/api/lists/{listId}/share", handler.ShareList)
	return r, list, shareRepo
}

func postShare(t *testing.T, router *chi.Mux, userID, listID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/lists/"+listID+"/share", strings.NewReader(body))
	req = req.WithContext(context.WithValue(req.Context(), middleware.UserIDContextKey, userID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestShareHandler_ShareList(t *testing.T) {
	t.Run("omitted canEdit defaults to edit-capable", func(t *testing.T) {
		router, list, _ := newShareRouter(t, "owner")

		rec := postShare(t, router, "owner", list.ID, `{"targetUserId":"user-2"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var share models.ListShare
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&share))
		assert.Equal(t, "user-2", share.UserID)
		assert.True(t, share.CanEdit)
	})

	t.Run("explicit canEdit false creates a view-only share", func(t *testing.T) {
		router, list, _ := newShareRouter(t, "owner")

		rec := postShare(t, router, "owner", list.ID, `{"targetUserId":"user-2","canEdit":false}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var share models.ListShare
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&share))
		assert.False(t, share.CanEdit)
	})

	t.Run("explicit canEdit true is preserved", func(t *testing.T) {
		router, list, _ := newShareRouter(t, "owner")

		rec := postShare(t, router, "owner", list.ID, `{"targetUserId":"user-2","canEdit":true}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var share models.ListShare
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&share))
		assert.True(t, share.CanEdit)
	})

	t.Run("non-owner is denied", func(t *testing.T) {
		router, list, shareRepo := newShareRouter(t, "owner")

		rec := postShare(t, router, "intruder", list.ID, `{"targetUserId":"user-2"}`)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Empty(t, shareRepo.shares)
	})

	t.Run("missing target user is rejected", func(t *testing.T) {
		router, list, _ := newShareRouter(t, "owner")

		rec := postShare(t, router, "owner", list.ID, `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
