package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/IsraelAraujo70/shopping-list/internal/middleware"
	"github.com/IsraelAraujo70/shopping-list/internal/models"
	"github.com/IsraelAraujo70/shopping-list/internal/observability"
	"github.com/IsraelAraujo70/shopping-list/internal/services"
)

// ShareHandler handles list sharing API endpoints
type ShareHandler struct {
	shareService *services.ShareService
	metrics      *observability.SharingMetrics
}

// NewShareHandler creates a new ShareHandler
func NewShareHandler(shareService *services.ShareService, metrics *observability.SharingMetrics) *ShareHandler {
	return &ShareHandler{
		shareService: shareService,
		metrics:      metrics,
	}
}

// ShareList grants or updates a share on a list; owner only
// @Summary Share list with user
// @Tags sharing
// @Accept json
// @Produce json
// @Param listId path string true "List ID"
// @Param request body models.ShareListRequest true "Share details"
// @Success 200 {object} models.ListShare
// @Failure 403 "Not owner"
// @Router /api/lists/{listId}/share [post]
func (h *ShareHandler) ShareList(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	listID := chi.URLParam(r, "listId")
	if listID == "" {
		http.Error(w, "List ID required", http.StatusBadRequest)
		return
	}

	var req models.ShareListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.TargetUserID == "" {
		http.Error(w, "Target user ID required", http.StatusBadRequest)
		return
	}

	// Shares grant edit access unless the caller asks for view-only
	canEdit := true
	if req.CanEdit != nil {
		canEdit = *req.CanEdit
	}

	share, err := h.shareService.ShareListWithUser(r.Context(), userID, listID, req.TargetUserID, canEdit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordShareGranted(r.Context(), canEdit)
	}
	writeJSON(w, http.StatusOK, share)
}

// ShareWithFamily shares a list with every member of a family except the caller
// @Summary Share list with family
// @Tags sharing
// @Accept json
// @Produce json
// @Param listId path string true "List ID"
// @Param request body models.ShareWithFamilyRequest true "Family to share with"
// @Success 200 {object} models.FamilyShareResult
// @Failure 403 "Not owner or not a member"
// @Router /api/lists/{listId}/share/family [post]
func (h *ShareHandler) ShareWithFamily(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	listID := chi.URLParam(r, "listId")
	if listID == "" {
		http.Error(w, "List ID required", http.StatusBadRequest)
		return
	}

	var req models.ShareWithFamilyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.FamilyID == "" {
		http.Error(w, "Family ID required", http.StatusBadRequest)
		return
	}

	result, err := h.shareService.ShareListWithFamily(r.Context(), userID, listID, req.FamilyID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordCascade(r.Context(), len(result.SharedUserIDs), len(result.FailedUserIDs))
	}
	writeJSON(w, http.StatusOK, result)
}

// ListShares returns the shares on a list; owner only
// @Summary List shares
// @Tags sharing
// @Produce json
// @Param listId path string true "List ID"
// @Success 200 {array} models.ListShare
// @Router /api/lists/{listId}/share [get]
func (h *ShareHandler) ListShares(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	listID := chi.URLParam(r, "listId")
	if listID == "" {
		http.Error(w, "List ID required", http.StatusBadRequest)
		return
	}

	shares, err := h.shareService.ListShares(r.Context(), userID, listID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, shares)
}

// RemoveShare revokes a user's share on a list; owner only, no-op when absent
// @Summary Remove share
// @Tags sharing
// @Accept json
// @Param listId path string true "List ID"
// @Param request body models.RemoveShareRequest true "User to unshare"
// @Success 204 "Removed"
// @Router /api/lists/{listId}/share [delete]
func (h *ShareHandler) RemoveShare(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	listID := chi.URLParam(r, "listId")
	if listID == "" {
		http.Error(w, "List ID required", http.StatusBadRequest)
		return
	}

	var req models.RemoveShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.TargetUserID == "" {
		http.Error(w, "Target user ID required", http.StatusBadRequest)
		return
	}

	if err := h.shareService.RemoveShare(r.Context(), userID, listID, req.TargetUserID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SharedWithMe returns the lists other users have shared with the caller
// @Summary Lists shared with me
// @Tags sharing
// @Produce json
// @Success 200 {array} models.SharedList
// @Router /api/lists/shared [get]
func (h *ShareHandler) SharedWithMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	lists, err := h.shareService.ListSharedWithMe(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lists)
}
