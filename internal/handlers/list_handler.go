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

// ListHandler handles list API endpoints
type ListHandler struct {
	listService  *services.ListService
	shareService *services.ShareService
	metrics      *observability.SharingMetrics
}

// NewListHandler creates a new ListHandler
func NewListHandler(listService *services.ListService, shareService *services.ShareService, metrics *observability.SharingMetrics) *ListHandler {
	return &ListHandler{
		listService:  listService,
		shareService: shareService,
		metrics:      metrics,
	}
}

// CreateList creates a new list owned by the caller
// @Summary Create list
// @Tags lists
// @Accept json
// @Produce json
// @Param request body models.CreateListRequest true "List details"
// @Success 201 {object} models.List
// @Router /api/lists [post]
func (h *ListHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.CreateListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	list, err := h.listService.CreateList(r.Context(), userID, req.Name)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordListCreated(r.Context())
	}
	writeJSON(w, http.StatusCreated, list)
}

// ListLists returns the lists owned by the caller
// @Summary List owned lists
// @Tags lists
// @Produce json
// @Success 200 {array} models.List
// @Router /api/lists [get]
func (h *ListHandler) ListLists(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	lists, err := h.listService.ListOwned(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lists)
}

// GetList returns a list by ID; caller must be owner or shared
// @Summary Get list
// @Tags lists
// @Produce json
// @Param listId path string true "List ID"
// @Success 200 {object} models.ListResponse
// @Failure 403 "Not owner or shared"
// @Failure 404 "List not found"
// @Router /api/lists/{listId} [get]
func (h *ListHandler) GetList(w http.ResponseWriter, r *http.Request) {
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

	list, err := h.listService.GetList(r.Context(), userID, listID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	response := models.ListResponse{List: list}

	// Include shares when the caller owns the list
	if list.IsOwner {
		shares, err := h.shareService.ListShares(r.Context(), userID, listID)
		if err == nil {
			response.Shares = shares
		}
	}

	writeJSON(w, http.StatusOK, response)
}

// RenameList renames a list; owner only
// @Summary Rename list
// @Tags lists
// @Accept json
// @Produce json
// @Param listId path string true "List ID"
// @Param request body models.RenameListRequest true "New name"
// @Success 200 {object} models.List
// @Router /api/lists/{listId} [patch]
func (h *ListHandler) RenameList(w http.ResponseWriter, r *http.Request) {
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

	var req models.RenameListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	list, err := h.listService.RenameList(r.Context(), userID, listID, req.Name)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// DeleteList deletes a list and cascades to its items and shares
// @Summary Delete list
// @Tags lists
// @Param listId path string true "List ID"
// @Success 204 "Deleted"
// @Failure 403 "Not owner"
// @Router /api/lists/{listId} [delete]
func (h *ListHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
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

	if err := h.listService.DeleteList(r.Context(), userID, listID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
