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

// ItemHandler handles item API endpoints
type ItemHandler struct {
	listService *services.ListService
	metrics     *observability.SharingMetrics
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(listService *services.ListService, metrics *observability.SharingMetrics) *ItemHandler {
	return &ItemHandler{
		listService: listService,
		metrics:     metrics,
	}
}

// AddItem adds an item to a list; caller needs edit access
// @Summary Add item
// @Tags items
// @Accept json
// @Produce json
// @Param listId path string true "List ID"
// @Param request body models.AddItemRequest true "Item details"
// @Success 201 {object} models.Item
// @Failure 403 "No edit access"
// @Router /api/lists/{listId}/items [post]
func (h *ItemHandler) AddItem(w http.ResponseWriter, r *http.Request) {
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

	var req models.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	item, err := h.listService.AddItem(r.Context(), userID, listID, &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordItemAdded(r.Context())
	}
	writeJSON(w, http.StatusCreated, item)
}

// UpdateItem toggles an item's completed state; caller needs edit access
// @Summary Update item
// @Tags items
// @Accept json
// @Produce json
// @Param listId path string true "List ID"
// @Param request body models.UpdateItemRequest true "Item update"
// @Success 200 {object} models.Item
// @Failure 403 "No edit access"
// @Router /api/lists/{listId}/items [patch]
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
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

	var req models.UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ItemID == "" {
		http.Error(w, "Item ID required", http.StatusBadRequest)
		return
	}

	item, err := h.listService.SetItemCompleted(r.Context(), userID, listID, req.ItemID, req.Completed)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}
