package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/IsraelAraujo70/shopping-list/internal/middleware"
	"github.com/IsraelAraujo70/shopping-list/internal/models"
	"github.com/IsraelAraujo70/shopping-list/internal/services"
)

// FamilyHandler handles family API endpoints
type FamilyHandler struct {
	familyService *services.FamilyService
}

// NewFamilyHandler creates a new FamilyHandler
func NewFamilyHandler(familyService *services.FamilyService) *FamilyHandler {
	return &FamilyHandler{
		familyService: familyService,
	}
}

// CreateFamily creates a family with the caller as owner and first member
// @Summary Create family
// @Tags families
// @Accept json
// @Produce json
// @Param request body models.CreateFamilyRequest true "Family details"
// @Success 201 {object} models.Family
// @Router /api/families [post]
func (h *FamilyHandler) CreateFamily(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.CreateFamilyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	family, err := h.familyService.CreateFamily(r.Context(), userID, req.Name)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, family)
}

// ListFamilies returns the families the caller belongs to
// @Summary List families
// @Tags families
// @Produce json
// @Success 200 {array} models.Family
// @Router /api/families [get]
func (h *FamilyHandler) ListFamilies(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	families, err := h.familyService.ListFamilies(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, families)
}

// ListMembers returns a family's members; caller must be a member
// @Summary List family members
// @Tags families
// @Produce json
// @Param familyId path string true "Family ID"
// @Success 200 {array} models.FamilyMember
// @Failure 403 "Not a member"
// @Router /api/families/{familyId}/members [get]
func (h *FamilyHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	familyID := chi.URLParam(r, "familyId")
	if familyID == "" {
		http.Error(w, "Family ID required", http.StatusBadRequest)
		return
	}

	members, err := h.familyService.GetMembers(r.Context(), userID, familyID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, members)
}

// AddMember adds a user to a family; owner only
// @Summary Add family member
// @Tags families
// @Accept json
// @Produce json
// @Param familyId path string true "Family ID"
// @Param request body models.AddMemberRequest true "User to add"
// @Success 201 {object} models.FamilyMember
// @Failure 403 "Not family owner"
// @Failure 409 "Already a member"
// @Router /api/families/{familyId}/members [post]
func (h *FamilyHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	familyID := chi.URLParam(r, "familyId")
	if familyID == "" {
		http.Error(w, "Family ID required", http.StatusBadRequest)
		return
	}

	var req models.AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.TargetUserID == "" {
		http.Error(w, "Target user ID required", http.StatusBadRequest)
		return
	}

	member, err := h.familyService.AddMember(r.Context(), userID, familyID, req.TargetUserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, member)
}

// RemoveMember removes a user from a family; owner only, never the owner row
// @Summary Remove family member
// @Tags families
// @Accept json
// @Param familyId path string true "Family ID"
// @Param request body models.RemoveMemberRequest true "User to remove"
// @Success 204 "Removed"
// @Failure 400 "Cannot remove owner"
// @Failure 403 "Not family owner"
// @Router /api/families/{familyId}/members [delete]
func (h *FamilyHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	familyID := chi.URLParam(r, "familyId")
	if familyID == "" {
		http.Error(w, "Family ID required", http.StatusBadRequest)
		return
	}

	var req models.RemoveMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.TargetUserID == "" {
		http.Error(w, "Target user ID required", http.StatusBadRequest)
		return
	}

	if err := h.familyService.RemoveMember(r.Context(), userID, familyID, req.TargetUserID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
